// Package state owns the player document boundary: JSON-schema
// validation of raw stored documents and the versioned migration that
// backfills fields older documents predate. Services only ever see
// fully populated, current-version structs.
package state

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ironhorse/railyard/internal/domain"
)

// playerSchemaJSON is deliberately loose about newer fields: it pins
// the identity and stats core that every document version has carried,
// and type-checks the collections. Migration fills the rest.
const playerSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["player_id", "stats"],
  "properties": {
    "player_id": {"type": "string", "minLength": 1},
    "schema_version": {"type": "integer", "minimum": 0},
    "stats": {
      "type": "object",
      "required": ["cash", "xp"],
      "properties": {
        "cash": {"type": "number"},
        "xp": {"type": "number", "minimum": 0},
        "level": {"type": "integer", "minimum": 0},
        "points": {"type": "number"},
        "next_loco_id": {"type": "integer", "minimum": 0},
        "total_jobs_completed": {"type": "integer", "minimum": 0}
      }
    },
    "locomotives": {"type": "array", "items": {"type": "object"}},
    "jobs": {"type": "array", "items": {"type": "object"}},
    "achievements": {"type": "array", "items": {"type": "object"}},
    "dealership_stock": {"type": "object"},
    "loaner_market": {"type": "array", "items": {"type": "object"}}
  }
}`

var (
	schemaOnce   sync.Once
	playerSchema *jsonschema.Schema
)

func compiledSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(playerSchemaJSON))
		if err != nil {
			panic(fmt.Sprintf("player schema is not valid JSON: %v", err))
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("player.json", doc); err != nil {
			panic(fmt.Sprintf("player schema failed to register: %v", err))
		}
		playerSchema = compiler.MustCompile("player.json")
	})
	return playerSchema
}

// ValidateDocument checks a raw stored document against the player
// schema. A failure is fatal for the session: corrupt documents must
// propagate, never be silently defaulted.
func ValidateDocument(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	if err := compiledSchema().Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	return nil
}
