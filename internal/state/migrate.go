package state

import (
	"time"

	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/leveling"
)

// Migrate upgrades a document to the current schema version, applying
// each versioned step exactly once. Returns true when anything
// changed, so the store can decide whether to write the upgraded
// document back. This is the only place legacy defaulting happens;
// business logic never checks for missing fields.
func Migrate(p *domain.PlayerState, now time.Time) bool {
	changed := false

	if p.SchemaVersion < 1 {
		migrateV1(p)
		changed = true
	}
	if p.SchemaVersion < 2 {
		migrateV2(p, now)
		changed = true
	}
	if p.SchemaVersion < 3 {
		migrateV3(p)
		changed = true
	}

	// Level is derived; recompute unconditionally so a hand-edited or
	// pre-curve document can never carry a level its XP does not earn.
	if derived := leveling.LevelFor(p.Stats.XP); p.Stats.Level != derived {
		p.Stats.Level = derived
		changed = true
	}

	return changed
}

// migrateV1 establishes the baseline collections for documents written
// before the document carried a schema version at all.
func migrateV1(p *domain.PlayerState) {
	if p.Locomotives == nil {
		p.Locomotives = []domain.Locomotive{}
	}
	if p.Jobs == nil {
		p.Jobs = []domain.Job{}
	}
	if p.Stats.NextLocoID < 1 {
		p.Stats.NextLocoID = 1
	}
	for i := range p.Locomotives {
		if p.Locomotives[i].Status == "" {
			p.Locomotives[i].Status = domain.LocoStatusAvailable
		}
	}
	p.SchemaVersion = 1
}

// migrateV2 introduced achievements, the dealership and the loaner
// market.
func migrateV2(p *domain.PlayerState, now time.Time) {
	if p.Achievements == nil {
		p.Achievements = []domain.Achievement{}
	}
	if p.DealershipStock == nil {
		p.DealershipStock = domain.DealershipStock{}
	}
	if p.LoanerMarket == nil {
		p.LoanerMarket = []domain.UsedLocomotiveItem{}
	}
	if p.WeeklyAchievementsRefreshAt.IsZero() {
		p.WeeklyAchievementsRefreshAt = NextFridayNoon(now)
	}
	p.SchemaVersion = 2
}

// migrateV3 introduced repair wear offsets and paint condition.
func migrateV3(p *domain.PlayerState) {
	for i := range p.Locomotives {
		l := &p.Locomotives[i]
		if l.WearOffset < 0 {
			l.WearOffset = 0
		}
		if l.PaintCondition <= 0 {
			l.PaintCondition = l.Health
		}
		if l.BaseValue == 0 {
			if m, ok := catalog.ModelByName(l.Model); ok {
				l.BaseValue = m.BaseValue
			}
		}
	}
	p.SchemaVersion = 3
}

// NextFridayNoon returns the next Friday 12:00 UTC strictly after now.
func NextFridayNoon(now time.Time) time.Time {
	now = now.UTC()
	days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	candidate := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC).
		AddDate(0, 0, days)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}
