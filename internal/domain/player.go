package domain

import "time"

// SchemaVersion is the current player document schema version.
// Documents read with an older version pass through the state migrator
// before reaching any service.
const SchemaVersion = 3

// PlayerStats holds the scalar progression counters for a player.
// Level is always derived from XP via the leveling curve; it is never
// written independently.
type PlayerStats struct {
	Cash               int64 `json:"cash"`
	XP                 int64 `json:"xp"`
	Level              int   `json:"level"`
	Points             int   `json:"points"`
	NextLocoID         int   `json:"next_loco_id"`
	TotalJobsCompleted int   `json:"total_jobs_completed"`
}

// PlayerState is the full player document. One document per player;
// every mutation is a versioned commit of (part of) this struct.
type PlayerState struct {
	PlayerID      string        `json:"player_id"`
	SchemaVersion int           `json:"schema_version"`
	Stats         PlayerStats   `json:"stats"`
	Locomotives   []Locomotive  `json:"locomotives"`
	Jobs          []Job         `json:"jobs"`
	Achievements  []Achievement `json:"achievements"`

	DealershipStock DealershipStock      `json:"dealership_stock"`
	LoanerMarket    []UsedLocomotiveItem `json:"loaner_market"`

	// Shared refresh stamp for jobs, stock and the loaner market.
	MarketRefreshedAt time.Time `json:"market_refreshed_at"`

	// Next Friday 12:00 UTC; weekly achievements regenerate when passed.
	WeeklyAchievementsRefreshAt time.Time `json:"weekly_achievements_refresh_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Optimistic concurrency version of the stored document. Managed by
	// the store, not part of the document body.
	Version int64 `json:"-"`
}

// LocomotiveByID returns the locomotive with the given ID, or nil.
func (p *PlayerState) LocomotiveByID(id string) *Locomotive {
	for i := range p.Locomotives {
		if p.Locomotives[i].ID == id {
			return &p.Locomotives[i]
		}
	}
	return nil
}

// JobByID returns the job with the given ID, or nil.
func (p *PlayerState) JobByID(id string) *Job {
	for i := range p.Jobs {
		if p.Jobs[i].ID == id {
			return &p.Jobs[i]
		}
	}
	return nil
}

// AchievementByID returns the achievement with the given ID, or nil.
func (p *PlayerState) AchievementByID(id string) *Achievement {
	for i := range p.Achievements {
		if p.Achievements[i].ID == id {
			return &p.Achievements[i]
		}
	}
	return nil
}
