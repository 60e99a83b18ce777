package domain

import "time"

// Achievement set types.
const (
	AchievementTypeWeekly = "weekly"
	AchievementTypeCareer = "career"
	AchievementTypeEvent  = "event"
)

// Requirement keys identify which player-action counter an achievement
// tracks. Counter-style keys accumulate increments; CashBalance is
// derived from the live stat instead.
const (
	ReqJobsCompleted  = "jobs_completed"
	ReqMilesHauled    = "miles_hauled"
	ReqCashEarned     = "cash_earned"
	ReqCashBalance    = "cash_balance"
	ReqLocosPurchased = "locos_purchased"
	ReqYardJobs       = "yard_jobs"
	ReqTier3Jobs      = "tier3_jobs"
)

// AchievementRewards is the bundle credited on claim.
type AchievementRewards struct {
	Cash   int64 `json:"cash"`
	Points int   `json:"points"`
	XP     int64 `json:"xp"`
}

// Achievement tracks one goal. CurrentProgress never decreases and may
// store overshoot past TargetValue; IsCompleted is set once by an
// explicit claim and never unset.
type Achievement struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Requirement     string `json:"requirement"`
	TargetValue     int64  `json:"target_value"`
	CurrentProgress int64  `json:"current_progress"`

	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Rewards   AchievementRewards `json:"rewards"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DisplayProgress clamps progress at the target for presentation.
func (a *Achievement) DisplayProgress() int64 {
	if a.CurrentProgress > a.TargetValue {
		return a.TargetValue
	}
	return a.CurrentProgress
}

// Claimable reports whether the achievement is eligible for a claim.
func (a *Achievement) Claimable(now time.Time) bool {
	if a.IsCompleted {
		return false
	}
	if a.ExpiresAt != nil && now.After(*a.ExpiresAt) {
		return false
	}
	return a.CurrentProgress >= a.TargetValue
}
