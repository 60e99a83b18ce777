package domain

// LevelUpEvent is raised when a claim pushes the player past one or
// more level thresholds. Unlocks lists the content bands crossed.
type LevelUpEvent struct {
	OldLevel int      `json:"old_level"`
	NewLevel int      `json:"new_level"`
	Unlocks  []string `json:"unlocks,omitempty"`
}

// Unlock display names keyed by the tier thresholds of the leveling
// curve.
const (
	UnlockMainlineFreight = "Mainline Freight Jobs"
	UnlockSpecialFreight  = "Special Freight Jobs"
)
