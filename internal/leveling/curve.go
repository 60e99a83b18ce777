// Package leveling holds the XP curve. Pure lookups only; every level
// value stored anywhere must be reproducible from LevelFor.
package leveling

// Tier unlock thresholds. Generation is never gated by these; only
// assignment eligibility is.
const (
	Tier2UnlockLevel = 10
	Tier3UnlockLevel = 50
)

// thresholds[i] is the cumulative XP required to hold level i+1.
// Level 1 starts at zero.
var thresholds = []int64{
	0, 1000, 2500, 4500, 7000,
	10000, 13500, 17500, 22000, 27000,
	33000, 40000, 48000, 57000, 67000,
	78000, 90000, 103000, 117000, 132000,
}

// extraPerLevel extends the curve linearly past the table.
const extraPerLevel = 16000

// LevelFor returns the largest level whose threshold the given XP
// meets. Minimum level is 1; negative XP clamps to 1.
func LevelFor(xp int64) int {
	if xp < 0 {
		return 1
	}
	last := int64(thresholds[len(thresholds)-1])
	if xp >= last {
		return len(thresholds) + int((xp-last)/extraPerLevel)
	}
	// Table is short; linear scan beats the bookkeeping of a bisect.
	level := 1
	for i := 1; i < len(thresholds); i++ {
		if xp < thresholds[i] {
			break
		}
		level = i + 1
	}
	return level
}

// XPThresholdForLevel returns the cumulative XP required to reach the
// given level. Levels at or below 1 cost nothing.
func XPThresholdForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level <= len(thresholds) {
		return thresholds[level-1]
	}
	return thresholds[len(thresholds)-1] + int64(level-len(thresholds))*extraPerLevel
}

// XPToNext returns how much XP is missing until the next level.
func XPToNext(xp int64) int64 {
	next := XPThresholdForLevel(LevelFor(xp) + 1)
	return next - xp
}

// UnlockLevelForTier maps a job tier to the level required to assign
// locomotives to it. Tier 1 is always open.
func UnlockLevelForTier(tier int) int {
	switch tier {
	case 2:
		return Tier2UnlockLevel
	case 3:
		return Tier3UnlockLevel
	default:
		return 1
	}
}

// TiersUnlockedBetween lists the tiers whose unlock level lies in
// (oldLevel, newLevel].
func TiersUnlockedBetween(oldLevel, newLevel int) []int {
	var tiers []int
	if oldLevel < Tier2UnlockLevel && newLevel >= Tier2UnlockLevel {
		tiers = append(tiers, 2)
	}
	if oldLevel < Tier3UnlockLevel && newLevel >= Tier3UnlockLevel {
		tiers = append(tiers, 3)
	}
	return tiers
}
