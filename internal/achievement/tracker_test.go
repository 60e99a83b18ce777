package achievement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/state"
)

func seededPlayer(t *testing.T, now time.Time) *domain.PlayerState {
	t.Helper()
	p := state.NewPlayer("p1", now)
	require.True(t, EnsureFresh(p, now))
	return p
}

func TestApply_AccumulatesMatchingRequirements(t *testing.T) {
	p := seededPlayer(t, achNow)

	Apply(p,
		Action{Requirement: domain.ReqJobsCompleted, Amount: 1},
		Action{Requirement: domain.ReqMilesHauled, Amount: 120},
	)

	first := findByKey(t, p.Achievements, "career_first_job")
	assert.Equal(t, int64(1), first.CurrentProgress)
	miles := findByKey(t, p.Achievements, "career_miles_10k")
	assert.Equal(t, int64(120), miles.CurrentProgress)
	fleet := findByKey(t, p.Achievements, "career_fleet_5")
	assert.Zero(t, fleet.CurrentProgress)
}

func TestApply_SkipsCompleted(t *testing.T) {
	p := seededPlayer(t, achNow)

	first := findByKey(t, p.Achievements, "career_first_job")
	first.IsCompleted = true
	first.CurrentProgress = first.TargetValue

	Apply(p, Action{Requirement: domain.ReqJobsCompleted, Amount: 3})
	assert.Equal(t, first.TargetValue, first.CurrentProgress)
}

func TestRefreshDerived_BalanceNeverRegresses(t *testing.T) {
	p := seededPlayer(t, achNow)
	baron := findByKey(t, p.Achievements, "career_bank_1m")

	p.Stats.Cash = 200000
	RefreshDerived(p)
	assert.Equal(t, int64(200000), baron.CurrentProgress)

	p.Stats.Cash = 50000
	RefreshDerived(p)
	assert.Equal(t, int64(200000), baron.CurrentProgress)
}

func TestRegenerateWeekly_DeterministicWithinWeek(t *testing.T) {
	a := seededPlayer(t, achNow)
	b := seededPlayer(t, achNow.Add(6*time.Hour))

	keysOf := func(p *domain.PlayerState) []string {
		var keys []string
		for _, ach := range p.Achievements {
			if ach.Type == domain.AchievementTypeWeekly {
				keys = append(keys, ach.Key)
			}
		}
		return keys
	}

	assert.Equal(t, keysOf(a), keysOf(b))
}

func TestEnsureFresh_IdempotentWithinWeek(t *testing.T) {
	p := seededPlayer(t, achNow)
	assert.False(t, EnsureFresh(p, achNow.Add(time.Hour)))
}
