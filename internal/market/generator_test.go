package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/domain"
)

var testNow = time.Date(2026, 3, 6, 14, 30, 0, 0, time.UTC)

func TestGenerateJobBoard_Counts(t *testing.T) {
	g := NewSeededGenerator(42)
	jobs := g.GenerateJobBoard(catalog.DefaultHomeCity, testNow)

	counts := map[string]int{}
	for _, j := range jobs {
		counts[j.JobType]++
	}

	assert.Equal(t, LocalFreightJobCount, counts[domain.JobTypeLocalFreight])
	assert.Equal(t, YardSwitchingJobCount, counts[domain.JobTypeYardSwitching])
	assert.Equal(t, MainlineJobCount, counts[domain.JobTypeMainlineFreight])
	assert.Equal(t, SpecialJobCount, counts[domain.JobTypeSpecialFreight])
}

func TestGenerateJobBoard_AllTiersGeneratedRegardlessOfLevel(t *testing.T) {
	// Generation has no level parameter at all; a fresh board always
	// carries every tier. Tier gating happens at assignment.
	g := NewSeededGenerator(7)
	jobs := g.GenerateJobBoard(catalog.DefaultHomeCity, testNow)

	tiers := map[int]bool{}
	for _, j := range jobs {
		tiers[j.Tier] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, tiers)
}

func TestGenerateJobBoard_Deterministic(t *testing.T) {
	a := NewSeededGenerator(1234).GenerateJobBoard(catalog.DefaultHomeCity, testNow)
	b := NewSeededGenerator(1234).GenerateJobBoard(catalog.DefaultHomeCity, testNow)
	assert.Equal(t, a, b)
}

func TestGenerateJobBoard_Invariants(t *testing.T) {
	g := NewSeededGenerator(99)
	jobs := g.GenerateJobBoard(catalog.DefaultHomeCity, testNow)

	for _, j := range jobs {
		require.Equal(t, domain.JobStatusAvailable, j.Status, "%s", j.JobID)
		require.Empty(t, j.AssignedLocos)
		require.Nil(t, j.StartedAt)
		require.Nil(t, j.CompletesAt)
		require.Equal(t, testNow, j.GeneratedAt)
		require.NotEmpty(t, j.ID)
		require.Equal(t, j.CarCount, j.ManifestCarCount(), "manifest conservation for %s", j.JobID)
		require.Greater(t, j.HPRequired, 0)
		require.Greater(t, j.Payout, int64(0))
		require.Greater(t, j.XPReward, int64(0))
	}
}

func TestLocalFreightJobs_ParameterRanges(t *testing.T) {
	g := NewSeededGenerator(5)
	for i := 0; i < 20; i++ {
		for _, j := range g.JobsForTier(1, catalog.DefaultHomeCity, testNow) {
			switch j.JobType {
			case domain.JobTypeLocalFreight:
				require.GreaterOrEqual(t, j.DistanceMi, LocalDistanceMinMi)
				require.LessOrEqual(t, j.DistanceMi, LocalDistanceMaxMi)
				require.GreaterOrEqual(t, j.TimeMinutes, LocalDurationMin)
				require.LessOrEqual(t, j.TimeMinutes, LocalDurationMax)
				require.Equal(t, int64(j.DistanceMi*j.CarCount*LocalPayoutRate), j.Payout)
				require.Equal(t, int64(j.DistanceMi*LocalXPPerMile), j.XPReward)
			case domain.JobTypeYardSwitching:
				require.Zero(t, j.DistanceMi)
				require.Equal(t, YardHPRequired, j.HPRequired)
				require.GreaterOrEqual(t, j.TimeMinutes, YardDurationMin)
				require.LessOrEqual(t, j.TimeMinutes, YardDurationMax)
				require.Equal(t, int64(j.CarCount*YardPayoutPerCar), j.Payout)
				require.Equal(t, int64(j.CarCount*YardXPPerCar), j.XPReward)
			}
		}
	}
}

// Tier-1 economics pinned: distance 10, 8 cars pays 2000 and 50 XP.
func TestLocalFreightEconomics(t *testing.T) {
	assert.Equal(t, 2000, 10*8*LocalPayoutRate)
	assert.Equal(t, 50, 10*LocalXPPerMile)
}

func TestMainlineJobs_Ranges(t *testing.T) {
	g := NewSeededGenerator(11)
	for i := 0; i < 20; i++ {
		for _, j := range g.JobsForTier(2, catalog.DefaultHomeCity, testNow) {
			require.GreaterOrEqual(t, j.DistanceMi, MainlineDistanceMinMi)
			require.LessOrEqual(t, j.DistanceMi, MainlineDistanceMaxMi)
			require.GreaterOrEqual(t, j.CarCount, MainlineCarsMin)
			require.LessOrEqual(t, j.CarCount, MainlineCarsMax)
			require.NotEqual(t, j.Origin, j.Destination)
			require.Equal(t, int64(j.DistanceMi*j.CarCount*MainlinePayoutRate), j.Payout)
		}
	}
}

func TestSpecialJobs_RestrictedFreight(t *testing.T) {
	g := NewSeededGenerator(13)
	allowed := map[string]bool{
		catalog.FreightCoal:       true,
		catalog.FreightIntermodal: true,
		catalog.FreightAutomotive: true,
	}
	for i := 0; i < 20; i++ {
		for _, j := range g.JobsForTier(3, catalog.DefaultHomeCity, testNow) {
			require.True(t, allowed[j.FreightType], "freight %q not allowed at tier 3", j.FreightType)
			require.GreaterOrEqual(t, j.DistanceMi, SpecialDistanceMinMi)
			require.LessOrEqual(t, j.DistanceMi, SpecialDistanceMaxMi)
			require.GreaterOrEqual(t, j.TimeMinutes, SpecialDurationMin)
			require.LessOrEqual(t, j.TimeMinutes, SpecialDurationMax)
		}
	}
}

func TestMainlineCarCount_Clamped(t *testing.T) {
	assert.Equal(t, MainlineCarsMin, mainlineCarCount(0, -3))
	assert.Equal(t, MainlineCarsMax, mainlineCarCount(500, 3))
	assert.Equal(t, 25, mainlineCarCount(100, 0))
}

func TestRoundUpTo(t *testing.T) {
	assert.Equal(t, 1000, roundUpTo(1000, 100))
	assert.Equal(t, 1100, roundUpTo(1001, 100))
	assert.Equal(t, 2100, roundUpTo(2050, 100))
}
