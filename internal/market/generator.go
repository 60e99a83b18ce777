// Package market procedurally builds the job board, the dealership
// stock sheet and the used-locomotive marketplace for one refresh
// cycle. All randomness flows through an injected *rand.Rand so a test
// suite can pin outputs with a fixed seed.
package market

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/domain"
)

// Generator produces one refresh cycle's worth of market content.
type Generator struct {
	rng   *rand.Rand
	newID func() string
}

// NewGenerator creates a generator using the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, newID: uuid.NewString}
}

// NewSeededGenerator is a test convenience wrapping a fixed seed and a
// deterministic ID sequence.
func NewSeededGenerator(seed int64) *Generator {
	n := 0
	return &Generator{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // game content, not security
		newID: func() string {
			n++
			return fmt.Sprintf("id-%04d", n)
		},
	}
}

// intBetween returns a uniform int in [min, max].
func (g *Generator) intBetween(min, max int) int {
	if min >= max {
		return min
	}
	return min + g.rng.Intn(max-min+1)
}

// roundUpTo rounds n up to the nearest multiple of step.
func roundUpTo(n, step int) int {
	if n%step == 0 {
		return n
	}
	return n + step - n%step
}

// GenerateJobBoard builds a complete fresh board: every tier is
// generated regardless of player level.
func (g *Generator) GenerateJobBoard(homeCity string, now time.Time) []domain.Job {
	jobs := make([]domain.Job, 0,
		LocalFreightJobCount+YardSwitchingJobCount+MainlineJobCount+SpecialJobCount)
	jobs = append(jobs, g.localFreightJobs(homeCity, now)...)
	jobs = append(jobs, g.yardSwitchingJobs(homeCity, now)...)
	jobs = append(jobs, g.mainlineJobs(homeCity, now)...)
	jobs = append(jobs, g.specialJobs(homeCity, now)...)
	return jobs
}

// JobsForTier generates only one tier's jobs; tier 1 covers both local
// freight and yard switching.
func (g *Generator) JobsForTier(tier int, homeCity string, now time.Time) []domain.Job {
	switch tier {
	case 1:
		jobs := g.localFreightJobs(homeCity, now)
		return append(jobs, g.yardSwitchingJobs(homeCity, now)...)
	case 2:
		return g.mainlineJobs(homeCity, now)
	case 3:
		return g.specialJobs(homeCity, now)
	default:
		return nil
	}
}

func (g *Generator) jobTag(prefix string) string {
	return fmt.Sprintf("%s-%03d", prefix, g.intBetween(1, 999))
}

func (g *Generator) localFreightJobs(homeCity string, now time.Time) []domain.Job {
	jobs := make([]domain.Job, 0, LocalFreightJobCount)
	for i := 0; i < LocalFreightJobCount; i++ {
		distance := g.intBetween(LocalDistanceMinMi, LocalDistanceMaxMi)
		carCount := g.intBetween(LocalCarsMin, LocalCarsMax)
		freight := catalog.GeneralFreightTypes[g.rng.Intn(len(catalog.GeneralFreightTypes))]
		industry := catalog.LocalIndustries[g.rng.Intn(len(catalog.LocalIndustries))]

		jobs = append(jobs, domain.Job{
			ID:          g.newID(),
			JobID:       g.jobTag("LCL"),
			Tier:        1,
			JobType:     domain.JobTypeLocalFreight,
			FreightType: freight,
			Description: fmt.Sprintf("Deliver %d cars to %s", carCount, industry),
			Origin:      homeCity,
			Destination: fmt.Sprintf("%s - %s", homeCity, industry),
			DistanceMi:  distance,
			CarCount:    carCount,
			Manifest:    g.BuildManifest(freight, carCount),
			HPRequired:  roundUpTo(carCount*LocalHPPerCar, 100),
			TimeMinutes: g.intBetween(LocalDurationMin, LocalDurationMax),
			Payout:      int64(distance * carCount * LocalPayoutRate),
			XPReward:    int64(distance * LocalXPPerMile),
			Status:      domain.JobStatusAvailable,
			GeneratedAt: now,
		})
	}
	return jobs
}

func (g *Generator) yardSwitchingJobs(homeCity string, now time.Time) []domain.Job {
	jobs := make([]domain.Job, 0, YardSwitchingJobCount)
	for i := 0; i < YardSwitchingJobCount; i++ {
		carCount := g.intBetween(YardCarsMin, YardCarsMax)
		task := catalog.YardTasks[g.rng.Intn(len(catalog.YardTasks))]

		jobs = append(jobs, domain.Job{
			ID:          g.newID(),
			JobID:       g.jobTag("YRD"),
			Tier:        1,
			JobType:     domain.JobTypeYardSwitching,
			FreightType: catalog.FreightGeneral,
			Description: task,
			Origin:      homeCity,
			Destination: homeCity,
			DistanceMi:  0,
			CarCount:    carCount,
			Manifest:    g.BuildManifest(catalog.FreightGeneral, carCount),
			HPRequired:  YardHPRequired,
			TimeMinutes: g.intBetween(YardDurationMin, YardDurationMax),
			Payout:      int64(carCount * YardPayoutPerCar),
			XPReward:    int64(carCount * YardXPPerCar),
			Status:      domain.JobStatusAvailable,
			GeneratedAt: now,
		})
	}
	return jobs
}

func (g *Generator) mainlineJobs(homeCity string, now time.Time) []domain.Job {
	jobs := make([]domain.Job, 0, MainlineJobCount)
	for i := 0; i < MainlineJobCount; i++ {
		distance := g.intBetween(MainlineDistanceMinMi, MainlineDistanceMaxMi)
		carCount := mainlineCarCount(distance, g.intBetween(-MainlineCarJitter, MainlineCarJitter))
		freight := catalog.GeneralFreightTypes[g.rng.Intn(len(catalog.GeneralFreightTypes))]
		dest := g.pickAwayCity(homeCity)

		jobs = append(jobs, domain.Job{
			ID:          g.newID(),
			JobID:       g.jobTag("MNL"),
			Tier:        2,
			JobType:     domain.JobTypeMainlineFreight,
			FreightType: freight,
			Description: fmt.Sprintf("Mainline haul: %s to %s", homeCity, dest),
			Origin:      homeCity,
			Destination: dest,
			DistanceMi:  distance,
			CarCount:    carCount,
			Manifest:    g.BuildManifest(freight, carCount),
			HPRequired:  roundUpTo(carCount*MainlineHPPerCar, 100),
			TimeMinutes: g.intBetween(MainlineDurationMin, MainlineDurationMax),
			Payout:      int64(distance * carCount * MainlinePayoutRate),
			XPReward:    int64(distance * MainlineXPPerMile),
			Status:      domain.JobStatusAvailable,
			GeneratedAt: now,
		})
	}
	return jobs
}

func (g *Generator) specialJobs(homeCity string, now time.Time) []domain.Job {
	jobs := make([]domain.Job, 0, SpecialJobCount)
	for i := 0; i < SpecialJobCount; i++ {
		distance := g.intBetween(SpecialDistanceMinMi, SpecialDistanceMaxMi)
		carCount := g.intBetween(SpecialCarsMin, SpecialCarsMax)
		freight := catalog.SpecialFreightTypes[g.rng.Intn(len(catalog.SpecialFreightTypes))]
		dest := g.pickAwayCity(homeCity)

		jobs = append(jobs, domain.Job{
			ID:          g.newID(),
			JobID:       g.jobTag("SPL"),
			Tier:        3,
			JobType:     domain.JobTypeSpecialFreight,
			FreightType: freight,
			Description: fmt.Sprintf("Priority %s unit train to %s", freight, dest),
			Origin:      homeCity,
			Destination: dest,
			DistanceMi:  distance,
			CarCount:    carCount,
			Manifest:    g.BuildManifest(freight, carCount),
			HPRequired:  roundUpTo(carCount*SpecialHPPerCar, 100),
			TimeMinutes: g.intBetween(SpecialDurationMin, SpecialDurationMax),
			Payout:      int64(distance * carCount * SpecialPayoutRate),
			XPReward:    int64(distance * SpecialXPPerMile),
			Status:      domain.JobStatusAvailable,
			GeneratedAt: now,
		})
	}
	return jobs
}

// mainlineCarCount scales the consist with distance, clamped to the
// tier 2 band.
func mainlineCarCount(distance, jitter int) int {
	cars := MainlineCarsMin + distance/10 + jitter
	if cars < MainlineCarsMin {
		return MainlineCarsMin
	}
	if cars > MainlineCarsMax {
		return MainlineCarsMax
	}
	return cars
}

// pickAwayCity draws a destination different from the home city.
func (g *Generator) pickAwayCity(homeCity string) string {
	for {
		city := catalog.Cities[g.rng.Intn(len(catalog.Cities))]
		if city != homeCity {
			return city
		}
	}
}
