package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/domain"
)

// Starter grant for new players.
const (
	StarterCash = 150000
)

// NewPlayer synthesizes the initial document for a first-time player:
// starter cash, one starter locomotive, everything else empty. The
// market and achievement sets are populated by their owners on the
// first tick so their generation stays in one place.
func NewPlayer(playerID string, now time.Time) *domain.PlayerState {
	starter, _ := catalog.ModelByName(catalog.StarterModel)

	p := &domain.PlayerState{
		PlayerID:      playerID,
		SchemaVersion: domain.SchemaVersion,
		Stats: domain.PlayerStats{
			Cash:       StarterCash,
			XP:         0,
			Level:      1,
			NextLocoID: 2,
		},
		Locomotives: []domain.Locomotive{
			newStarterLocomotive(starter, now),
		},
		Jobs:                        []domain.Job{},
		Achievements:                []domain.Achievement{},
		DealershipStock:             domain.DealershipStock{},
		LoanerMarket:                []domain.UsedLocomotiveItem{},
		WeeklyAchievementsRefreshAt: NextFridayNoon(now),
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
	return p
}

func newStarterLocomotive(m catalog.LocomotiveModel, now time.Time) domain.Locomotive {
	return domain.Locomotive{
		ID:         uuid.NewString(),
		UnitNumber: FormatUnitNumber(1),

		Model:        m.Model,
		Manufacturer: m.Manufacturer,
		Tier:         m.Tier,
		Tags:         append([]string(nil), m.Tags...),

		Horsepower:      m.Horsepower,
		TopSpeed:        m.TopSpeed,
		Weight:          m.Weight,
		Reliability:     m.Reliability,
		FuelCapacity:    m.FuelCapacity,
		FuelEfficiency:  m.FuelEfficiency,
		MaintenanceCost: m.MaintenanceCost,
		BaseValue:       m.BaseValue,

		Mileage:        0,
		Health:         100,
		PaintCondition: 100,
		Status:         domain.LocoStatusAvailable,

		PurchasedAt: now,
	}
}

// FormatUnitNumber renders the canonical 4-digit zero-padded unit
// number derived from a nextLocoId sequence value.
func FormatUnitNumber(n int) string {
	return fmt.Sprintf("%04d", n)
}
