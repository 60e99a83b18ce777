package market

import (
	"time"

	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/degradation"
	"github.com/ironhorse/railyard/internal/domain"
)

// LoanerMarket generates a marketplace of randomized size. Use
// UsedListings directly when the caller wants an explicit count.
func (g *Generator) LoanerMarket(now time.Time) []domain.UsedLocomotiveItem {
	return g.UsedListings(g.intBetween(LoanerCountMin, LoanerCountMax), now)
}

// UsedListings synthesizes n aged units from the catalog. Each listing
// is a single unit of stock.
func (g *Generator) UsedListings(n int, now time.Time) []domain.UsedLocomotiveItem {
	if n <= 0 {
		return nil
	}

	listings := make([]domain.UsedLocomotiveItem, 0, n)
	order := g.rng.Perm(len(catalog.Locomotives))
	for i := 0; i < n; i++ {
		// Wrap around when the marketplace is larger than the catalog;
		// duplicate models are fine, each listing ages independently.
		model := catalog.Locomotives[order[i%len(order)]]
		listings = append(listings, g.usedListing(model, now))
	}
	return listings
}

func (g *Generator) usedListing(model catalog.LocomotiveModel, now time.Time) domain.UsedLocomotiveItem {
	age := g.rollAge(model, now)
	mileage := int64(age) * int64(g.intBetween(AnnualMileageMin, AnnualMileageMax))
	health := degradation.HealthFor(mileage, model.Reliability)

	paint := health - (PaintPenaltyMin + g.rng.Float64()*(PaintPenaltyMax-PaintPenaltyMin))
	if paint < PaintFloor {
		paint = PaintFloor
	}

	wearFraction := (100 - health) / 100
	depreciation := wearFraction*DepreciationPerWear + float64(age)*DepreciationPerYear
	if depreciation > DepreciationCap {
		depreciation = DepreciationCap
	}

	return domain.UsedLocomotiveItem{
		ID:           g.newID(),
		Model:        model.Model,
		Manufacturer: model.Manufacturer,
		Tier:         model.Tier,

		Horsepower:      model.Horsepower,
		TopSpeed:        model.TopSpeed,
		Weight:          model.Weight,
		Reliability:     model.Reliability,
		FuelCapacity:    model.FuelCapacity,
		FuelEfficiency:  model.FuelEfficiency,
		MaintenanceCost: model.MaintenanceCost,

		AgeYears:       age,
		Mileage:        mileage,
		Health:         health,
		PaintCondition: paint,
		Price:          int64(float64(model.BaseValue) * (1 - depreciation)),

		PreviousOwner: catalog.PreviousOwners[g.rng.Intn(len(catalog.PreviousOwners))],
		Livery:        catalog.Liveries[g.rng.Intn(len(catalog.Liveries))],

		GeneratedAt: now,
	}
}

// rollAge derives an age proxy from the model's production era, capped
// so a 1966 switcher does not list at sixty years old.
func (g *Generator) rollAge(model catalog.LocomotiveModel, now time.Time) int {
	maxAge := now.Year() - model.EraStart
	if maxAge > LoanerAgeMaxYears {
		maxAge = LoanerAgeMaxYears
	}
	if maxAge < LoanerAgeMinYears {
		maxAge = LoanerAgeMinYears
	}
	return g.intBetween(LoanerAgeMinYears, maxAge)
}

// RollDealershipStock rolls a fresh stock count for every catalog
// model.
func (g *Generator) RollDealershipStock() domain.DealershipStock {
	stock := make(domain.DealershipStock, len(catalog.Locomotives))
	for _, m := range catalog.Locomotives {
		stock[m.Model] = g.rng.Intn(DealershipStockMax + 1)
	}
	return stock
}
