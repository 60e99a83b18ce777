package market

import (
	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/domain"
)

// intermodalContainerShare is the Well Car slice of an intermodal
// consist; the remainder rides on spine cars.
const intermodalContainerShare = 0.6

// BuildManifest composes the car list for a job. The entry counts
// always sum to exactly carCount.
func (g *Generator) BuildManifest(freightType string, carCount int) []domain.ManifestEntry {
	if carCount <= 0 {
		return nil
	}

	switch freightType {
	case catalog.FreightCoal:
		return []domain.ManifestEntry{{
			CarType: "Open Hopper", Content: "Coal",
			Count: carCount, Weight: g.intBetween(110, 121),
		}}

	case catalog.FreightIntermodal:
		containers := int(float64(carCount) * intermodalContainerShare)
		if containers == 0 {
			containers = carCount
		}
		entries := []domain.ManifestEntry{{
			CarType: "Well Car", Content: "Containers",
			Count: containers, Weight: g.intBetween(30, 61),
		}}
		if rest := carCount - containers; rest > 0 {
			entries = append(entries, domain.ManifestEntry{
				CarType: "Spine Car", Content: "Trailers",
				Count: rest, Weight: g.intBetween(30, 55),
			})
		}
		return entries

	case catalog.FreightAutomotive:
		return []domain.ManifestEntry{{
			CarType: "Autorack", Content: "Finished Vehicles",
			Count: carCount, Weight: g.intBetween(75, 96),
		}}

	case catalog.FreightGrain:
		return []domain.ManifestEntry{{
			CarType: "Covered Hopper", Content: "Grain",
			Count: carCount, Weight: g.intBetween(95, 116),
		}}

	case catalog.FreightLumber:
		return []domain.ManifestEntry{{
			CarType: "Centerbeam Flat", Content: "Lumber",
			Count: carCount, Weight: g.intBetween(70, 96),
		}}

	case catalog.FreightChemicals:
		return []domain.ManifestEntry{{
			CarType: "Tank Car", Content: "Chemicals",
			Count: carCount, Weight: g.intBetween(90, 121),
		}}

	case catalog.FreightSteel:
		return []domain.ManifestEntry{{
			CarType: "Coil Car", Content: "Steel Coils",
			Count: carCount, Weight: g.intBetween(100, 131),
		}}

	default:
		return g.mixedManifest(carCount)
	}
}

// mixedManifest splits carCount across 1-3 distinct car types.
func (g *Generator) mixedManifest(carCount int) []domain.ManifestEntry {
	pool := catalog.MixedManifestCars

	entryCount := g.intBetween(1, 3)
	if entryCount > carCount {
		entryCount = carCount
	}

	// Distinct car types via a partial shuffle of pool indices.
	indices := g.rng.Perm(len(pool))[:entryCount]

	entries := make([]domain.ManifestEntry, 0, entryCount)
	remaining := carCount
	for i, idx := range indices {
		car := pool[idx]
		count := remaining
		if left := entryCount - 1 - i; left > 0 {
			// Leave at least one car for each remaining entry.
			count = 1 + g.rng.Intn(remaining-left)
		}
		entries = append(entries, domain.ManifestEntry{
			CarType: car.CarType,
			Content: car.Content,
			Count:   count,
			Weight:  g.intBetween(car.MinWeight, car.MaxWeight),
		})
		remaining -= count
	}
	return entries
}
