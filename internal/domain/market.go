package domain

import "time"

// DealershipStock maps catalog model name to remaining purchasable
// units. Counts are rolled on the market refresh cadence.
type DealershipStock map[string]int

// UsedLocomotiveItem is an ephemeral loaner/used listing. Each listing
// is a single unit and is removed from the market when bought.
type UsedLocomotiveItem struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Tier         int    `json:"tier"`

	Horsepower      int     `json:"horsepower"`
	TopSpeed        int     `json:"top_speed"`
	Weight          int     `json:"weight"`
	Reliability     float64 `json:"reliability"`
	FuelCapacity    int     `json:"fuel_capacity"`
	FuelEfficiency  float64 `json:"fuel_efficiency"`
	MaintenanceCost int64   `json:"maintenance_cost"`

	AgeYears       int     `json:"age_years"`
	Mileage        int64   `json:"mileage"`
	Health         float64 `json:"health"`
	PaintCondition float64 `json:"paint_condition"`
	Price          int64   `json:"price"`

	PreviousOwner string `json:"previous_owner"`
	Livery        string `json:"livery"`

	GeneratedAt time.Time `json:"generated_at"`
}
