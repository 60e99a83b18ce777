package domain

import "time"

// Locomotive status values. Status is a small state machine: available
// units can be assigned, sold, scrapped, repainted or stored; every
// other status must revert to available before the next action.
const (
	LocoStatusAvailable   = "available"
	LocoStatusAssigned    = "assigned"
	LocoStatusNeedsRepair = "needs_repair"
	LocoStatusInPaintShop = "in_paint_shop"
	LocoStatusStored      = "stored"
)

// Locomotive is an owned unit. Specs are copied from the catalog at
// purchase time and stay independent of later catalog changes.
type Locomotive struct {
	ID         string `json:"id"`
	UnitNumber string `json:"unit_number"` // 4-digit zero-padded, unique per fleet

	Model        string   `json:"model"`
	Manufacturer string   `json:"manufacturer"`
	Tier         int      `json:"tier"`
	Tags         []string `json:"tags,omitempty"`

	Horsepower      int     `json:"horsepower"`
	TopSpeed        int     `json:"top_speed"`
	Weight          int     `json:"weight"`
	Reliability     float64 `json:"reliability"`
	FuelCapacity    int     `json:"fuel_capacity"`
	FuelEfficiency  float64 `json:"fuel_efficiency"`
	MaintenanceCost int64   `json:"maintenance_cost"`

	// BaseValue is the catalog sticker price copied at purchase time;
	// resale and scrap values derive from it, never from the live
	// catalog.
	BaseValue int64 `json:"base_value"`

	Mileage int64   `json:"mileage"` // monotonic, never decreases
	Health  float64 `json:"health"`  // cached; recomputable from mileage

	// PaintCondition is cosmetic only. A paint shop visit restores it
	// to 100; it never gates assignment.
	PaintCondition float64 `json:"paint_condition"`

	// WearOffset is mileage already paid off by repairs. Health derives
	// from (Mileage - WearOffset), so a repair rebases wear without
	// rolling the odometer back.
	WearOffset int64 `json:"wear_offset"`

	Status        string     `json:"status"`
	AssignedJobID string     `json:"assigned_job_id,omitempty"`
	PaintDoneAt   *time.Time `json:"paint_done_at,omitempty"`

	// Flavor carried over from a used/loaner purchase.
	PreviousOwner string `json:"previous_owner,omitempty"`
	Livery        string `json:"livery,omitempty"`

	PurchasedAt time.Time `json:"purchased_at"`
}

// FleetPower sums the horsepower of the given units.
func FleetPower(locos []Locomotive) int {
	total := 0
	for i := range locos {
		total += locos[i].Horsepower
	}
	return total
}
