package economy

import "time"

// Fleet operation pricing.
const (
	// RenameFee is the flat charge for changing a unit number.
	RenameFee = 500

	// ResaleRate is applied after wear depreciation when selling back
	// to the dealer, so selling always realizes less than the used
	// market would ask.
	ResaleRate = 0.80

	// ScrapRate is the flat fraction of sticker price a scrapper pays
	// regardless of condition.
	ScrapRate = 0.12

	// RepairCostPointsPerFee prices a repair: one maintenanceCost fee
	// per this many points of missing health.
	RepairCostPointsPerFee = 5

	// PaintCost and PaintDuration cover a full repaint. The unit sits
	// in the paint shop until the minute sweep releases it.
	PaintCost     = 2500
	PaintDuration = 45 * time.Minute
)

// NeedsRepairHealth is the health at which a unit coming off a job is
// parked as needs_repair instead of returning to available.
const NeedsRepairHealth = 20.0

// AutoAssignExtraChance is the probability that auto-assign pads the
// consist with one unit beyond the horsepower requirement.
const AutoAssignExtraChance = 0.30
