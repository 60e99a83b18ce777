// Package degradation maps accumulated mileage to unit health and a
// human condition label.
package degradation

// WearPerMile is the health lost per mile of service.
const WearPerMile = 0.00004

// Condition status keys.
const (
	ConditionExcellent        = "excellent"
	ConditionGood             = "good"
	ConditionFair             = "fair"
	ConditionNeedsMinorRepair = "needs_minor_repair"
	ConditionNeedsMajorRepair = "needs_major_repair"
	ConditionCritical         = "critical"
)

// excellentMileageCeiling caps the top band: a unit past this mileage
// never rates excellent regardless of health.
const excellentMileageCeiling = 50000

// HealthFor returns health in [0,100] for the given mileage.
//
// baseReliability is accepted for per-model wear tuning but does not
// currently modulate the rate.
func HealthFor(mileage int64, baseReliability float64) float64 {
	_ = baseReliability
	if mileage < 0 {
		mileage = 0
	}
	health := 100 - float64(mileage)*WearPerMile
	if health < 0 {
		return 0
	}
	return health
}

// Condition pairs a status key with its display label.
type Condition struct {
	Status string
	Label  string
}

// ConditionLabel maps (mileage, health) to one of six bands. Only the
// top band consults mileage.
func ConditionLabel(mileage int64, health float64) Condition {
	switch {
	case health >= 90 && mileage < excellentMileageCeiling:
		return Condition{Status: ConditionExcellent, Label: "Excellent"}
	case health >= 75:
		return Condition{Status: ConditionGood, Label: "Good"}
	case health >= 60:
		return Condition{Status: ConditionFair, Label: "Fair"}
	case health >= 40:
		return Condition{Status: ConditionNeedsMinorRepair, Label: "Needs Minor Repair"}
	case health >= 20:
		return Condition{Status: ConditionNeedsMajorRepair, Label: "Needs Major Repair"}
	default:
		return Condition{Status: ConditionCritical, Label: "Critical"}
	}
}
