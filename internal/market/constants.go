package market

// Jobs generated per tier on every refresh. Generation is
// unconditional; tier gating applies to assignment only.
const (
	LocalFreightJobCount  = 4
	YardSwitchingJobCount = 2
	MainlineJobCount      = 3
	SpecialJobCount       = 2
)

// Tier 1 local freight parameters.
const (
	LocalDistanceMinMi = 5
	LocalDistanceMaxMi = 15
	LocalDurationMin   = 8
	LocalDurationMax   = 15
	LocalCarsMin       = 4
	LocalCarsMax       = 12
	LocalHPPerCar      = 250
	LocalPayoutRate    = 25 // $ per mile-car
	LocalXPPerMile     = 5
)

// Tier 1 yard switching parameters. Yard jobs move no road miles, so
// payout and XP key off car count.
const (
	YardDurationMin  = 6
	YardDurationMax  = 10
	YardCarsMin      = 6
	YardCarsMax      = 15
	YardHPRequired   = 1500
	YardPayoutPerCar = 80
	YardXPPerCar     = 4
)

// Tier 2 mainline freight parameters.
const (
	MainlineDistanceMinMi = 80
	MainlineDistanceMaxMi = 200
	MainlineDurationMin   = 45
	MainlineDurationMax   = 90
	MainlineCarsMin       = 15
	MainlineCarsMax       = 40
	MainlineCarJitter     = 3
	MainlineHPPerCar      = 350
	MainlinePayoutRate    = 12
	MainlineXPPerMile     = 8
)

// Tier 3 special freight parameters.
const (
	SpecialDistanceMinMi = 200
	SpecialDistanceMaxMi = 500
	SpecialDurationMin   = 120
	SpecialDurationMax   = 300
	SpecialCarsMin       = 40
	SpecialCarsMax       = 80
	SpecialHPPerCar      = 450
	SpecialPayoutRate    = 9
	SpecialXPPerMile     = 15
)

// Used/loaner market parameters.
const (
	LoanerCountMin = 2
	LoanerCountMax = 7

	LoanerAgeMinYears = 3
	LoanerAgeMaxYears = 40

	AnnualMileageMin = 18000
	AnnualMileageMax = 35000

	PaintPenaltyMin = 5.0
	PaintPenaltyMax = 15.0
	PaintFloor      = 5.0

	DepreciationCap     = 0.70
	DepreciationPerWear = 0.80 // applied to the (0..1) wear fraction
	DepreciationPerYear = 0.01
)

// DealershipStockMax bounds the per-model stock roll (0..max).
const DealershipStockMax = 17

// Refresh cadence. Boundaries land on :00 and :30; the staleness check
// uses 29 minutes of slack so a tick landing a few seconds after the
// previous regeneration does not miss the window.
const (
	RefreshStaleness = 29 // minutes
)
