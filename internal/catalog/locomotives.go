package catalog

// LocomotiveModel is a static catalog entry. Owned units copy these
// specs at purchase time; editing the catalog never touches the fleet.
type LocomotiveModel struct {
	Model        string
	Manufacturer string
	Tier         int
	Tags         []string

	Horsepower      int
	TopSpeed        int // mph
	Weight          int // tons
	Reliability     float64
	FuelCapacity    int // gallons
	FuelEfficiency  float64
	MaintenanceCost int64

	BaseValue int64 // new purchase price
	EraStart  int   // first production year, used as the age proxy
}

// StarterModel is granted to every new player.
const StarterModel = "GP38-2"

// Locomotives is the primary dealership catalog.
var Locomotives = []LocomotiveModel{
	{
		Model: "SW1500", Manufacturer: "EMD", Tier: 1,
		Tags:       []string{"switcher", "yard"},
		Horsepower: 1500, TopSpeed: 60, Weight: 124, Reliability: 0.93,
		FuelCapacity: 1100, FuelEfficiency: 0.82, MaintenanceCost: 900,
		BaseValue: 95000, EraStart: 1966,
	},
	{
		Model: "GP38-2", Manufacturer: "EMD", Tier: 1,
		Tags:       []string{"road-switcher", "local"},
		Horsepower: 2000, TopSpeed: 65, Weight: 125, Reliability: 0.95,
		FuelCapacity: 1600, FuelEfficiency: 0.80, MaintenanceCost: 1100,
		BaseValue: 140000, EraStart: 1972,
	},
	{
		Model: "GP40-2", Manufacturer: "EMD", Tier: 1,
		Tags:       []string{"road-switcher", "local"},
		Horsepower: 3000, TopSpeed: 65, Weight: 128, Reliability: 0.92,
		FuelCapacity: 1600, FuelEfficiency: 0.74, MaintenanceCost: 1350,
		BaseValue: 185000, EraStart: 1972,
	},
	{
		Model: "MP15DC", Manufacturer: "EMD", Tier: 1,
		Tags:       []string{"switcher", "yard"},
		Horsepower: 1500, TopSpeed: 60, Weight: 123, Reliability: 0.91,
		FuelCapacity: 1000, FuelEfficiency: 0.84, MaintenanceCost: 850,
		BaseValue: 90000, EraStart: 1974,
	},
	{
		Model: "SD40-2", Manufacturer: "EMD", Tier: 2,
		Tags:       []string{"road", "mainline"},
		Horsepower: 3000, TopSpeed: 70, Weight: 184, Reliability: 0.96,
		FuelCapacity: 3200, FuelEfficiency: 0.72, MaintenanceCost: 1800,
		BaseValue: 320000, EraStart: 1972,
	},
	{
		Model: "SD60", Manufacturer: "EMD", Tier: 2,
		Tags:       []string{"road", "mainline"},
		Horsepower: 3800, TopSpeed: 70, Weight: 192, Reliability: 0.90,
		FuelCapacity: 4000, FuelEfficiency: 0.70, MaintenanceCost: 2100,
		BaseValue: 410000, EraStart: 1984,
	},
	{
		Model: "Dash 9-44CW", Manufacturer: "GE", Tier: 2,
		Tags:       []string{"road", "mainline"},
		Horsepower: 4400, TopSpeed: 74, Weight: 198, Reliability: 0.93,
		FuelCapacity: 5000, FuelEfficiency: 0.68, MaintenanceCost: 2500,
		BaseValue: 520000, EraStart: 1993,
	},
	{
		Model: "AC4400CW", Manufacturer: "GE", Tier: 2,
		Tags:       []string{"road", "mainline", "heavy-haul"},
		Horsepower: 4400, TopSpeed: 74, Weight: 210, Reliability: 0.92,
		FuelCapacity: 5000, FuelEfficiency: 0.67, MaintenanceCost: 2700,
		BaseValue: 560000, EraStart: 1994,
	},
	{
		Model: "SD70ACe", Manufacturer: "EMD", Tier: 3,
		Tags:       []string{"road", "mainline", "heavy-haul"},
		Horsepower: 4300, TopSpeed: 75, Weight: 208, Reliability: 0.97,
		FuelCapacity: 4900, FuelEfficiency: 0.75, MaintenanceCost: 3200,
		BaseValue: 780000, EraStart: 2004,
	},
	{
		Model: "ES44AC", Manufacturer: "GE", Tier: 3,
		Tags:       []string{"road", "mainline", "heavy-haul"},
		Horsepower: 4400, TopSpeed: 75, Weight: 212, Reliability: 0.96,
		FuelCapacity: 5000, FuelEfficiency: 0.76, MaintenanceCost: 3300,
		BaseValue: 820000, EraStart: 2005,
	},
}

// ModelByName looks up a catalog entry by model name.
func ModelByName(name string) (LocomotiveModel, bool) {
	for _, m := range Locomotives {
		if m.Model == name {
			return m, true
		}
	}
	return LocomotiveModel{}, false
}
