package catalog

// Freight type keys used by the job generator.
const (
	FreightCoal       = "coal"
	FreightIntermodal = "intermodal"
	FreightAutomotive = "automotive"
	FreightGrain      = "grain"
	FreightLumber     = "lumber"
	FreightChemicals  = "chemicals"
	FreightSteel      = "steel"
	FreightGeneral    = "general"
)

// GeneralFreightTypes are eligible for tier 1 and tier 2 jobs.
var GeneralFreightTypes = []string{
	FreightGrain,
	FreightLumber,
	FreightChemicals,
	FreightSteel,
	FreightGeneral,
	FreightCoal,
	FreightIntermodal,
}

// SpecialFreightTypes are the restricted tier 3 set.
var SpecialFreightTypes = []string{
	FreightCoal,
	FreightIntermodal,
	FreightAutomotive,
}

// MixedManifestCars is the car-type pool for general (mixed) manifests.
// Weight ranges are tons per loaded car.
var MixedManifestCars = []struct {
	CarType   string
	Content   string
	MinWeight int
	MaxWeight int
}{
	{CarType: "Boxcar", Content: "Packaged Goods", MinWeight: 60, MaxWeight: 90},
	{CarType: "Tank Car", Content: "Chemicals", MinWeight: 90, MaxWeight: 120},
	{CarType: "Gondola", Content: "Scrap Steel", MinWeight: 80, MaxWeight: 110},
	{CarType: "Centerbeam Flat", Content: "Lumber", MinWeight: 70, MaxWeight: 95},
	{CarType: "Covered Hopper", Content: "Grain", MinWeight: 95, MaxWeight: 115},
	{CarType: "Coil Car", Content: "Steel Coils", MinWeight: 100, MaxWeight: 130},
}
