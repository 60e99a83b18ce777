package catalog

// DefaultHomeCity anchors every tier 1 job and one endpoint of every
// tier 2/3 job.
const DefaultHomeCity = "Chicago"

// Cities is the mainline destination pool for tier 2 and tier 3 jobs.
var Cities = []string{
	"Chicago",
	"St. Louis",
	"Kansas City",
	"Memphis",
	"Detroit",
	"Cleveland",
	"Minneapolis",
	"Omaha",
	"Louisville",
	"Indianapolis",
}

// LocalIndustries name the in-town endpoints for tier 1 local freight.
var LocalIndustries = []string{
	"Riverside Grain Elevator",
	"Calumet Steel Works",
	"Eastside Intermodal Ramp",
	"Harbor District Warehouse Row",
	"Western Ave. Lumber Yard",
	"Southside Chemical Terminal",
	"Union Stockyards Spur",
	"Northline Auto Plant",
	"Canal Street Team Track",
	"Cicero Aggregates Pit",
}

// YardTasks is the fixed task pool for yard switching jobs.
var YardTasks = []string{
	"Sort inbound interchange cut",
	"Build outbound manifest",
	"Spot industry cars on the service track",
	"Pull loads from the classification bowl",
	"Shuffle bad-order cars to the RIP track",
	"Assemble unit train for departure",
}
