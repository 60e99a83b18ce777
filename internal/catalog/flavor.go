package catalog

// PreviousOwners is the provenance pool for used/loaner listings.
var PreviousOwners = []string{
	"Great Plains Western",
	"Blue Ridge & Atlantic",
	"Lakeshore Terminal Railway",
	"Prairie State Grain Lines",
	"Ironhorse Leasing Co.",
	"Wabash Valley Shortline",
	"Gulf & Interior Railroad",
	"Cascade Northern",
	"Heartland Rail Services",
	"Twin Rivers Switching",
}

// Liveries is the paint-scheme pool paired with previous owners.
var Liveries = []string{
	"Faded Pullman Green",
	"Oxide Red with White Stripe",
	"Weathered Santa Fe Blue",
	"Patched Leasing Grey",
	"Sun-bleached Yellowbonnet",
	"Two-tone Harvest Gold",
	"Chipped Tuscan Red",
	"Primer Black",
}
