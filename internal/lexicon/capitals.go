package lexicon

// Capitals is the place -> capital table for deterministic local answers.
// Keys are lowercase.
var Capitals = map[string]string{
	"france":         "Paris",
	"germany":        "Berlin",
	"italy":          "Rome",
	"spain":          "Madrid",
	"japan":          "Tokyo",
	"china":          "Beijing",
	"india":          "New Delhi",
	"canada":         "Ottawa",
	"mexico":         "Mexico City",
	"brazil":         "Brasília",
	"australia":      "Canberra",
	"united kingdom": "London",
	"united states":  "Washington, D.C.",
	"usa":            "Washington, D.C.",
	"texas":          "Austin",
	"california":     "Sacramento",
	"new york":       "Albany",
	"florida":        "Tallahassee",
}
