package lexicon

// #region query-shape

// QueryShape is the canonical equation template a query resolves to.
type QueryShape string

const (
	ShapeCapitalOf     QueryShape = "CAPITAL_OF"
	ShapePopulationOf  QueryShape = "POPULATION_OF"
	ShapeFounderOf     QueryShape = "FOUNDER_OF"
	ShapeLeaderOf      QueryShape = "LEADER_OF"
	ShapeInventorOf    QueryShape = "INVENTOR_OF"
	ShapeAuthorOf      QueryShape = "AUTHOR_OF"
	ShapeLocationOf    QueryShape = "LOCATION_OF"
	ShapeDateOf        QueryShape = "DATE_OF"
	ShapeDefinition    QueryShape = "DEFINITION"
	ShapeCurrencyOf    QueryShape = "CURRENCY_OF"
	ShapeLanguageOf    QueryShape = "LANGUAGE_OF"
	ShapeHeightOf      QueryShape = "HEIGHT_OF"
	ShapeDistanceOf    QueryShape = "DISTANCE_OF"
	ShapeCompositionOf QueryShape = "COMPOSITION_OF"
	ShapeAgeOf         QueryShape = "AGE_OF"
	ShapeUnknown       QueryShape = "UNKNOWN"
)

var equations = map[QueryShape]string{
	ShapeCapitalOf:     "capital(X) = ?",
	ShapePopulationOf:  "population(X) = ?",
	ShapeFounderOf:     "founder(X) = ?",
	ShapeLeaderOf:      "leader(X) = ?",
	ShapeInventorOf:    "inventor(X) = ?",
	ShapeAuthorOf:      "author(X) = ?",
	ShapeLocationOf:    "location(X) = ?",
	ShapeDateOf:        "date(X) = ?",
	ShapeDefinition:    "define(X) = ?",
	ShapeCurrencyOf:    "currency(X) = ?",
	ShapeLanguageOf:    "language(X) = ?",
	ShapeHeightOf:      "height(X) = ?",
	ShapeDistanceOf:    "distance(X) = ?",
	ShapeCompositionOf: "composition(X) = ?",
	ShapeAgeOf:         "age(X) = ?",
	ShapeUnknown:       "f(X) = ?",
}

// Equation returns the canonical template, e.g. "capital(X) = ?".
func (s QueryShape) Equation() string {
	if eq, ok := equations[s]; ok {
		return eq
	}
	return equations[ShapeUnknown]
}

// #endregion query-shape

// #region clusters

// SemanticCluster is a named keyword set scored against query tokens.
type SemanticCluster struct {
	Name     string
	Keywords map[string]bool
	Shape    QueryShape
}

func cluster(name string, shape QueryShape, words ...string) SemanticCluster {
	kw := make(map[string]bool, len(words))
	for _, w := range words {
		kw[w] = true
	}
	return SemanticCluster{Name: name, Keywords: kw, Shape: shape}
}

// Clusters is ordered; the order is the Tier 2 check order.
var Clusters = []SemanticCluster{
	cluster("CAPITAL", ShapeCapitalOf, "capital", "capitol", "seat", "government", "administrative"),
	cluster("FOUNDER", ShapeFounderOf, "founder", "founders", "founded", "established", "cofounder", "started"),
	cluster("POPULATION", ShapePopulationOf, "population", "populous", "people", "inhabitants", "residents", "citizens", "many"),
	cluster("LEADER", ShapeLeaderOf, "president", "king", "queen", "leader", "ruler", "prime", "minister", "chancellor", "monarch", "governor", "mayor", "emperor", "head", "runs", "rules"),
	cluster("INVENTOR", ShapeInventorOf, "invented", "inventor", "invention", "discovered", "discoverer", "created", "creator"),
	cluster("AUTHOR", ShapeAuthorOf, "wrote", "author", "writer", "penned", "novel", "book", "poem"),
	cluster("LOCATION", ShapeLocationOf, "where", "located", "location", "situated", "find", "map"),
	cluster("DATE", ShapeDateOf, "when", "year", "date", "happened", "occur", "occurred", "born", "died"),
	cluster("DEFINITION", ShapeDefinition, "define", "definition", "meaning", "means", "mean", "explain"),
	cluster("CURRENCY", ShapeCurrencyOf, "currency", "money", "dollar", "euro", "coin", "paid"),
	cluster("LANGUAGE", ShapeLanguageOf, "language", "languages", "speak", "spoken", "tongue", "dialect"),
	cluster("HEIGHT", ShapeHeightOf, "tall", "height", "high", "elevation", "feet", "meters"),
	cluster("DISTANCE", ShapeDistanceOf, "far", "distance", "miles", "kilometers", "away", "between"),
	cluster("COMPOSITION", ShapeCompositionOf, "made", "composed", "consist", "consists", "ingredients", "contains", "formula"),
	cluster("AGE", ShapeAgeOf, "old", "age", "aged", "oldest", "ancient", "older"),
}

// #endregion clusters

// #region noise-words

// NoiseWords are dropped during Tier 2 entity extraction.
var NoiseWords = map[string]bool{
	"what": true, "does": true, "from": true, "the": true, "who": true,
	"is": true, "are": true, "was": true, "were": true, "of": true,
	"a": true, "an": true, "in": true, "on": true, "at": true,
	"to": true, "for": true,
}

// #endregion noise-words
