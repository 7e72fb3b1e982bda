package lexicon

import "unicode"

// #region physics

// Physics is the structural property a glyph contributes to a word.
type Physics string

const (
	PhysicsStability   Physics = "STABILITY"
	PhysicsContainment Physics = "CONTAINMENT"
	PhysicsFlow        Physics = "FLOW"
	PhysicsStop        Physics = "STOP"
	PhysicsEnergy      Physics = "ENERGY"
	PhysicsAlignment   Physics = "ALIGNMENT"
	PhysicsUnknown     Physics = "UNKNOWN"
)

// #endregion physics

// #region glyph

// Glyph describes one letter of the reference table.
type Glyph struct {
	Char    string  `json:"char"`
	Role    string  `json:"role"`
	Physics Physics `json:"physics"`
	Vector  string  `json:"vector"`
}

// Glyphs is the fixed A-Z table. Never mutated.
var Glyphs = map[rune]Glyph{
	'A': {"A", "Apex", PhysicsAlignment, "Two strokes converging on a single peak"},
	'B': {"B", "Bound", PhysicsContainment, "Stacked chambers closed against a spine"},
	'C': {"C", "Cup", PhysicsContainment, "Open curve that gathers from one side"},
	'D': {"D", "Dome", PhysicsContainment, "Closed arc braced on a wall"},
	'E': {"E", "Emitter", PhysicsEnergy, "Three prongs pushing outward from a spine"},
	'F': {"F", "Flag", PhysicsFlow, "Arms trailing in a single direction"},
	'G': {"G", "Gate", PhysicsContainment, "Curve folding back into a latch"},
	'H': {"H", "Bridge", PhysicsStability, "Twin pillars joined by a beam"},
	'I': {"I", "Pillar", PhysicsAlignment, "Single vertical axis"},
	'J': {"J", "Hook", PhysicsFlow, "Descent that turns and lifts"},
	'K': {"K", "Block", PhysicsStop, "Spine struck by diverging wedges"},
	'L': {"L", "Base", PhysicsStability, "Upright meeting a ground line"},
	'M': {"M", "Ridge", PhysicsStability, "Repeated peaks on a wide stance"},
	'N': {"N", "Spark", PhysicsEnergy, "Diagonal discharge between two rails"},
	'O': {"O", "Vessel", PhysicsContainment, "Closed loop with no exit"},
	'P': {"P", "Post", PhysicsStop, "Upright capped by a closed head"},
	'Q': {"Q", "Lock", PhysicsStop, "Closed loop pinned by a tail"},
	'R': {"R", "Runner", PhysicsEnergy, "Closed head kicking a leg forward"},
	'S': {"S", "Stream", PhysicsFlow, "Double curve carrying motion through"},
	'T': {"T", "Tee", PhysicsStop, "Crossbar halting a vertical"},
	'U': {"U", "Basin", PhysicsContainment, "Open cradle facing upward"},
	'V': {"V", "Vector", PhysicsAlignment, "Two lines meeting at a directed point"},
	'W': {"W", "Wave", PhysicsFlow, "Oscillation across a baseline"},
	'X': {"X", "Cross", PhysicsStop, "Intersecting diagonals that cancel motion"},
	'Y': {"Y", "Fork", PhysicsAlignment, "Single stem splitting into a choice"},
	'Z': {"Z", "Bolt", PhysicsEnergy, "Zigzag discharge between two planes"},
}

// LookupGlyph returns the table glyph for r (case-insensitive) or a synthetic
// UNKNOWN glyph.
func LookupGlyph(r rune) Glyph {
	if g, ok := Glyphs[unicode.ToUpper(r)]; ok {
		return g
	}
	return Glyph{
		Char:    string(r),
		Role:    "Unmapped",
		Physics: PhysicsUnknown,
		Vector:  "No structural reading",
	}
}

// #endregion glyph
