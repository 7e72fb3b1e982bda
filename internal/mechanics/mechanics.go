package mechanics

import (
	"strings"
	"unicode"

	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
)

// #region types

// Stats counts glyph physics over a word. UNKNOWN glyphs are not counted.
type Stats struct {
	Stability   int `json:"stability"`
	Containment int `json:"containment"`
	Flow        int `json:"flow"`
	Stop        int `json:"stop"`
	Energy      int `json:"energy"`
	Alignment   int `json:"alignment"`
}

// Vector returns the counts in export order:
// stability, containment, flow, stop, energy, alignment.
func (s Stats) Vector() [6]int {
	return [6]int{s.Stability, s.Containment, s.Flow, s.Stop, s.Energy, s.Alignment}
}

// Total is the number of counted glyphs.
func (s Stats) Total() int {
	return s.Stability + s.Containment + s.Flow + s.Stop + s.Energy + s.Alignment
}

// AnalysisResult is the structural reading of a single word.
type AnalysisResult struct {
	Word     string          `json:"word"`
	Glyphs   []lexicon.Glyph `json:"glyphs"`
	Stats    Stats           `json:"stats"`
	Profile  string          `json:"profile"`
	LoadPath string          `json:"loadPath"`
}

// Profile labels.
const (
	ProfileAmorphous     = "AMORPHOUS"
	ProfileArchitectural = "ARCHITECTURAL (Static)"
	ProfileDynamic       = "DYNAMIC (Engine)"
	ProfileVessel        = "VESSEL (Holding)"
	ProfileFluid         = "FLUID DYNAMIC"
	ProfileTool          = "TOOL / WEAPON"
)

// #endregion types

// #region analyze

// Analyze strips non-letters from word, upper-cases it and reads each glyph.
// It never fails.
func Analyze(word string) AnalysisResult {
	var b strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	clean := b.String()

	res := AnalysisResult{Word: clean, Glyphs: []lexicon.Glyph{}}
	roles := make([]string, 0, len(clean))
	for _, r := range clean {
		g := lexicon.LookupGlyph(r)
		res.Glyphs = append(res.Glyphs, g)
		roles = append(roles, g.Role)
		count(&res.Stats, g.Physics)
	}
	res.Profile = classify(res.Stats)
	res.LoadPath = strings.Join(roles, " -> ")
	return res
}

func count(s *Stats, p lexicon.Physics) {
	switch p {
	case lexicon.PhysicsStability:
		s.Stability++
	case lexicon.PhysicsContainment:
		s.Containment++
	case lexicon.PhysicsFlow:
		s.Flow++
	case lexicon.PhysicsStop:
		s.Stop++
	case lexicon.PhysicsEnergy:
		s.Energy++
	case lexicon.PhysicsAlignment:
		s.Alignment++
	}
}

// classify runs the profile rules top to bottom. A later match overwrites an
// earlier one, so the order is the priority.
func classify(s Stats) string {
	profile := ProfileAmorphous
	if s.Stop > 0 && s.Stability > 0 {
		profile = ProfileArchitectural
	}
	if s.Energy > 0 && s.Containment > 0 {
		profile = ProfileDynamic
	}
	if s.Containment > 0 && s.Stop == 0 {
		profile = ProfileVessel
	}
	if s.Flow > 0 && s.Energy > 0 {
		profile = ProfileFluid
	}
	if s.Stop > 0 && s.Energy > 0 && s.Alignment > 0 {
		profile = ProfileTool
	}
	return profile
}

// #endregion analyze
