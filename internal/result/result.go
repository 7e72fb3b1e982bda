package result

import (
	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/ledger"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/mechanics"
	"github.com/jaredlewiswechs/AdanAgent/internal/repair"
	"github.com/jaredlewiswechs/AdanAgent/internal/trajectory"
)

// #region types

// Tier identifies which resolution strategy produced a result.
type Tier int

const (
	TierPattern   Tier = 1
	TierCluster   Tier = 2
	TierDelegated Tier = 3
)

// Lexical is the synonym/antonym coverage of an answer.
type Lexical struct {
	Synonyms []string `json:"synonyms"`
	Antonyms []string `json:"antonyms"`
	Equation string   `json:"equation"`
}

// CSV is the cognitive state vector.
type CSV struct {
	C     float64                   `json:"c"`
	M     float64                   `json:"m"`
	F     float64                   `json:"f"`
	K     float64                   `json:"k"`
	State governance.CognitiveState `json:"state"`
}

// Constraint is the ground-truth pressure reading.
type Constraint struct {
	Status governance.ConstraintStatus `json:"status"`
	Ratio  float64                     `json:"ratio"`
}

// SearchResult is the output of one resolution. It is built once and not
// mutated afterwards.
type SearchResult struct {
	ID               string                    `json:"id"`
	Query            string                    `json:"query"`
	Tier             Tier                      `json:"tier"`
	Method           string                    `json:"method"`
	Shape            lexicon.QueryShape        `json:"shape"`
	Entity           string                    `json:"entity"`
	Confidence       float64                   `json:"confidence"`
	Details          string                    `json:"details"`
	Insight          string                    `json:"insight"`
	Lexical          *Lexical                  `json:"lexical,omitempty"`
	CSV              CSV                       `json:"csv"`
	Constraint       Constraint                `json:"constraint"`
	Action           governance.Action         `json:"action"`
	TrajectoryPoints []trajectory.Point        `json:"trajectoryPoints"`
	IsClosed         bool                      `json:"isClosed"`
	GroundingSources []repair.Source           `json:"groundingSources,omitempty"`
	ProofLabel       governance.ProofLabel     `json:"proofLabel"`
	Ledger           []ledger.Step             `json:"ledger"`
	GlyphAnalysis    *mechanics.AnalysisResult `json:"glyphAnalysis,omitempty"`
	Error            string                    `json:"error,omitempty"`
}

// CSVFrom copies a governance assessment into the result shape.
func CSVFrom(a governance.Assessment) CSV {
	return CSV{C: a.C, M: a.M, F: a.F, K: a.K, State: a.State}
}

// #endregion types

// #region turn
// Turn is one prior exchange fed back into the delegated prompt.
type Turn struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// #endregion turn
