package governance

// #region enums

// CognitiveState classifies answer reliability.
type CognitiveState string

const (
	StateCorrect       CognitiveState = "CORRECT"
	StatePartial       CognitiveState = "PARTIAL"
	StateMisconception CognitiveState = "MISCONCEPTION"
	StateFog           CognitiveState = "FOG"
)

// ConstraintStatus classifies confidence pressure against estimated ground.
type ConstraintStatus string

const (
	StatusGreen  ConstraintStatus = "GREEN"
	StatusYellow ConstraintStatus = "YELLOW"
	StatusRed    ConstraintStatus = "RED"
	StatusFinfr  ConstraintStatus = "FINFR" // epistemic ground collapse
)

// Action is what the engine recommends doing with the answer.
type Action string

const (
	ActionRespond  Action = "RESPOND"
	ActionAbstain  Action = "ABSTAIN"
	ActionClarify  Action = "CLARIFY"
	ActionDefer    Action = "DEFER"
	ActionEscalate Action = "ESCALATE"
)

// ParseAction maps free text to an Action; ok is false for unknown values.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionRespond, ActionAbstain, ActionClarify, ActionDefer, ActionEscalate:
		return a, true
	}
	return "", false
}

// ProofLabel is the user-facing trust badge.
type ProofLabel string

const (
	ProofVerified  ProofLabel = "VERIFIED"
	ProofLikely    ProofLabel = "LIKELY"
	ProofNeedsData ProofLabel = "NEEDS_DATA"
)

// #endregion enums

// #region thresholds

// Thresholds holds every tunable of the calculus.
type Thresholds struct {
	MisconceptionHigh         float64 // m above this (and above c) is a misconception
	FogHigh                   float64 // f above this is fog
	CorrectHigh               float64 // c above this is correct
	RatioYellowMin            float64
	RatioRedMin               float64
	GroundFloor               float64 // ground at or below this collapses to FINFR
	FallbackCorrectness       float64
	FallbackMisconceptionHigh float64
	FallbackMisconceptionLow  float64
	TrajectorySamples         int
	ClosureTolerance          float64
}

// DefaultThresholds returns the stock calculus parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MisconceptionHigh:         0.4,
		FogHigh:                   0.5,
		CorrectHigh:               0.7,
		RatioYellowMin:            0.8,
		RatioRedMin:               1.2,
		GroundFloor:               0.05,
		FallbackCorrectness:       0.35,
		FallbackMisconceptionHigh: 0.95,
		FallbackMisconceptionLow:  0.15,
		TrajectorySamples:         20,
		ClosureTolerance:          1e-9,
	}
}

// #endregion thresholds

// #region assessment

// Assessment is the calculus output for one (c, m) pair.
type Assessment struct {
	C      float64
	M      float64
	F      float64
	K      float64
	State  CognitiveState
	Ground float64
	Ratio  float64
	Status ConstraintStatus
}

// #endregion assessment
