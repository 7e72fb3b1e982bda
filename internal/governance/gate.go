package governance

import "math"

// #region gate

// Gate applies the governance calculus. It holds no mutable state.
type Gate struct {
	t Thresholds
}

// NewGate creates a gate with the given thresholds.
func NewGate(t Thresholds) *Gate {
	return &Gate{t: t}
}

// Thresholds returns the gate's configuration.
func (g *Gate) Thresholds() Thresholds {
	return g.t
}

// Assess classifies correctness c and misconception m.
// State checks run MISCONCEPTION, FOG, CORRECT in that order; status checks
// run FINFR first so ground collapse overrides the ratio.
func (g *Gate) Assess(c, m float64) Assessment {
	k := math.Max(c, m)
	a := Assessment{C: c, M: m, K: k, F: 1 - k}

	switch {
	case m > c && m > g.t.MisconceptionHigh:
		a.State = StateMisconception
	case a.F > g.t.FogHigh:
		a.State = StateFog
	case c > g.t.CorrectHigh:
		a.State = StateCorrect
	default:
		a.State = StatePartial
	}

	a.Ground = math.Max(0.01, 1-m)
	a.Ratio = c / a.Ground
	switch {
	case a.Ground <= g.t.GroundFloor:
		a.Status = StatusFinfr
	case a.Ratio > g.t.RatioRedMin:
		a.Status = StatusRed
	case a.Ratio >= g.t.RatioYellowMin:
		a.Status = StatusYellow
	default:
		a.Status = StatusGreen
	}
	return a
}

// Label assigns the proof label. An error during resolution rules out
// VERIFIED.
func (g *Gate) Label(a Assessment, action Action, hadError bool) ProofLabel {
	if a.C >= g.t.CorrectHigh && a.Status == StatusGreen && !hadError {
		return ProofVerified
	}
	if a.F > g.t.FogHigh || a.State == StateFog || action == ActionClarify {
		return ProofNeedsData
	}
	return ProofLikely
}

// #endregion gate
