package eval

import (
	"fmt"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// #region eval-harness
// EvalHarness runs lightweight validation on a committed SearchResult.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run checks structural guarantees of r. It never mutates r.
func (h *EvalHarness) Run(r result.SearchResult) EvalResult {
	var metrics []EvalMetric
	var failReasons []string

	check := func(name string, value float64, pass bool, reason string) {
		metrics = append(metrics, EvalMetric{Name: name, Value: value, Pass: pass})
		if !pass {
			failReasons = append(failReasons, reason)
		}
	}

	// 1. Confidence bounds
	check("confidence", r.Confidence,
		r.Confidence >= h.config.MinConfidence && r.Confidence <= h.config.MaxConfidence,
		fmt.Sprintf("confidence %.4f outside [%.2f, %.2f]", r.Confidence, h.config.MinConfidence, h.config.MaxConfidence))

	// 2. Ledger numbering 1..n
	seqOK := true
	for i, s := range r.Ledger {
		if s.Step != i+1 {
			seqOK = false
			break
		}
	}
	check("ledger_sequence", float64(len(r.Ledger)), seqOK && len(r.Ledger) > 0,
		"ledger steps are not numbered 1..n")

	// 3. Timestamps monotonic within tolerance (informational)
	var skew int64
	for i := 1; i < len(r.Ledger); i++ {
		if d := r.Ledger[i-1].Timestamp - r.Ledger[i].Timestamp; d > skew {
			skew = d
		}
	}
	metrics = append(metrics, EvalMetric{
		Name:  "ledger_skew_ms",
		Value: float64(skew),
		Pass:  skew <= h.config.MaxLedgerSkewMs,
	})

	// 4. Required stages appear in order
	missing := missingStage(r, h.config.RequiredStages)
	check("ledger_stages", float64(len(h.config.RequiredStages)), missing == "",
		fmt.Sprintf("ledger missing stage %q", missing))

	// 5. Trajectory closure, unless the result is degraded
	degraded := r.Error != "" || r.CSV.State == governance.StateFog
	closed := r.IsClosed || degraded || !h.config.RequireClosure
	check("trajectory_closed", boolValue(r.IsClosed), closed && len(r.TrajectoryPoints) > 0,
		"trajectory not closed")

	// 6. An errored result is never VERIFIED
	check("proof_label", boolValue(r.Error == ""), !(r.Error != "" && r.ProofLabel == governance.ProofVerified),
		"errored result labelled VERIFIED")

	passed := len(failReasons) == 0
	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness

// #region helpers
// missingStage returns the first required stage not found after the previous
// one, or "" when all are present in order.
func missingStage(r result.SearchResult, stages []string) string {
	next := 0
	for _, s := range r.Ledger {
		if next < len(stages) && s.Action == stages[next] {
			next++
		}
	}
	if next < len(stages) {
		return stages[next]
	}
	return ""
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
