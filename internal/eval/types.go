package eval

import "github.com/jaredlewiswechs/AdanAgent/internal/ledger"

// #region eval-config
// EvalConfig holds thresholds for post-resolution validation.
type EvalConfig struct {
	MinConfidence   float64  // reject if confidence is below this
	MaxConfidence   float64  // reject if confidence exceeds this
	RequiredStages  []string // ledger actions that must appear, in order
	RequireClosure  bool     // non-degraded results must close their trajectory
	MaxLedgerSkewMs int64    // warn if ledger timestamps move backwards by more than this
}

// DefaultEvalConfig returns the checks applied to engine results.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		MinConfidence:   0,
		MaxConfidence:   1,
		RequiredStages:  []string{ledger.StageParseQuery, ledger.StageCommit},
		RequireClosure:  true,
		MaxLedgerSkewMs: 0,
	}
}

// EngineStages is the full stage sequence the governance engine writes.
func EngineStages() []string {
	return []string{
		ledger.StageParseQuery,
		ledger.StageEvaluation,
		ledger.StageGovern,
		ledger.StageMapGlyphs,
		ledger.StageGenerate,
		ledger.StageCommit,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of post-resolution validation.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
