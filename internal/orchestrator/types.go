package orchestrator

// #region imports
import (
	"context"
	"strings"

	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// #endregion

// #region complexity

// Complexity is the requested explanation depth.
type Complexity string

const (
	ComplexityELI5      Complexity = "ELI5"
	ComplexityStandard  Complexity = "STANDARD"
	ComplexityTechnical Complexity = "TECHNICAL"
)

// ParseComplexity maps free text to a Complexity; ok is false for unknown
// values.
func ParseComplexity(s string) (Complexity, bool) {
	switch c := Complexity(strings.ToUpper(strings.TrimSpace(s))); c {
	case ComplexityELI5, ComplexityStandard, ComplexityTechnical:
		return c, true
	}
	return "", false
}

// #endregion

// #region request

// Request is one governed resolution. Complexity is inferred from the query
// when empty. History, when nil, is loaded from the engine's HistorySource.
type Request struct {
	Query      string
	Complexity Complexity
	SessionID  string
	History    []result.Turn
}

// #endregion

// #region interfaces

// Reasoner is the delegated-reasoning capability.
type Reasoner interface {
	Call(ctx context.Context, msgs []reasoner.Message, useCache bool) (string, error)
}

// HistorySource supplies prior turns of a session, oldest first.
type HistorySource interface {
	History(sessionID string, n int) ([]result.Turn, error)
}

// ResultSink persists committed results.
type ResultSink interface {
	SaveResult(sessionID string, r result.SearchResult) error
}

// #endregion
