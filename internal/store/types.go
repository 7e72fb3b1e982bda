package store

import (
	"time"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// #region summary
// Summary is the indexed projection of a stored result.
type Summary struct {
	ResultID   string
	SessionID  string
	Query      string
	Tier       result.Tier
	Method     string
	Shape      lexicon.QueryShape
	Entity     string
	Confidence float64
	State      governance.CognitiveState
	Status     governance.ConstraintStatus
	ProofLabel governance.ProofLabel
	Error      string
	CreatedAt  time.Time
}
// #endregion summary

// #region session
// Session tracks the latest result committed under a session id.
type Session struct {
	SessionID    string
	LastResultID string
	Turns        int
	UpdatedAt    time.Time
}
// #endregion session
