package ledger

import (
	"sync"
	"time"
)

// Step is one entry of the audit trail.
type Step struct {
	Step      int    `json:"step"`
	Action    string `json:"action"`
	Detail    string `json:"detail"`
	Timestamp int64  `json:"timestamp"` // ms since the ledger was opened
}

// Stage names used by the resolver and the engine.
const (
	StageParseQuery = "Parse Query"
	StageTier1      = "Tier 1 Pattern Match"
	StageTier2      = "Tier 2 Cluster Resonance"
	StageTier3      = "Tier 3 Delegated Reasoning"
	StageEvaluation = "AI Evaluation"
	StageGovern     = "Govern Constraints"
	StageMapGlyphs  = "Map Glyphs"
	StageGenerate   = "Generate Response"
	StageCommit     = "Commit"
)

// Ledger is an append-only sequence of steps for one resolution.
type Ledger struct {
	mu    sync.Mutex
	now   func() time.Time
	start time.Time
	steps []Step
}

// New opens a ledger. A nil clock falls back to time.Now.
func New(now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{now: now, start: now()}
}

// Append records a step and returns it.
func (l *Ledger) Append(action, detail string) Step {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := Step{
		Step:      len(l.steps) + 1,
		Action:    action,
		Detail:    detail,
		Timestamp: l.now().Sub(l.start).Milliseconds(),
	}
	l.steps = append(l.steps, s)
	return s
}

// Steps returns a copy of the recorded steps.
func (l *Ledger) Steps() []Step {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Step, len(l.steps))
	copy(out, l.steps)
	return out
}
