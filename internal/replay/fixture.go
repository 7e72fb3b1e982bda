package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jaredlewiswechs/AdanAgent/internal/orchestrator"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	Config          FixtureConfig           `json:"config"`
	Cases           []FixtureCase           `json:"cases"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureConfig tunes a replay run.
type FixtureConfig struct {
	Parallelism int `json:"parallelism"`
}

// FixtureCase is one recorded query. Reply is the canned delegated-reasoning
// output; an empty reply makes the delegated call fail.
type FixtureCase struct {
	CaseID     string `json:"case_id"`
	Mode       Mode   `json:"mode"`
	Query      string `json:"query"`
	Complexity string `json:"complexity,omitempty"`
	Reply      string `json:"reply,omitempty"`
}

// FixtureExpectedResult captures the expected outcome per case. Empty fields
// are not checked.
type FixtureExpectedResult struct {
	CaseID     string `json:"case_id"`
	Tier       int    `json:"tier,omitempty"`
	Shape      string `json:"shape,omitempty"`
	Entity     string `json:"entity,omitempty"`
	State      string `json:"state,omitempty"`
	Status     string `json:"status,omitempty"`
	ProofLabel string `json:"proof_label,omitempty"`
	HasError   *bool  `json:"has_error,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToCase converts a FixtureCase to a domain Case.
func (fc *FixtureCase) ToCase() Case {
	mode := fc.Mode
	if mode == "" {
		mode = ModeResolve
	}
	c := Case{CaseID: fc.CaseID, Mode: mode, Query: fc.Query, Reply: fc.Reply}
	if cx, ok := orchestrator.ParseComplexity(fc.Complexity); ok {
		c.Complexity = cx
	}
	return c
}

// ToReplayConfig converts a FixtureConfig to a domain ReplayConfig.
func (fc *FixtureConfig) ToReplayConfig() ReplayConfig {
	cfg := DefaultReplayConfig()
	if fc.Parallelism > 0 {
		cfg.Parallelism = fc.Parallelism
	}
	return cfg
}

// #endregion fixture-loader

// #region fixture-export

// FromResult turns a stored result into a replayable case and the outcome it
// must reproduce. Governed results carry a synthesized reply holding the
// evaluation the engine saw.
func FromResult(r result.SearchResult) (FixtureCase, FixtureExpectedResult, error) {
	fc := FixtureCase{CaseID: r.ID, Mode: ModeResolve, Query: r.Query}
	hasErr := r.Error != ""

	switch {
	case r.Method == orchestrator.MethodGovernance:
		fc.Mode = ModeAsk
		if !hasErr {
			reply, err := json.Marshal(map[string]any{
				"correctness":   r.CSV.C,
				"misconception": r.CSV.M,
				"entity":        r.Entity,
				"response":      r.Insight,
				"action":        string(r.Action),
			})
			if err != nil {
				return FixtureCase{}, FixtureExpectedResult{}, fmt.Errorf("marshal reply: %w", err)
			}
			fc.Reply = string(reply)
		}
	case r.Tier == result.TierDelegated && !hasErr:
		fc.Reply = r.Insight
	}

	exp := FixtureExpectedResult{
		CaseID:     r.ID,
		Tier:       int(r.Tier),
		Shape:      string(r.Shape),
		Entity:     r.Entity,
		State:      string(r.CSV.State),
		Status:     string(r.Constraint.Status),
		ProofLabel: string(r.ProofLabel),
		HasError:   &hasErr,
	}
	return fc, exp, nil
}

// #endregion fixture-export
