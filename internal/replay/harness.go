package replay

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/jaredlewiswechs/AdanAgent/internal/eval"
	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/orchestrator"
	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
	"github.com/jaredlewiswechs/AdanAgent/internal/resolver"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// #region types

// Mode selects which entry point replays a case.
type Mode string

const (
	ModeResolve Mode = "resolve" // tiered resolver
	ModeAsk     Mode = "ask"     // governance engine
)

// Case represents a single recorded query for replay.
type Case struct {
	CaseID     string
	Mode       Mode
	Query      string
	Complexity orchestrator.Complexity
	Reply      string
}

// ReplayConfig bundles the calculus and eval settings for a replay run.
type ReplayConfig struct {
	Parallelism int
	Thresholds  governance.Thresholds
	EvalConfig  eval.EvalConfig
}

// DefaultReplayConfig returns stock thresholds and four workers.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		Parallelism: 4,
		Thresholds:  governance.DefaultThresholds(),
		EvalConfig:  eval.DefaultEvalConfig(),
	}
}

// ReplayResult captures the outcome of replaying one case.
type ReplayResult struct {
	CaseID     string
	Result     result.SearchResult
	EvalResult eval.EvalResult
	Mismatches []string
}

// Passed reports whether the case matched its expectation and passed eval.
func (r ReplayResult) Passed() bool {
	return len(r.Mismatches) == 0 && r.EvalResult.Passed
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalCases int
	Passed     int
	Mismatched int
	EvalFailed int
	ByTier     map[int]int
	ByLabel    map[string]int
	Degraded   int
}

// #endregion types

// #region scripted-reasoner

// errNoReply is returned for cases recorded without a delegated reply.
var errNoReply = errors.New("no recorded reply")

type scripted struct{ reply string }

func (s scripted) Call(context.Context, []reasoner.Message, bool) (string, error) {
	if s.reply == "" {
		return "", errNoReply
	}
	return s.reply, nil
}

// #endregion scripted-reasoner

// #region replay

// Replay runs every case offline against its recorded reply. Cases run
// concurrently up to cfg.Parallelism; results keep case order. expected may
// be shorter than cases or nil.
func Replay(ctx context.Context, cases []Case, expected []FixtureExpectedResult, cfg ReplayConfig) ([]ReplayResult, error) {
	byID := make(map[string]FixtureExpectedResult, len(expected))
	for _, e := range expected {
		byID[e.CaseID] = e
	}
	harness := eval.NewEvalHarness(cfg.EvalConfig)
	engineHarness := eval.NewEvalHarness(engineEval(cfg.EvalConfig))
	patterns, err := governance.NewPatternTable(governance.DefaultPatterns(),
		cfg.Thresholds.FallbackMisconceptionLow, cfg.Thresholds.FallbackMisconceptionHigh)
	if err != nil {
		return nil, err
	}

	results := make([]ReplayResult, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Parallelism > 0 {
		g.SetLimit(cfg.Parallelism)
	}
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rs := scripted{reply: c.Reply}

			var res result.SearchResult
			var ev eval.EvalResult
			switch c.Mode {
			case ModeAsk:
				eng := orchestrator.NewEngine(rs,
					orchestrator.WithGate(governance.NewGate(cfg.Thresholds)),
					orchestrator.WithPatternTable(patterns),
					orchestrator.WithCache(false))
				res = eng.Resolve(gctx, orchestrator.Request{Query: c.Query, Complexity: c.Complexity, SessionID: c.CaseID})
				ev = engineHarness.Run(res)
			case ModeResolve, "":
				res = resolver.New(rs).Resolve(gctx, c.Query)
				ev = harness.Run(res)
			default:
				return fmt.Errorf("case %s: unknown mode %q", c.CaseID, c.Mode)
			}

			rr := ReplayResult{CaseID: c.CaseID, Result: res, EvalResult: ev}
			if exp, ok := byID[c.CaseID]; ok {
				rr.Mismatches = Compare(res, exp)
			}
			results[i] = rr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func engineEval(base eval.EvalConfig) eval.EvalConfig {
	base.RequiredStages = eval.EngineStages()
	return base
}

// Compare lists every expectation field that res does not meet.
func Compare(res result.SearchResult, exp FixtureExpectedResult) []string {
	var out []string
	check := func(field, want, got string) {
		if want != "" && want != got {
			out = append(out, fmt.Sprintf("%s: expected %s, got %s", field, want, got))
		}
	}
	if exp.Tier != 0 {
		check("tier", strconv.Itoa(exp.Tier), strconv.Itoa(int(res.Tier)))
	}
	check("shape", exp.Shape, string(res.Shape))
	check("entity", exp.Entity, res.Entity)
	check("state", exp.State, string(res.CSV.State))
	check("status", exp.Status, string(res.Constraint.Status))
	check("proof_label", exp.ProofLabel, string(res.ProofLabel))
	if exp.HasError != nil && *exp.HasError != (res.Error != "") {
		out = append(out, fmt.Sprintf("error: expected present=%v, got %q", *exp.HasError, res.Error))
	}
	return out
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{
		TotalCases: len(results),
		ByTier:     make(map[int]int),
		ByLabel:    make(map[string]int),
	}
	for _, r := range results {
		if r.Passed() {
			s.Passed++
		}
		if len(r.Mismatches) > 0 {
			s.Mismatched++
		}
		if !r.EvalResult.Passed {
			s.EvalFailed++
		}
		if r.Result.Error != "" {
			s.Degraded++
		}
		s.ByTier[int(r.Result.Tier)]++
		s.ByLabel[string(r.Result.ProofLabel)]++
	}
	return s
}

// #endregion replay
