package replay

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/orchestrator"
	"github.com/jaredlewiswechs/AdanAgent/internal/resolver"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

func TestLoadFixture(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "queries.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(f.Cases) != 5 {
		t.Fatalf("expected 5 cases, got %d", len(f.Cases))
	}
	if len(f.ExpectedResults) != len(f.Cases) {
		t.Errorf("expected one expectation per case, got %d", len(f.ExpectedResults))
	}
	if f.Config.Parallelism != 2 {
		t.Errorf("parallelism = %d, want 2", f.Config.Parallelism)
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := LoadFixture(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestToCase_Defaults(t *testing.T) {
	fc := FixtureCase{CaseID: "c1", Query: "capital of Texas", Complexity: "eli5"}
	c := fc.ToCase()
	if c.Mode != ModeResolve {
		t.Errorf("mode = %q, want resolve", c.Mode)
	}
	if c.Complexity != orchestrator.ComplexityELI5 {
		t.Errorf("complexity = %q", c.Complexity)
	}

	fc.Complexity = "gibberish"
	if c := fc.ToCase(); c.Complexity != "" {
		t.Errorf("unknown complexity should stay empty, got %q", c.Complexity)
	}
}

func TestToReplayConfig(t *testing.T) {
	var fc FixtureConfig
	if got := fc.ToReplayConfig().Parallelism; got != DefaultReplayConfig().Parallelism {
		t.Errorf("zero parallelism should keep default, got %d", got)
	}
	fc.Parallelism = 7
	if got := fc.ToReplayConfig().Parallelism; got != 7 {
		t.Errorf("parallelism = %d, want 7", got)
	}
}

func TestFromResult_Resolver(t *testing.T) {
	r := resolver.New(nil).Resolve(context.Background(), "capital of Texas")

	fc, exp, err := FromResult(r)
	if err != nil {
		t.Fatalf("FromResult: %v", err)
	}
	if fc.Mode != ModeResolve || fc.Reply != "" {
		t.Errorf("tier 1 case should replay without reply, got mode=%q reply=%q", fc.Mode, fc.Reply)
	}
	if exp.Tier != 1 || exp.Shape != string(lexicon.ShapeCapitalOf) || exp.Entity != "Texas" {
		t.Errorf("unexpected expectation %+v", exp)
	}
	if exp.HasError == nil || *exp.HasError {
		t.Error("expected has_error=false")
	}
}

func TestFromResult_DelegatedUsesInsight(t *testing.T) {
	r := result.SearchResult{
		ID:      "r1",
		Query:   "zzqx blorf",
		Tier:    result.TierDelegated,
		Method:  resolver.MethodDelegated,
		Insight: "Nothing is known about zzqx.",
	}
	fc, _, err := FromResult(r)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Reply != r.Insight {
		t.Errorf("reply = %q, want insight", fc.Reply)
	}
}

func TestFromResult_GovernedSynthesizesReply(t *testing.T) {
	r := result.SearchResult{
		ID:      "r2",
		Query:   "What is the capital of Texas?",
		Tier:    result.TierDelegated,
		Method:  orchestrator.MethodGovernance,
		Entity:  "Austin",
		Insight: "Austin is the capital of Texas.",
		Action:  governance.ActionRespond,
		CSV:     result.CSV{C: 0.72, M: 0.05, State: governance.StateCorrect},
	}
	fc, _, err := FromResult(r)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Mode != ModeAsk {
		t.Errorf("mode = %q, want ask", fc.Mode)
	}
	for _, want := range []string{`"correctness":0.72`, `"misconception":0.05`, `"entity":"Austin"`, `"action":"RESPOND"`} {
		if !strings.Contains(fc.Reply, want) {
			t.Errorf("reply %s missing %s", fc.Reply, want)
		}
	}

	r.Error = "all providers failed"
	fc, exp, _ := FromResult(r)
	if fc.Reply != "" {
		t.Errorf("errored result should replay without reply, got %q", fc.Reply)
	}
	if exp.HasError == nil || !*exp.HasError {
		t.Error("expected has_error=true")
	}
}
