package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/ledger"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// #region fakes
type fakeReasoner struct {
	reply string
	err   error
	got   []reasoner.Message
}

func (f *fakeReasoner) Call(_ context.Context, msgs []reasoner.Message, _ bool) (string, error) {
	f.got = msgs
	return f.reply, f.err
}

func fixedClock() func() time.Time {
	t := time.Unix(1_700_000_000, 0)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

// #endregion fakes

// #region tier1-tests
func TestTier1Scenarios(t *testing.T) {
	r := New(nil)
	tests := []struct {
		query  string
		shape  lexicon.QueryShape
		entity string
	}{
		{"capital of Texas", lexicon.ShapeCapitalOf, "Texas"},
		{"What is the capital of France?", lexicon.ShapeCapitalOf, "France"},
		{"population of Tokyo ?", lexicon.ShapePopulationOf, "Tokyo"},
		{"Who is the founder of SpaceX", lexicon.ShapeFounderOf, "SpaceX"},
		{"define entropy", lexicon.ShapeDefinition, "entropy"},
		{"who wrote Hamlet?", lexicon.ShapeAuthorOf, "Hamlet"},
		{"who invented the telephone", lexicon.ShapeInventorOf, "the telephone"},
		{"who is the prime minister of Canada", lexicon.ShapeLeaderOf, "Canada"},
		{"what is the currency of Japan", lexicon.ShapeCurrencyOf, "Japan"},
		{"where is Timbuktu", lexicon.ShapeLocationOf, "Timbuktu"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := r.Resolve(context.Background(), tt.query)
			if res.Tier != result.TierPattern {
				t.Fatalf("tier = %d, want 1", res.Tier)
			}
			if res.Shape != tt.shape {
				t.Errorf("shape = %s, want %s", res.Shape, tt.shape)
			}
			if res.Entity != tt.entity {
				t.Errorf("entity = %q, want %q", res.Entity, tt.entity)
			}
			if res.Confidence != 1.0 {
				t.Errorf("confidence = %v", res.Confidence)
			}
			if res.Constraint.Status != governance.StatusGreen {
				t.Errorf("status = %s", res.Constraint.Status)
			}
			if res.CSV.State != governance.StateCorrect || !res.IsClosed || len(res.TrajectoryPoints) != 2 {
				t.Errorf("unexpected tier 1 shape: %+v", res)
			}
		})
	}
}

func TestMatchShape(t *testing.T) {
	shape, entity, ok := MatchShape("capital of Texas?")
	if !ok || shape != lexicon.ShapeCapitalOf || entity != "Texas" {
		t.Fatalf("MatchShape = %s %q %v", shape, entity, ok)
	}
	if _, _, ok := MatchShape("tell me about cats"); ok {
		t.Fatal("expected no match")
	}
}

// #endregion tier1-tests

// #region tier2-tests
func TestTier2KingOfSpain(t *testing.T) {
	res := New(nil).Resolve(context.Background(), "who is the king of Spain")
	if res.Tier != result.TierCluster {
		t.Fatalf("tier = %d, want 2", res.Tier)
	}
	if res.Shape != lexicon.ShapeLeaderOf {
		t.Errorf("shape = %s", res.Shape)
	}
	if res.Entity != "Spain" {
		t.Errorf("entity = %q", res.Entity)
	}
	if res.Confidence != 0.8 {
		t.Errorf("confidence = %v", res.Confidence)
	}
	if res.CSV.State != governance.StatePartial || res.Constraint.Status != governance.StatusYellow {
		t.Errorf("unexpected governance: %+v %+v", res.CSV, res.Constraint)
	}
	if len(res.TrajectoryPoints) != 3 {
		t.Errorf("expected 3-point trajectory, got %d", len(res.TrajectoryPoints))
	}
}

func TestTier2PreservesOriginalTokens(t *testing.T) {
	res := New(nil).Resolve(context.Background(), "who founded Tesla, Inc.")
	if res.Tier != result.TierCluster || res.Shape != lexicon.ShapeFounderOf {
		t.Fatalf("unexpected resolution: tier %d shape %s", res.Tier, res.Shape)
	}
	if res.Entity != "Tesla, Inc." {
		t.Fatalf("entity = %q, want %q", res.Entity, "Tesla, Inc.")
	}
}

func TestTier2EntityExcludesKeywordsAndNoise(t *testing.T) {
	queries := []string{
		"How TALL is the Eiffel Tower?",
		"which language is spoken in Brazil",
		"how old is the Colosseum",
	}
	for _, q := range queries {
		res := New(nil).Resolve(context.Background(), q)
		if res.Tier != result.TierCluster {
			t.Fatalf("%q: tier = %d", q, res.Tier)
		}
		var rule ClusterRule
		for _, c := range DefaultClusters() {
			if c.Shape == res.Shape {
				rule = c
			}
		}
		for _, tok := range strings.Fields(res.Entity) {
			norm := lexicon.Normalize(tok)
			if rule.Keywords[norm] || lexicon.NoiseWords[norm] {
				t.Errorf("%q: entity %q kept excluded token %q", q, res.Entity, tok)
			}
		}
	}
}

func TestTier2TieGoesToFirstChecked(t *testing.T) {
	res := New(nil, WithClock(fixedClock())).Resolve(context.Background(), "government founded")
	if res.Shape != lexicon.ShapeCapitalOf {
		t.Fatalf("shape = %s, want CAPITAL_OF", res.Shape)
	}
	var detail string
	for _, s := range res.Ledger {
		if s.Action == ledger.StageTier2 {
			detail = s.Detail
		}
	}
	if !strings.Contains(detail, "tied with FOUNDER") {
		t.Fatalf("ledger should record the tie, got %q", detail)
	}
}

func TestTier2ConfidenceCapped(t *testing.T) {
	res := New(nil).Resolve(context.Background(), "population populous people inhabitants residents")
	if res.Confidence != 0.95 {
		t.Fatalf("confidence = %v, want 0.95", res.Confidence)
	}
	if res.Entity != "Unknown" {
		t.Fatalf("entity = %q, want Unknown", res.Entity)
	}
}

// #endregion tier2-tests

// #region tier3-tests
func TestTier3Success(t *testing.T) {
	fr := &fakeReasoner{reply: `{"response":"**Xyzzy** is a magic word."}`}
	res := New(fr).Resolve(context.Background(), "xyzzy plugh")
	if res.Tier != result.TierDelegated {
		t.Fatalf("tier = %d", res.Tier)
	}
	if res.Confidence != 0.85 || res.Constraint.Status != governance.StatusGreen || res.CSV.State != governance.StatePartial {
		t.Errorf("unexpected governance: %+v", res)
	}
	if res.Insight != "Xyzzy is a magic word." {
		t.Errorf("insight = %q", res.Insight)
	}
	if res.Error != "" {
		t.Errorf("unexpected error %q", res.Error)
	}
	if len(fr.got) != 2 || fr.got[1].Content != "xyzzy plugh" {
		t.Errorf("unexpected messages %+v", fr.got)
	}
}

func TestTier3FailureDegrades(t *testing.T) {
	fr := &fakeReasoner{err: errors.New("all providers failed: boom")}
	res := New(fr).Resolve(context.Background(), "xyzzy plugh")
	if res.Tier != result.TierDelegated || res.Confidence != 0 {
		t.Fatalf("unexpected tier/confidence %d %v", res.Tier, res.Confidence)
	}
	if res.CSV.State != governance.StateFog || res.Constraint.Status != governance.StatusRed {
		t.Errorf("unexpected governance %+v %+v", res.CSV, res.Constraint)
	}
	if res.Action != governance.ActionAbstain || res.IsClosed || len(res.TrajectoryPoints) != 1 {
		t.Errorf("unexpected degraded shape %+v", res)
	}
	if res.Error == "" {
		t.Error("expected error to be surfaced on the result")
	}
}

func TestTier3WithoutReasoner(t *testing.T) {
	res := New(nil).Resolve(context.Background(), "xyzzy plugh")
	if res.Error == "" || res.ProofLabel != governance.ProofNeedsData {
		t.Fatalf("expected degraded result, got %+v", res)
	}
}

// #endregion tier3-tests

// #region ledger-tests
func TestLedgerOrder(t *testing.T) {
	res := New(nil, WithClock(fixedClock())).Resolve(context.Background(), "capital of Texas")
	want := []string{ledger.StageParseQuery, ledger.StageTier1, ledger.StageMapGlyphs, ledger.StageCommit}
	if len(res.Ledger) != len(want) {
		t.Fatalf("ledger has %d steps, want %d", len(res.Ledger), len(want))
	}
	for i, s := range res.Ledger {
		if s.Step != i+1 || s.Action != want[i] {
			t.Errorf("step %d = %+v, want action %s", i, s, want[i])
		}
		if i > 0 && s.Timestamp < res.Ledger[i-1].Timestamp {
			t.Errorf("timestamps not monotonic at step %d", s.Step)
		}
	}
	if res.GlyphAnalysis == nil || res.GlyphAnalysis.Word != "TEXAS" {
		t.Errorf("expected glyph analysis of entity, got %+v", res.GlyphAnalysis)
	}
	if res.ID == "" || res.Query != "capital of Texas" {
		t.Errorf("missing id/query: %q %q", res.ID, res.Query)
	}
}

// #endregion ledger-tests
