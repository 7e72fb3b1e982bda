package resolver

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/ledger"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/mechanics"
	"github.com/jaredlewiswechs/AdanAgent/internal/metrics"
	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
	"github.com/jaredlewiswechs/AdanAgent/internal/repair"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
	"github.com/jaredlewiswechs/AdanAgent/internal/trajectory"
)

// Method names reported on results.
const (
	MethodPattern   = "Rigid Pattern Match"
	MethodCluster   = "Semantic Cluster Resonance"
	MethodDelegated = "Delegated Reasoning"
)

const (
	delegatedConfidence    = 0.85
	delegatedMisconception = 0.15
	clusterMisconception   = 0.1
	tier3Prompt            = "You are a precise research assistant. Give a brief analysis of the user's query in two or three sentences. State the key fact first."
)

// Reasoner is the delegated-reasoning capability used by Tier 3.
type Reasoner interface {
	Call(ctx context.Context, msgs []reasoner.Message, useCache bool) (string, error)
}

// #region resolver

// Resolver runs the three tiers in order and stops at the first that fires.
type Resolver struct {
	patterns []PatternRule
	clusters []ClusterRule
	reasoner Reasoner
	now      func() time.Time
	log      zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock sets the ledger clock.
func WithClock(now func() time.Time) Option { return func(r *Resolver) { r.now = now } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(r *Resolver) { r.log = l } }

// WithPatterns replaces the Tier 1 rules.
func WithPatterns(p []PatternRule) Option { return func(r *Resolver) { r.patterns = p } }

// WithClusters replaces the Tier 2 rules.
func WithClusters(c []ClusterRule) Option { return func(r *Resolver) { r.clusters = c } }

// New creates a resolver. rs may be nil, in which case Tier 3 always fails.
func New(rs Reasoner, opts ...Option) *Resolver {
	r := &Resolver{
		patterns: DefaultPatterns,
		clusters: DefaultClusters(),
		reasoner: rs,
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve never returns an error: a Tier 3 failure is folded into a
// low-confidence result with Error set.
func (r *Resolver) Resolve(ctx context.Context, query string) result.SearchResult {
	led := ledger.New(r.now)
	led.Append(ledger.StageParseQuery, fmt.Sprintf("received %q", query))

	var res result.SearchResult
	if rule, entity, ok := matchPattern(r.patterns, query); ok {
		led.Append(ledger.StageTier1, fmt.Sprintf("matched %s on %q", rule.Shape, entity))
		res = tier1(rule, entity)
	} else {
		led.Append(ledger.StageTier1, "no pattern matched")
		if m, ok := scoreClusters(r.clusters, query); ok {
			detail := fmt.Sprintf("cluster %s scored %d", m.rule.Name, m.score)
			if len(m.tiedBy) > 0 {
				detail += fmt.Sprintf("; tied with %s, first checked wins", strings.Join(m.tiedBy, ", "))
			}
			led.Append(ledger.StageTier2, detail)
			res = tier2(m, extractEntity(query, m.rule.Keywords))
		} else {
			led.Append(ledger.StageTier2, "no cluster resonated")
			res = r.tier3(ctx, query, led)
		}
	}

	res.ID = uuid.NewString()
	res.Query = query
	if res.Entity != "" {
		ga := mechanics.Analyze(res.Entity)
		res.GlyphAnalysis = &ga
		led.Append(ledger.StageMapGlyphs, fmt.Sprintf("%s: %s", ga.Word, ga.Profile))
	}
	led.Append(ledger.StageCommit, fmt.Sprintf("tier %d, confidence %.2f", res.Tier, res.Confidence))
	res.Ledger = led.Steps()

	metrics.Resolutions.WithLabelValues(strconv.Itoa(int(res.Tier)), res.Method).Inc()
	r.log.Info().Str("component", "resolver").Int("tier", int(res.Tier)).
		Str("shape", string(res.Shape)).Str("entity", res.Entity).Msg("resolved")
	return res
}

// #endregion resolver

// #region tiers

func bind(shape lexicon.QueryShape, entity string) string {
	return strings.Replace(shape.Equation(), "X", entity, 1)
}

func tier1(rule PatternRule, entity string) result.SearchResult {
	eq := bind(rule.Shape, entity)
	return result.SearchResult{
		Tier:             result.TierPattern,
		Method:           MethodPattern,
		Shape:            rule.Shape,
		Entity:           entity,
		Confidence:       1.0,
		Details:          fmt.Sprintf("Pattern %s matched", rule.Regex.String()),
		Insight:          fmt.Sprintf("Query resolves deterministically to %s", eq),
		Lexical:          &result.Lexical{Synonyms: []string{}, Antonyms: []string{}, Equation: eq},
		CSV:              result.CSV{C: 1, M: 0, F: 0, K: 1, State: governance.StateCorrect},
		Constraint:       result.Constraint{Status: governance.StatusGreen, Ratio: 1},
		Action:           governance.ActionRespond,
		TrajectoryPoints: []trajectory.Point{{0, 0}, {1, 1}},
		IsClosed:         true,
		ProofLabel:       governance.ProofVerified,
	}
}

func tier2(m clusterMatch, entity string) result.SearchResult {
	// min(0.95, 0.7 + 0.1*score), computed in tenths to stay exact
	c := math.Min(0.95, float64(7+m.score)/10)
	k := math.Max(c, clusterMisconception)
	eq := bind(m.rule.Shape, entity)
	return result.SearchResult{
		Tier:             result.TierCluster,
		Method:           MethodCluster,
		Shape:            m.rule.Shape,
		Entity:           entity,
		Confidence:       c,
		Details:          fmt.Sprintf("Cluster %s resonated with %d keyword(s)", m.rule.Name, m.score),
		Insight:          fmt.Sprintf("Query most likely asks %s", eq),
		Lexical:          &result.Lexical{Synonyms: []string{}, Antonyms: []string{}, Equation: eq},
		CSV:              result.CSV{C: c, M: clusterMisconception, F: 1 - k, K: k, State: governance.StatePartial},
		Constraint:       result.Constraint{Status: governance.StatusYellow, Ratio: c / (1 - clusterMisconception)},
		Action:           governance.ActionRespond,
		TrajectoryPoints: []trajectory.Point{{0, 0}, {0.5, 0.7}, {1, 1}},
		IsClosed:         true,
		ProofLabel:       governance.ProofLikely,
	}
}

func (r *Resolver) tier3(ctx context.Context, query string, led *ledger.Ledger) result.SearchResult {
	entity := strings.Join(lexicon.KeyTerms(query, 5), " ")
	if entity == "" {
		entity = strings.TrimSpace(query)
	}

	text, err := r.delegate(ctx, query)
	if err != nil {
		led.Append(ledger.StageTier3, "delegation failed: "+err.Error())
		r.log.Warn().Str("component", "resolver").Err(err).Msg("tier 3 failed")
		return result.SearchResult{
			Tier:             result.TierDelegated,
			Method:           MethodDelegated,
			Shape:            lexicon.ShapeUnknown,
			Entity:           entity,
			Confidence:       0,
			Details:          "Delegated reasoning unavailable",
			Insight:          "Unable to resolve this query right now.",
			CSV:              result.CSV{C: 0, M: 0, F: 1, K: 0, State: governance.StateFog},
			Constraint:       result.Constraint{Status: governance.StatusRed, Ratio: 0},
			Action:           governance.ActionAbstain,
			TrajectoryPoints: []trajectory.Point{{0, 0}},
			IsClosed:         false,
			ProofLabel:       governance.ProofNeedsData,
			Error:            err.Error(),
		}
	}

	led.Append(ledger.StageTier3, fmt.Sprintf("delegated answer of %d chars", len(text)))
	insight := text
	if resp, ok := repair.Parse(text).Fields["response"].(string); ok && strings.TrimSpace(resp) != "" {
		insight = resp
	}
	return result.SearchResult{
		Tier:             result.TierDelegated,
		Method:           MethodDelegated,
		Shape:            lexicon.ShapeUnknown,
		Entity:           entity,
		Confidence:       delegatedConfidence,
		Details:          "Resolved by delegated reasoning",
		Insight:          repair.CleanResponse(insight),
		CSV:              result.CSV{C: delegatedConfidence, M: delegatedMisconception, F: 1 - delegatedConfidence, K: delegatedConfidence, State: governance.StatePartial},
		Constraint:       result.Constraint{Status: governance.StatusGreen, Ratio: delegatedConfidence / (1 - delegatedMisconception)},
		Action:           governance.ActionRespond,
		TrajectoryPoints: []trajectory.Point{{0, 0}, {0.3, 0.8}, {0.7, 0.4}, {1, 1}},
		IsClosed:         true,
		ProofLabel:       governance.ProofLikely,
	}
}

func (r *Resolver) delegate(ctx context.Context, query string) (string, error) {
	if r.reasoner == nil {
		return "", fmt.Errorf("no reasoner configured")
	}
	return r.reasoner.Call(ctx, []reasoner.Message{
		{Role: reasoner.RoleSystem, Content: tier3Prompt},
		{Role: reasoner.RoleUser, Content: query},
	}, true)
}

// #endregion tiers
