package orchestrator

// #region imports
import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jaredlewiswechs/AdanAgent/internal/eval"
	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/ledger"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/mechanics"
	"github.com/jaredlewiswechs/AdanAgent/internal/metrics"
	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
	"github.com/jaredlewiswechs/AdanAgent/internal/repair"
	"github.com/jaredlewiswechs/AdanAgent/internal/resolver"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
	"github.com/jaredlewiswechs/AdanAgent/internal/trajectory"
	"github.com/jaredlewiswechs/AdanAgent/internal/websearch"
)

// #endregion

// MethodGovernance is the method name reported on engine results.
const MethodGovernance = "Epistemic Governance"

const apology = "Sorry, I could not complete a full evaluation right now."

// #region engine-struct

// Engine ("Ada") wraps a delegated-reasoning call in the governance calculus.
type Engine struct {
	reasoner Reasoner
	gate     *governance.Gate
	patterns *governance.PatternTable
	local    repair.LocalKnowledge
	history  HistorySource
	sink     ResultSink
	searcher websearch.Searcher
	search   websearch.Config
	harness  *eval.EvalHarness
	useCache bool
	now      func() time.Time
	log      zerolog.Logger

	mu        sync.Mutex
	lastLevel map[string]Complexity // previous complexity per session, for follow-ups
}

// Option configures an Engine.
type Option func(*Engine)

// WithGate replaces the governance gate (and its thresholds).
func WithGate(g *governance.Gate) Option { return func(e *Engine) { e.gate = g } }

// WithPatternTable replaces the fallback misconception table.
func WithPatternTable(pt *governance.PatternTable) Option { return func(e *Engine) { e.patterns = pt } }

// WithLocalKnowledge replaces the deterministic fallback answerer.
func WithLocalKnowledge(k repair.LocalKnowledge) Option { return func(e *Engine) { e.local = k } }

// WithHistory sets where session history is loaded from.
func WithHistory(h HistorySource) Option { return func(e *Engine) { e.history = h } }

// WithSink sets where committed results are persisted.
func WithSink(s ResultSink) Option { return func(e *Engine) { e.sink = s } }

// WithGrounding enables web-search grounding.
func WithGrounding(s websearch.Searcher, cfg websearch.Config) Option {
	return func(e *Engine) { e.searcher, e.search = s, cfg }
}

// WithEval sets the post-commit validation harness.
func WithEval(h *eval.EvalHarness) Option { return func(e *Engine) { e.harness = h } }

// WithCache toggles reasoner cache use.
func WithCache(on bool) Option { return func(e *Engine) { e.useCache = on } }

// WithClock sets the clock for the prompt date and ledger.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// #endregion

// #region constructor

// NewEngine creates a governance engine with stock thresholds. Unless
// replaced, the pattern table is bounded by the gate's fallback thresholds.
// rs may be nil, in which case every call takes the fallback path.
func NewEngine(rs Reasoner, opts ...Option) *Engine {
	e := &Engine{
		reasoner: rs,
		gate:     governance.NewGate(governance.DefaultThresholds()),
		local:    repair.NewStaticKnowledge(),
		search:   websearch.DefaultConfig(),
		harness:  eval.NewEvalHarness(engineEvalConfig()),
		useCache: true,
		now:      time.Now,
		log:      zerolog.Nop(),

		lastLevel: make(map[string]Complexity),
	}
	for _, o := range opts {
		o(e)
	}
	if e.patterns == nil {
		t := e.gate.Thresholds()
		e.patterns = governance.MustPatternTable(governance.DefaultPatterns(), t.FallbackMisconceptionLow, t.FallbackMisconceptionHigh)
	}
	return e
}

func engineEvalConfig() eval.EvalConfig {
	cfg := eval.DefaultEvalConfig()
	cfg.RequiredStages = eval.EngineStages()
	return cfg
}

// #endregion

// #region resolve

// Resolve runs one governed resolution. It never returns an error: a failed
// delegated call yields a degraded result with Error set.
func (e *Engine) Resolve(ctx context.Context, req Request) result.SearchResult {
	start := e.now()
	led := ledger.New(e.now)
	th := e.gate.Thresholds()
	log := e.log.With().Str("component", "orchestrator").Logger()

	history := e.loadHistory(req)
	complexity := req.Complexity
	if complexity == "" {
		complexity = InferComplexity(req.Query, e.previous(req.SessionID))
	}
	e.remember(req.SessionID, complexity)
	led.Append(ledger.StageParseQuery, fmt.Sprintf("complexity %s, %d history turns", complexity, len(history)))

	// 1. Grounding
	var grounding []websearch.Result
	if e.searcher != nil {
		g, err := websearch.Ground(ctx, e.searcher, e.search, req.Query)
		if err != nil {
			log.Warn().Err(err).Msg("grounding skipped")
		}
		grounding = g
	}

	// 2. Delegated evaluation, or fallback
	var (
		ev       repair.Evaluation
		errText  string
		evalNote string
	)
	raw, err := e.call(ctx, BuildPrompt(start, complexity, history, websearch.FormatAsEvidence(grounding), req.Query))
	if err != nil {
		errText = err.Error()
		ev = e.fallback(req.Query)
		evalNote = "fallback: " + errText
		log.Warn().Err(err).Msg("delegated evaluation failed, using fallback")
	} else {
		// 3. Repair
		parsed := repair.Parse(raw)
		ev = repair.NormalizeEvaluation(parsed.Fields, req.Query)
		evalNote = fmt.Sprintf("parsed via %s", parsed.Stage)
	}
	led.Append(ledger.StageEvaluation, evalNote)

	// 4. Governance calculus
	a := e.gate.Assess(ev.Correctness, ev.Misconception)
	label := e.gate.Label(a, ev.Action, errText != "")
	led.Append(ledger.StageGovern, fmt.Sprintf("state %s, status %s, ratio %.2f", a.State, a.Status, a.Ratio))

	// 5. Trajectory
	curve := trajectory.ForMisconception(ev.Misconception)
	points := curve.Sample(th.TrajectorySamples)
	closed := curve.CheckClosure(th.ClosureTolerance)

	ga := mechanics.Analyze(ev.Entity)
	led.Append(ledger.StageMapGlyphs, fmt.Sprintf("%s: %s", ga.Word, ga.Profile))

	// 6. Complexity rewrite, 7. lexical merge
	insight := Rewrite(repair.CleanResponse(ev.Response), complexity)
	syn, ant := MergeLexical(req.Query, ev.Synonyms, ev.Antonyms)
	led.Append(ledger.StageGenerate, fmt.Sprintf("label %s, %d trajectory points", label, len(points)))

	shape := lexicon.ShapeUnknown
	if s, _, ok := resolver.MatchShape(req.Query); ok {
		shape = s
	}

	res := result.SearchResult{
		ID:         uuid.NewString(),
		Query:      req.Query,
		Tier:       result.TierDelegated,
		Method:     MethodGovernance,
		Shape:      shape,
		Entity:     ev.Entity,
		Confidence: ev.Correctness,
		Details:    ev.Equation,
		Insight:    insight,
		Lexical: &result.Lexical{
			Synonyms: syn,
			Antonyms: ant,
			Equation: ev.Equation,
		},
		CSV:              result.CSVFrom(a),
		Constraint:       result.Constraint{Status: a.Status, Ratio: a.Ratio},
		Action:           ev.Action,
		TrajectoryPoints: points,
		IsClosed:         closed,
		GroundingSources: mergeSources(ev.Sources, websearch.Sources(grounding)),
		ProofLabel:       label,
		GlyphAnalysis:    &ga,
		Error:            errText,
	}
	led.Append(ledger.StageCommit, fmt.Sprintf("confidence %.2f, action %s", res.Confidence, res.Action))
	res.Ledger = led.Steps()

	e.commit(req.SessionID, res, log)

	metrics.Resolutions.WithLabelValues(strconv.Itoa(int(res.Tier)), res.Method).Inc()
	metrics.ProofLabels.WithLabelValues(string(res.ProofLabel)).Inc()
	metrics.ResolutionLatency.WithLabelValues(res.Method).Observe(e.now().Sub(start).Seconds())
	log.Info().Str("id", res.ID).Str("state", string(a.State)).Str("status", string(a.Status)).
		Str("label", string(label)).Msg("committed")
	return res
}

// #endregion

// #region helpers

func (e *Engine) call(ctx context.Context, msgs []reasoner.Message) (string, error) {
	if e.reasoner == nil {
		return "", fmt.Errorf("no reasoner configured")
	}
	return e.reasoner.Call(ctx, msgs, e.useCache)
}

// fallback synthesizes an evaluation without any provider. The action stays
// RESPOND only when local knowledge produced an answer.
func (e *Engine) fallback(query string) repair.Evaluation {
	th := e.gate.Thresholds()
	entity := strings.Join(lexicon.KeyTerms(query, 5), " ")

	response := repair.Interpretation(query)
	action := governance.ActionAbstain
	if e.local != nil {
		if answer, ok := e.local.Answer(query); ok {
			response = answer
			action = governance.ActionRespond
		}
	}

	fields := map[string]any{
		"correctness":   th.FallbackCorrectness,
		"misconception": e.patterns.Estimate(query),
		"response":      apology + " " + response,
		"action":        string(action),
	}
	if entity != "" {
		fields["entity"] = entity
	}
	return repair.NormalizeEvaluation(fields, query)
}

func (e *Engine) loadHistory(req Request) []result.Turn {
	if req.History != nil || e.history == nil || req.SessionID == "" {
		return req.History
	}
	turns, err := e.history.History(req.SessionID, MaxHistoryTurns)
	if err != nil {
		e.log.Warn().Str("component", "orchestrator").Err(err).Msg("history unavailable")
		return nil
	}
	return turns
}

// commit validates and persists res. Failures are logged, never surfaced.
func (e *Engine) commit(sessionID string, res result.SearchResult, log zerolog.Logger) {
	if e.harness != nil {
		if ev := e.harness.Run(res); !ev.Passed {
			log.Warn().Str("id", res.ID).Str("reason", ev.Reason).Msg("eval failed")
		}
	}
	if e.sink != nil {
		if err := e.sink.SaveResult(sessionID, res); err != nil {
			log.Error().Str("id", res.ID).Err(err).Msg("persist result")
		}
	}
}

func (e *Engine) previous(sessionID string) Complexity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastLevel[sessionID]
}

func (e *Engine) remember(sessionID string, c Complexity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastLevel[sessionID] = c
}

func mergeSources(a, b []repair.Source) []repair.Source {
	if len(a) == 0 {
		return b
	}
	seen := make(map[string]bool, len(a))
	out := append([]repair.Source(nil), a...)
	for _, s := range a {
		seen[s.URL] = true
	}
	for _, s := range b {
		if !seen[s.URL] {
			seen[s.URL] = true
			out = append(out, s)
		}
	}
	return out
}

// #endregion
