package repair

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
)

// Defaults applied by NormalizeEvaluation.
const (
	DefaultCorrectness   = 0.65
	DefaultMisconception = 0.2
	DefaultEntity        = "Signal"
	DefaultResponse      = "Acknowledged. I processed your request but have no further detail to add."
	MaxLexicalItems      = 8
	maxEntityRunes       = 48
)

// Source is a grounding reference reported alongside an answer.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Evaluation is the fully-populated record the engine governs.
type Evaluation struct {
	Correctness   float64
	Misconception float64
	Entity        string
	Equation      string
	Response      string
	Synonyms      []string
	Antonyms      []string
	Action        governance.Action
	Sources       []Source
}

// NormalizeEvaluation fills every missing or unusable field of fields with its
// default. fields may be nil.
func NormalizeEvaluation(fields map[string]any, query string) Evaluation {
	ev := Evaluation{
		Correctness:   clampOr(fields["correctness"], DefaultCorrectness),
		Misconception: clampOr(fields["misconception"], DefaultMisconception),
		Entity:        stringOr(fields["entity"], defaultEntity(query)),
		Equation:      stringOr(fields["equation"], fmt.Sprintf("Q(%q) = ?", strings.TrimSpace(query))),
		Response:      stringOr(fields["response"], DefaultResponse),
		Synonyms:      stringList(fields["synonyms"], MaxLexicalItems),
		Antonyms:      stringList(fields["antonyms"], MaxLexicalItems),
		Action:        governance.ActionRespond,
		Sources:       sources(fields["sources"]),
	}
	if s, ok := fields["action"].(string); ok {
		if a, ok := governance.ParseAction(strings.ToUpper(strings.TrimSpace(s))); ok {
			ev.Action = a
		}
	}
	return ev
}

func defaultEntity(query string) string {
	q := []rune(strings.TrimSpace(query))
	if len(q) == 0 {
		return DefaultEntity
	}
	if len(q) > maxEntityRunes {
		q = q[:maxEntityRunes]
	}
	return strings.TrimSpace(string(q))
}

func clampOr(v any, def float64) float64 {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return def
	}
	return math.Max(0, math.Min(1, f))
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return def
}

// stringList coerces a list (or comma-separated string) to trimmed,
// non-empty strings, capped at limit. Never nil.
func stringList(v any, limit int) []string {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case string:
		for _, s := range strings.Split(t, ",") {
			items = append(items, s)
		}
	}
	out := []string{}
	for _, it := range items {
		if len(out) >= limit {
			break
		}
		if it == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(it))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sources(v any) []Source {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []Source
	for _, it := range items {
		switch t := it.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, Source{Title: s, URL: s})
			}
		case map[string]any:
			src := Source{Title: stringOr(t["title"], ""), URL: stringOr(t["url"], "")}
			if src.URL != "" || src.Title != "" {
				out = append(out, src)
			}
		}
	}
	return out
}
