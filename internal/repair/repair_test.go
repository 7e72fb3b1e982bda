package repair

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
)

func TestParseStages(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		stage    Stage
		response string
	}{
		{"strict", `{"response":"hi","correctness":0.9}`, StageStrictJSON, "hi"},
		{"fenced", "```json\n{\"response\":\"fenced\"}\n```", StageFencedJSON, "fenced"},
		{"bare fence", "```\n{\"response\":\"bare\"}\n```", StageFencedJSON, "bare"},
		{"prose wrapped", `Sure! Here it is: {"response":"inner {braces}","entity":"x"} hope that helps`, StageBalancedBrace, "inner {braces}"},
		{"keyed", `"response": "loose \"quoted\" text", "correctness": 0.8, broken`, StageKeyedRegex, `loose "quoted" text`},
		{"raw", "## Answer\n**Austin** is the capital.", StageRawText, "Answer\nAustin is the capital."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.raw)
			assert.Equal(t, tt.stage, p.Stage)
			assert.Equal(t, tt.response, p.Fields["response"])
		})
	}
}

func TestParseKeyedNumbers(t *testing.T) {
	p := Parse(`{"correctness": 0.8, "misconception": "0.3", "action": "CLARIFY",`)
	require.Equal(t, StageKeyedRegex, p.Stage)
	assert.Equal(t, 0.8, p.Fields["correctness"])
	assert.Equal(t, 0.3, p.Fields["misconception"])
	assert.Equal(t, "CLARIFY", p.Fields["action"])
}

func TestParseNonObjectJSONFallsThrough(t *testing.T) {
	p := Parse(`"just a string"`)
	assert.Equal(t, StageRawText, p.Stage)
	assert.Equal(t, `"just a string"`, p.Fields["response"])
}

func TestNormalizeEmptyUsesEveryDefault(t *testing.T) {
	got := NormalizeEvaluation(map[string]any{}, "test")
	want := Evaluation{
		Correctness:   0.65,
		Misconception: 0.2,
		Entity:        "test",
		Equation:      `Q("test") = ?`,
		Response:      DefaultResponse,
		Synonyms:      []string{},
		Antonyms:      []string{},
		Action:        governance.ActionRespond,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("NormalizeEvaluation mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeNilAndEmptyQuery(t *testing.T) {
	got := NormalizeEvaluation(nil, "   ")
	assert.Equal(t, DefaultEntity, got.Entity)
	assert.NotNil(t, got.Synonyms)
	assert.NotNil(t, got.Antonyms)
}

func TestNormalizeCoercesAndClamps(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"
	got := NormalizeEvaluation(map[string]any{
		"correctness":   1.7,
		"misconception": "-0.5",
		"entity":        "  ",
		"synonyms":      []any{"a", 2.0, nil, " ", "b", "c", "d", "e", "f", "g", "h", "i"},
		"antonyms":      "up, down ,",
		"action":        "clarify",
		"sources":       []any{map[string]any{"title": "Wiki", "url": "https://example.com"}, "https://other.example"},
	}, long)

	assert.Equal(t, 1.0, got.Correctness)
	assert.Equal(t, 0.0, got.Misconception)
	assert.Equal(t, long[:48], got.Entity)
	assert.Equal(t, []string{"a", "2", "b", "c", "d", "e", "f", "g"}, got.Synonyms)
	assert.Equal(t, []string{"up", "down"}, got.Antonyms)
	assert.Equal(t, governance.ActionClarify, got.Action)
	assert.Equal(t, []Source{{"Wiki", "https://example.com"}, {"https://other.example", "https://other.example"}}, got.Sources)
}

func TestNormalizeUnknownActionDefaults(t *testing.T) {
	got := NormalizeEvaluation(map[string]any{"action": "PANIC"}, "q")
	assert.Equal(t, governance.ActionRespond, got.Action)
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fences", "Here:\n```go\nx := 1\n```\nDone", "Here:\nx := 1\nDone"},
		{"headings", "# Title\n### Sub\ntext", "Title\nSub\ntext"},
		{"emphasis", "This is **bold**, *italic* and __strong__.", "This is bold, italic and strong."},
		{"snake case kept", "use my_var_name here", "use my_var_name here"},
		{"bullets", "* one\n+ two\n• three\n- four", "- one\n- two\n- three\n- four"},
		{"bullet with emphasis", "* **key** point", "- key point"},
		{"blank runs", "a\n\n\n\nb\r\n\r\n\r\nc", "a\n\nb\n\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.in))
		})
	}
}

func TestStaticKnowledge(t *testing.T) {
	k := NewStaticKnowledge()
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"capital of Texas?", "The capital of Texas is Austin.", true},
		{"What is the capital of the United Kingdom", "The capital of United Kingdom is London.", true},
		{"capital of Atlantis", "", false},
		{"what is 12 / 4", "12 / 4 = 3", true},
		{"2.5 * 4", "2.5 * 4 = 10", true},
		{"7 - 10", "7 - 10 = -3", true},
		{"1 / 0", "", false},
		{"tell me a joke", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := k.Answer(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpretation(t *testing.T) {
	assert.Contains(t, Interpretation("  why is the sky blue "), `"why is the sky blue"`)
	assert.Contains(t, Interpretation("x"), "I interpreted your request as")
}
