package orchestrator

import (
	"testing"
)

func TestInferComplexity(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Complexity
	}{
		{"eli5-marker", "ELI5 how rainbows form", ComplexityELI5},
		{"eli5-phrase", "Explain like I'm five: what is gravity?", ComplexityELI5},
		{"eli5-simple-terms", "Describe photosynthesis in simple terms", ComplexityELI5},

		{"technical-detail", "Describe in detail how TCP congestion control works", ComplexityTechnical},
		{"technical-proof", "Give a proof that sqrt 2 is irrational", ComplexityTechnical},

		{"standard-factual", "What is the capital of Japan?", ComplexityStandard},
		{"standard-empty", "", ComplexityStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferComplexity(tt.query); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferComplexity_FollowUpInherits(t *testing.T) {
	tests := []struct {
		name  string
		query string
		prev  Complexity
		want  Complexity
	}{
		{"why-inherits-eli5", "why?", ComplexityELI5, ComplexityELI5},
		{"tell-me-more", "tell me more", ComplexityTechnical, ComplexityTechnical},
		{"long-prompt-does-not-inherit", "why do cats always land on their feet when they fall from high places", ComplexityELI5, ComplexityStandard},
		{"non-follow-up", "What is the population of Peru?", ComplexityELI5, ComplexityStandard},
		{"explicit-marker-wins", "why? explain like i'm five", ComplexityTechnical, ComplexityELI5},
		{"empty-prev", "why?", "", ComplexityStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferComplexity(tt.query, tt.prev); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseComplexity(t *testing.T) {
	for in, want := range map[string]Complexity{"eli5": ComplexityELI5, " Technical ": ComplexityTechnical, "STANDARD": ComplexityStandard} {
		got, ok := ParseComplexity(in)
		if !ok || got != want {
			t.Errorf("ParseComplexity(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseComplexity("verbose"); ok {
		t.Error("expected unknown complexity to fail")
	}
}
