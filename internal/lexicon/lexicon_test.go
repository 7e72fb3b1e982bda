package lexicon

import (
	"reflect"
	"testing"
)

func TestGlyphTableComplete(t *testing.T) {
	if len(Glyphs) != 26 {
		t.Fatalf("expected 26 glyphs, got %d", len(Glyphs))
	}
	for r := 'A'; r <= 'Z'; r++ {
		g, ok := Glyphs[r]
		if !ok {
			t.Fatalf("missing glyph %c", r)
		}
		if g.Char != string(r) {
			t.Errorf("glyph %c has char %q", r, g.Char)
		}
		if g.Physics == PhysicsUnknown {
			t.Errorf("glyph %c must have a known physics", r)
		}
	}
}

func TestLookupGlyph(t *testing.T) {
	if g := LookupGlyph('a'); g.Physics != PhysicsAlignment || g.Role != "Apex" {
		t.Errorf("lowercase a: got %+v", g)
	}
	if g := LookupGlyph('7'); g.Physics != PhysicsUnknown || g.Char != "7" {
		t.Errorf("digit: got %+v", g)
	}
}

func TestEquation(t *testing.T) {
	if got := ShapeCapitalOf.Equation(); got != "capital(X) = ?" {
		t.Errorf("capital equation = %q", got)
	}
	if got := QueryShape("NOPE").Equation(); got != ShapeUnknown.Equation() {
		t.Errorf("unmapped shape equation = %q", got)
	}
}

func TestClustersExcludeNoise(t *testing.T) {
	if len(Clusters) != 15 {
		t.Fatalf("expected 15 clusters, got %d", len(Clusters))
	}
	for _, c := range Clusters {
		for kw := range c.Keywords {
			if NoiseWords[kw] {
				t.Errorf("cluster %s keyword %q is a noise word", c.Name, kw)
			}
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Who founded Tesla, Inc.?", 2)
	want := []string{"who", "founded", "tesla", "inc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestKeyTerms(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want []string
	}{
		{"drops stopwords", "what is the Great Wall of China", 5, []string{"Great", "Wall", "China"}},
		{"limit", "alpha beta gamma delta epsilon zeta", 3, []string{"alpha", "beta", "gamma"}},
		{"punctuation trimmed", "is Paris, France?", 5, []string{"Paris", "France"}},
		{"empty", "", 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyTerms(tt.text, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("KeyTerms(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
