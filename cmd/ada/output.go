package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// #region output

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, res result.SearchResult, jsonOut bool) error {
	if jsonOut {
		return writeJSON(w, res)
	}

	fmt.Fprintf(w, "\n%s\n\n", res.Insight)
	fmt.Fprintf(w, "[tier %d | %s] shape=%s entity=%q\n", res.Tier, res.Method, res.Shape, res.Entity)
	fmt.Fprintf(w, "  state=%s status=%s action=%s proof=%s confidence=%.2f\n",
		res.CSV.State, res.Constraint.Status, res.Action, res.ProofLabel, res.Confidence)
	fmt.Fprintf(w, "  c=%.2f m=%.2f f=%.2f k=%.2f ratio=%.3f closed=%v\n",
		res.CSV.C, res.CSV.M, res.CSV.F, res.CSV.K, res.Constraint.Ratio, res.IsClosed)
	if res.Lexical != nil {
		if res.Lexical.Equation != "" {
			fmt.Fprintf(w, "  equation: %s\n", res.Lexical.Equation)
		}
		if len(res.Lexical.Synonyms) > 0 {
			fmt.Fprintf(w, "  synonyms: %s\n", strings.Join(res.Lexical.Synonyms, ", "))
		}
		if len(res.Lexical.Antonyms) > 0 {
			fmt.Fprintf(w, "  antonyms: %s\n", strings.Join(res.Lexical.Antonyms, ", "))
		}
	}
	if res.GlyphAnalysis != nil {
		fmt.Fprintf(w, "  glyphs: %s (%s)\n", res.GlyphAnalysis.Profile, res.GlyphAnalysis.LoadPath)
	}
	for _, s := range res.GroundingSources {
		fmt.Fprintf(w, "  source: %s %s\n", s.Title, s.URL)
	}
	if res.Error != "" {
		fmt.Fprintf(w, "  error: %s\n", res.Error)
	}
	fmt.Fprintf(w, "  id=%s ledger=%d steps\n", res.ID, len(res.Ledger))
	return nil
}

// #endregion output
