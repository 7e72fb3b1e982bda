package result

import (
	"encoding/json"
	"fmt"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/ledger"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
)

// ExportRecord is the flat, durable artifact handed to presentation layers.
type ExportRecord struct {
	Query      string                      `json:"query"`
	Shape      lexicon.QueryShape          `json:"shape"`
	Confidence float64                     `json:"confidence"`
	Glyphs     []string                    `json:"glyphs"`
	Stats      [6]int                      `json:"stats"` // stability, containment, flow, stop, energy, alignment
	Method     string                      `json:"method"`
	ProofLabel governance.ProofLabel       `json:"proofLabel"`
	State      governance.CognitiveState   `json:"state"`
	Status     governance.ConstraintStatus `json:"status"`
	Ledger     []ledger.Step               `json:"ledger"`
}

// Export flattens r.
func Export(r SearchResult) ExportRecord {
	rec := ExportRecord{
		Query:      r.Query,
		Shape:      r.Shape,
		Confidence: r.Confidence,
		Glyphs:     []string{},
		Method:     r.Method,
		ProofLabel: r.ProofLabel,
		State:      r.CSV.State,
		Status:     r.Constraint.Status,
		Ledger:     append([]ledger.Step{}, r.Ledger...),
	}
	if r.GlyphAnalysis != nil {
		for _, g := range r.GlyphAnalysis.Glyphs {
			rec.Glyphs = append(rec.Glyphs, g.Char)
		}
		rec.Stats = r.GlyphAnalysis.Stats.Vector()
	}
	return rec
}

// EncodeExport serializes rec as indented JSON.
func EncodeExport(rec ExportRecord) ([]byte, error) {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return b, nil
}

// DecodeExport parses the output of EncodeExport.
func DecodeExport(data []byte) (ExportRecord, error) {
	var rec ExportRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return ExportRecord{}, fmt.Errorf("decode export: %w", err)
	}
	return rec, nil
}
