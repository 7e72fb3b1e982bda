package result

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/ledger"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/mechanics"
	"github.com/jaredlewiswechs/AdanAgent/internal/trajectory"
)

func sample() SearchResult {
	ga := mechanics.Analyze("Texas")
	return SearchResult{
		ID:               "id-1",
		Query:            "capital of Texas",
		Tier:             TierPattern,
		Method:           "Rigid Pattern Match",
		Shape:            lexicon.ShapeCapitalOf,
		Entity:           "Texas",
		Confidence:       1,
		CSV:              CSV{C: 1, K: 1, State: governance.StateCorrect},
		Constraint:       Constraint{Status: governance.StatusGreen, Ratio: 1},
		Action:           governance.ActionRespond,
		TrajectoryPoints: []trajectory.Point{{0, 0}, {1, 1}},
		IsClosed:         true,
		ProofLabel:       governance.ProofVerified,
		Ledger: []ledger.Step{
			{Step: 1, Action: ledger.StageParseQuery, Detail: "capital of Texas", Timestamp: 0},
			{Step: 2, Action: ledger.StageCommit, Detail: "done", Timestamp: 3},
		},
		GlyphAnalysis: &ga,
	}
}

func TestExportFlattens(t *testing.T) {
	rec := Export(sample())
	assert.Equal(t, []string{"T", "E", "X", "A", "S"}, rec.Glyphs)
	// T stop, E energy, X stop, A alignment, S flow
	assert.Equal(t, [6]int{0, 0, 1, 2, 1, 1}, rec.Stats)
	assert.Equal(t, governance.StateCorrect, rec.State)
	assert.Equal(t, governance.StatusGreen, rec.Status)
	assert.Len(t, rec.Ledger, 2)
}

func TestExportRoundTrip(t *testing.T) {
	rec := Export(sample())
	data, err := EncodeExport(rec)
	require.NoError(t, err)
	back, err := DecodeExport(data)
	require.NoError(t, err)
	if diff := cmp.Diff(rec, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportWithoutGlyphs(t *testing.T) {
	r := sample()
	r.GlyphAnalysis = nil
	r.Ledger = nil
	rec := Export(r)
	assert.Equal(t, []string{}, rec.Glyphs)
	assert.Equal(t, [6]int{}, rec.Stats)

	data, err := EncodeExport(rec)
	require.NoError(t, err)
	back, err := DecodeExport(data)
	require.NoError(t, err)
	assert.Equal(t, rec.Glyphs, back.Glyphs)
	assert.Empty(t, back.Ledger)
}

func TestDecodeExportRejectsGarbage(t *testing.T) {
	_, err := DecodeExport([]byte("{"))
	assert.Error(t, err)
}

func TestSearchResultJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(sample())
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, k := range []string{"trajectoryPoints", "isClosed", "proofLabel", "glyphAnalysis", "csv", "constraint", "ledger"} {
		assert.Contains(t, m, k)
	}
	assert.NotContains(t, m, "error")
	assert.NotContains(t, m, "groundingSources")
}
