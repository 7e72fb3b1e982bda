package logging

import (
	"fmt"
	"time"

	"github.com/jaredlewiswechs/AdanAgent/internal/ledger"
)

// #region log-step
// LogStep writes a provenance entry to the provenance_log table.
func LogStep(db Execer, entry ProvenanceEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO provenance_log (result_id, step, action, detail, elapsed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ResultID,
		entry.Step,
		entry.Action,
		nullIfEmpty(entry.Detail),
		entry.ElapsedMs,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log step %d: %w", entry.Step, err)
	}
	return nil
}

// #endregion log-step

// #region log-ledger
// LogLedger persists every step of a result's ledger in order.
func LogLedger(db Execer, resultID string, steps []ledger.Step, at time.Time) error {
	for _, s := range steps {
		err := LogStep(db, ProvenanceEntry{
			ResultID:  resultID,
			Step:      s.Step,
			Action:    s.Action,
			Detail:    s.Detail,
			ElapsedMs: s.Timestamp,
			CreatedAt: at,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// #endregion log-ledger

// #region helpers
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
