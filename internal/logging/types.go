package logging

import (
	"database/sql"
	"time"
)

// #region provenance-entry
// ProvenanceEntry is a single row in the provenance_log table: one ledger
// step of one committed result.
type ProvenanceEntry struct {
	ResultID  string
	Step      int
	Action    string
	Detail    string
	ElapsedMs int64
	CreatedAt time.Time
}

// #endregion provenance-entry

// #region execer
// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// #endregion execer
