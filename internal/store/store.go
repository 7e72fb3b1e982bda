package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/ledger"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/logging"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// ErrNotFound is returned when a result or session id is unknown.
var ErrNotFound = errors.New("not found")

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS results (
	result_id     TEXT PRIMARY KEY,
	session_id    TEXT NOT NULL,
	query         TEXT NOT NULL,
	tier          INTEGER NOT NULL,
	method        TEXT NOT NULL,
	shape         TEXT NOT NULL,
	entity        TEXT,
	confidence    REAL NOT NULL,
	insight       TEXT,
	state         TEXT NOT NULL,
	status        TEXT NOT NULL,
	proof_label   TEXT NOT NULL,
	error         TEXT,
	result_json   TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_session ON results(session_id, created_at);

CREATE TABLE IF NOT EXISTS provenance_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	result_id     TEXT NOT NULL,
	step          INTEGER NOT NULL,
	action        TEXT NOT NULL,
	detail        TEXT,
	elapsed_ms    INTEGER NOT NULL,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (result_id) REFERENCES results(result_id)
);

CREATE TABLE IF NOT EXISTS sessions (
	session_id     TEXT PRIMARY KEY,
	last_result_id TEXT NOT NULL,
	turns          INTEGER NOT NULL,
	updated_at     TEXT NOT NULL,
	FOREIGN KEY (last_result_id) REFERENCES results(result_id)
);
`
// #endregion schema

// #region store-struct
// Store persists committed search results and their ledgers in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region save
// SaveResult commits r, its ledger and the session pointer in one
// transaction. Results are immutable; saving the same id twice fails.
func (s *Store) SaveResult(sessionID string, r result.SearchResult) error {
	if r.ID == "" {
		return errors.New("save result: empty result id")
	}
	if sessionID == "" {
		sessionID = "default"
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	now := s.now()
	stamp := now.Format(time.RFC3339Nano)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO results (result_id, session_id, query, tier, method, shape, entity,
		 confidence, insight, state, status, proof_label, error, result_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, sessionID, r.Query, int(r.Tier), r.Method, string(r.Shape), r.Entity,
		r.Confidence, r.Insight, string(r.CSV.State), string(r.Constraint.Status),
		string(r.ProofLabel), nullString(r.Error), string(raw), stamp,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	if err := logging.LogLedger(tx, r.ID, r.Ledger, now); err != nil {
		return fmt.Errorf("log ledger: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO sessions (session_id, last_result_id, turns, updated_at) VALUES (?, ?, 1, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   last_result_id = excluded.last_result_id,
		   turns = sessions.turns + 1,
		   updated_at = excluded.updated_at`,
		sessionID, r.ID, stamp,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
// #endregion save

// #region get-result
// GetResult loads the full stored result by id.
func (s *Store) GetResult(resultID string) (result.SearchResult, error) {
	var raw string
	err := s.db.QueryRow(`SELECT result_json FROM results WHERE result_id = ?`, resultID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return result.SearchResult{}, fmt.Errorf("get result %s: %w", resultID, ErrNotFound)
	}
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("get result %s: %w", resultID, err)
	}
	var r result.SearchResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return result.SearchResult{}, fmt.Errorf("unmarshal result %s: %w", resultID, err)
	}
	return r, nil
}
// #endregion get-result

// #region list
// ListResults returns summaries of the most recent results, newest first.
// limit <= 0 returns all rows.
func (s *Store) ListResults(limit int) ([]Summary, error) {
	q := `SELECT result_id, session_id, query, tier, method, shape, entity, confidence,
	      state, status, proof_label, error, created_at
	      FROM results ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum                                Summary
			tier                               int
			shape, state, status, label, stamp string
			entity, errText                    sql.NullString
		)
		if err := rows.Scan(&sum.ResultID, &sum.SessionID, &sum.Query, &tier, &sum.Method,
			&shape, &entity, &sum.Confidence, &state, &status, &label, &errText, &stamp); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		sum.Tier = result.Tier(tier)
		sum.Shape = lexicon.QueryShape(shape)
		sum.Entity = entity.String
		sum.State = governance.CognitiveState(state)
		sum.Status = governance.ConstraintStatus(status)
		sum.ProofLabel = governance.ProofLabel(label)
		sum.Error = errText.String
		sum.CreatedAt, _ = time.Parse(time.RFC3339Nano, stamp)
		out = append(out, sum)
	}
	return out, rows.Err()
}
// #endregion list

// #region history
// History returns up to n most recent turns of a session, oldest first.
// Implements the engine's history source.
func (s *Store) History(sessionID string, n int) ([]result.Turn, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT query, insight FROM results WHERE session_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		sessionID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var turns []result.Turn
	for rows.Next() {
		var t result.Turn
		var insight sql.NullString
		if err := rows.Scan(&t.Query, &insight); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Answer = insight.String
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}
// #endregion history

// #region ledger
// Ledger reads back the persisted provenance steps of a result in order.
func (s *Store) Ledger(resultID string) ([]ledger.Step, error) {
	rows, err := s.db.Query(
		`SELECT step, action, detail, elapsed_ms FROM provenance_log
		 WHERE result_id = ? ORDER BY step ASC`,
		resultID,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", resultID, err)
	}
	defer rows.Close()

	var steps []ledger.Step
	for rows.Next() {
		var st ledger.Step
		var detail sql.NullString
		if err := rows.Scan(&st.Step, &st.Action, &detail, &st.Timestamp); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		st.Detail = detail.String
		steps = append(steps, st)
	}
	return steps, rows.Err()
}
// #endregion ledger

// #region session
// GetSession reads the session pointer row.
func (s *Store) GetSession(sessionID string) (Session, error) {
	var sess Session
	var stamp string
	err := s.db.QueryRow(
		`SELECT session_id, last_result_id, turns, updated_at FROM sessions WHERE session_id = ?`,
		sessionID,
	).Scan(&sess.SessionID, &sess.LastResultID, &sess.Turns, &stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("get session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, stamp)
	return sess, nil
}
// #endregion session

// #region helpers
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
