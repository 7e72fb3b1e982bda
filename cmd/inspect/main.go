package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jaredlewiswechs/AdanAgent/internal/eval"
	"github.com/jaredlewiswechs/AdanAgent/internal/ledger"
	"github.com/jaredlewiswechs/AdanAgent/internal/orchestrator"
	"github.com/jaredlewiswechs/AdanAgent/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to ada.db")
	last := flag.Int("last", 20, "show N most recent results")
	resultID := flag.String("result", "", "show single result detail")
	session := flag.String("session", "", "only list results from this session")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/ada.db [--last N] [--result id] [--session id] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *resultID != "" {
		err = runDetailMode(st, *resultID, *jsonOut)
	} else {
		err = runListMode(st, *last, *session, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		st.Close()
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	ResultID   string  `json:"result_id"`
	SessionID  string  `json:"session_id"`
	Query      string  `json:"query"`
	Tier       int     `json:"tier"`
	Shape      string  `json:"shape"`
	Entity     string  `json:"entity,omitempty"`
	Confidence float64 `json:"confidence"`
	State      string  `json:"state"`
	Status     string  `json:"status"`
	ProofLabel string  `json:"proof_label"`
	Error      string  `json:"error,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func runListMode(st *store.Store, last int, session string, jsonOut bool) error {
	sums, err := st.ListResults(last)
	if err != nil {
		return err
	}

	// store returns newest first, reverse for chronological
	rows := make([]listRow, 0, len(sums))
	for i := len(sums) - 1; i >= 0; i-- {
		s := sums[i]
		if session != "" && s.SessionID != session {
			continue
		}
		rows = append(rows, listRow{
			ResultID:   s.ResultID,
			SessionID:  s.SessionID,
			Query:      s.Query,
			Tier:       int(s.Tier),
			Shape:      string(s.Shape),
			Entity:     s.Entity,
			Confidence: s.Confidence,
			State:      string(s.State),
			Status:     string(s.Status),
			ProofLabel: string(s.ProofLabel),
			Error:      s.Error,
			CreatedAt:  s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no results found")
		return nil
	}

	if jsonOut {
		return printJSON(rows)
	}
	printListTable(rows)
	if session != "" {
		if sess, err := st.GetSession(session); err == nil {
			fmt.Printf("\nSession %s: %d turns, last result %s\n", sess.SessionID, sess.Turns, shortID(sess.LastResultID))
		}
	}
	return nil
}

func printListTable(rows []listRow) {
	fmt.Printf("%-10s  %-4s  %-14s  %-6s  %-13s  %-10s  %-6s  %-20s  %s\n",
		"Result", "Tier", "Shape", "Conf", "State", "Proof", "Status", "Time", "Query")
	fmt.Printf("%-10s+-%-4s+-%-14s+-%-6s+-%-13s+-%-10s+-%-6s+-%-20s+-%s\n",
		"----------", "----", "--------------", "------", "-------------", "----------", "------", "--------------------", "-----")

	for _, r := range rows {
		marker := ""
		if r.Error != "" {
			marker = " !"
		}
		fmt.Printf("%-10s  %-4d  %-14s  %6.2f  %-13s  %-10s  %-6s  %-20s  %s%s\n",
			shortID(r.ResultID), r.Tier, r.Shape, r.Confidence, r.State, r.ProofLabel, r.Status, r.CreatedAt,
			truncate(r.Query, 48), marker)
	}
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	ResultID   string        `json:"result_id"`
	Query      string        `json:"query"`
	Method     string        `json:"method"`
	Tier       int           `json:"tier"`
	Insight    string        `json:"insight"`
	Confidence float64       `json:"confidence"`
	State      string        `json:"state"`
	Status     string        `json:"status"`
	Ratio      float64       `json:"ratio"`
	ProofLabel string        `json:"proof_label"`
	Closed     bool          `json:"closed"`
	Error      string        `json:"error,omitempty"`
	Ledger     []ledger.Step `json:"ledger"`
	Eval       evalDetail    `json:"eval"`
}

type evalDetail struct {
	Passed bool   `json:"passed"`
	Reason string `json:"reason"`
}

func runDetailMode(st *store.Store, resultID string, jsonOut bool) error {
	r, err := st.GetResult(resultID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("result %s not found", resultID)
	}
	if err != nil {
		return err
	}
	steps, err := st.Ledger(resultID)
	if err != nil {
		return err
	}

	cfg := eval.DefaultEvalConfig()
	if r.Method == orchestrator.MethodGovernance {
		cfg.RequiredStages = eval.EngineStages()
	}
	ev := eval.NewEvalHarness(cfg).Run(r)

	out := detailOutput{
		ResultID:   r.ID,
		Query:      r.Query,
		Method:     r.Method,
		Tier:       int(r.Tier),
		Insight:    r.Insight,
		Confidence: r.Confidence,
		State:      string(r.CSV.State),
		Status:     string(r.Constraint.Status),
		Ratio:      r.Constraint.Ratio,
		ProofLabel: string(r.ProofLabel),
		Closed:     r.IsClosed,
		Error:      r.Error,
		Ledger:     steps,
		Eval:       evalDetail{Passed: ev.Passed, Reason: ev.Reason},
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Result:     %s\n", out.ResultID)
	fmt.Printf("Query:      %s\n", out.Query)
	fmt.Printf("Method:     %s (tier %d)\n", out.Method, out.Tier)
	fmt.Printf("Confidence: %.4f\n", out.Confidence)
	fmt.Printf("State:      %s / %s (ratio %.4f)\n", out.State, out.Status, out.Ratio)
	fmt.Printf("Proof:      %s  closed=%v\n", out.ProofLabel, out.Closed)
	if out.Error != "" {
		fmt.Printf("Error:      %s\n", out.Error)
	}
	fmt.Printf("Eval:       %s\n", out.Eval.Reason)
	fmt.Printf("\n%s\n", out.Insight)

	fmt.Printf("\nLedger:\n")
	for _, s := range out.Ledger {
		fmt.Printf("  %2d  %-20s  +%5dms  %s\n", s.Step, s.Action, s.Timestamp, s.Detail)
	}
	return nil
}

// #endregion detail-mode

// #region helpers

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// #endregion helpers
