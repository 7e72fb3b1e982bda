package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jaredlewiswechs/AdanAgent/internal/replay"
	"github.com/jaredlewiswechs/AdanAgent/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to ada.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	last := flag.Int("last", 100, "replay the N most recent stored results (DB mode)")
	parallel := flag.Int("parallel", 0, "worker count (0 keeps the fixture or default setting)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/ada.db [--last N]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath, *parallel)
	} else {
		exitCode = runDBMode(*dbPath, *last, *parallel)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region db-extract

// runDBMode re-runs stored results against their recorded replies. The
// newest results come back first from the store; replay runs oldest first.
func runDBMode(dbPath string, last, parallel int) int {
	st, err := store.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer st.Close()

	summaries, err := st.ListResults(last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list results: %v\n", err)
		return 2
	}
	if len(summaries) == 0 {
		fmt.Fprintln(os.Stderr, "no results found in store")
		return 2
	}

	cases := make([]replay.Case, 0, len(summaries))
	expected := make([]replay.FixtureExpectedResult, 0, len(summaries))
	for i := len(summaries) - 1; i >= 0; i-- {
		r, err := st.GetResult(summaries[i].ResultID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "get result %s: %v\n", summaries[i].ResultID, err)
			return 2
		}
		fc, exp, err := replay.FromResult(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export %s: %v\n", r.ID, err)
			return 2
		}
		cases = append(cases, fc.ToCase())
		expected = append(expected, exp)
	}

	cfg := replay.DefaultReplayConfig()
	if parallel > 0 {
		cfg.Parallelism = parallel
	}
	return run(cases, expected, cfg)
}

// #endregion db-extract

// #region output

func runFixtureMode(path string, parallel int) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	if f.Description != "" {
		fmt.Printf("Fixture: %s\n\n", f.Description)
	}

	cfg := f.Config.ToReplayConfig()
	if parallel > 0 {
		cfg.Parallelism = parallel
	}
	cases := make([]replay.Case, len(f.Cases))
	for i := range f.Cases {
		cases[i] = f.Cases[i].ToCase()
	}
	return run(cases, f.ExpectedResults, cfg)
}

func run(cases []replay.Case, expected []replay.FixtureExpectedResult, cfg replay.ReplayConfig) int {
	results, err := replay.Replay(context.Background(), cases, expected, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}
	return printComparison(results)
}

// printComparison outputs a comparison table and returns the exit code.
func printComparison(results []replay.ReplayResult) int {
	fmt.Printf("%-38s| %-4s| %-14s| %-11s| %s\n", "Case", "Tier", "State", "Proof", "Match")
	fmt.Printf("%-38s+%-5s+%-15s+%-12s+%s\n",
		strings.Repeat("-", 38), "-----", "---------------", "------------", "------")

	for _, r := range results {
		match := "OK"
		if !r.Passed() {
			match = "DIFF"
		}
		fmt.Printf("%-38s| %-4d| %-14s| %-11s| %s\n",
			r.CaseID, r.Result.Tier, r.Result.CSV.State, r.Result.ProofLabel, match)
		for _, m := range r.Mismatches {
			fmt.Printf("    %s\n", m)
		}
		if !r.EvalResult.Passed {
			fmt.Printf("    %s\n", r.EvalResult.Reason)
		}
	}

	s := replay.Summarize(results)
	fmt.Printf("\nSummary: %d total, %d match, %d diverge, %d eval failures, %d degraded\n",
		s.TotalCases, s.Passed, s.TotalCases-s.Passed, s.EvalFailed, s.Degraded)
	fmt.Printf("By tier: %s\n", formatCounts(s.ByTier))

	if s.Passed < s.TotalCases {
		return 1
	}
	return 0
}

func formatCounts(m map[int]int) string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}

// #endregion output
