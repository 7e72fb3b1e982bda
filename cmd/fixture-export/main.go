package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jaredlewiswechs/AdanAgent/internal/replay"
	"github.com/jaredlewiswechs/AdanAgent/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to ada.db")
	last := flag.Int("last", 4, "number of most recent results to export")
	session := flag.String("session", "", "only export results from this session")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --out path/to/fixture.json [--last N] [--session id]")
		os.Exit(2)
	}

	if err := run(*dbPath, *last, *session, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath string, last int, session, outPath string) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	sums, err := st.ListResults(0)
	if err != nil {
		return err
	}

	// newest first; keep the last N matching, then reverse for chronological
	var ids []string
	for _, s := range sums {
		if session != "" && s.SessionID != session {
			continue
		}
		ids = append(ids, s.ResultID)
		if last > 0 && len(ids) == last {
			break
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no results found to export")
	}

	f := replay.Fixture{
		Description: fmt.Sprintf("Session export: %d stored results", len(ids)),
		Config:      replay.FixtureConfig{Parallelism: replay.DefaultReplayConfig().Parallelism},
	}
	for i := len(ids) - 1; i >= 0; i-- {
		r, err := st.GetResult(ids[i])
		if err != nil {
			return fmt.Errorf("get result %s: %w", ids[i], err)
		}
		fc, exp, err := replay.FromResult(r)
		if err != nil {
			return err
		}
		f.Cases = append(f.Cases, fc)
		f.ExpectedResults = append(f.ExpectedResults, exp)
	}

	fmt.Printf("Found %d results\n", len(f.Cases))
	return writeFixture(f, outPath)
}

// #endregion extract

// #region output

func writeFixture(fixture replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("Wrote fixture to %s (%d bytes, %d cases)\n", outPath, len(data), len(fixture.Cases))
	return nil
}

// #endregion output
