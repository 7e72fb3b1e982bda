package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaredlewiswechs/AdanAgent/internal/config"
	"github.com/jaredlewiswechs/AdanAgent/internal/orchestrator"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// #region resolve

func newResolveCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <query>",
		Short: "Resolve a query through the pattern, cluster and delegated tiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, f, func(ctx context.Context, a *app) error {
				res := a.resolve(ctx, f.session, strings.Join(args, " "))
				return printResult(cmd.OutOrStdout(), res, f.jsonOut)
			})
		},
	}
}

func (a *app) resolve(ctx context.Context, session, query string) result.SearchResult {
	res := a.resolver.Resolve(ctx, query)
	if a.store != nil {
		if err := a.store.SaveResult(session, res); err != nil {
			a.log.Warn().Err(err).Str("result_id", res.ID).Msg("persist result")
		}
	}
	return res
}

// #endregion resolve

// #region ask

func newAskCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask the governed engine and print the labelled answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cx, err := complexityFlag(f.complexity)
			if err != nil {
				return err
			}
			return withApp(cmd, f, func(ctx context.Context, a *app) error {
				res := a.engine.Resolve(ctx, orchestrator.Request{
					Query:      strings.Join(args, " "),
					Complexity: cx,
					SessionID:  f.session,
				})
				return printResult(cmd.OutOrStdout(), res, f.jsonOut)
			})
		},
	}
}

func complexityFlag(s string) (orchestrator.Complexity, error) {
	if s == "" {
		return "", nil
	}
	cx, ok := orchestrator.ParseComplexity(s)
	if !ok {
		return "", fmt.Errorf("unknown complexity %q", s)
	}
	return cx, nil
}

// #endregion ask

// #region repl

func newReplCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session; prefix a line with /resolve to use the tiered resolver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cx, err := complexityFlag(f.complexity)
			if err != nil {
				return err
			}
			return withApp(cmd, f, func(ctx context.Context, a *app) error {
				return a.repl(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), f, cx)
			})
		},
	}
}

func (a *app) repl(ctx context.Context, in io.Reader, out io.Writer, f *rootFlags, cx orchestrator.Complexity) error {
	fmt.Fprintln(out, "Ada ready. Type a question (or 'quit' to exit):")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		var res result.SearchResult
		if q, ok := strings.CutPrefix(line, "/resolve "); ok {
			res = a.resolve(ctx, f.session, q)
		} else {
			res = a.engine.Resolve(ctx, orchestrator.Request{Query: line, Complexity: cx, SessionID: f.session})
		}
		if err := printResult(out, res, f.jsonOut); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

// #endregion repl

// #region config

func newConfigCmd(f *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), cfg)
		},
	}

	cfgCmd.AddCommand(initCmd, showCmd)
	return cfgCmd
}

// #endregion config

// #region version

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// #endregion version

// #region helpers

// withApp wires the app, runs fn under an interrupt-aware context and closes
// everything afterwards.
func withApp(cmd *cobra.Command, f *rootFlags, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(f)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return fn(ctx, a)
}

// #endregion helpers
