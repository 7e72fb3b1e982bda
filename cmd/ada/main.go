// Command ada resolves natural-language queries through the tiered resolver
// or the governed delegated-reasoning engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time.
var version = "dev"

// #region flags

type rootFlags struct {
	configPath  string
	metricsAddr string
	session     string
	complexity  string
	jsonOut     bool
}

// #endregion flags

// #region main

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "ada",
		Short:         "Ada resolves queries and governs delegated answers",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default searches ./ada.yaml and ~/.config/ada)")
	pf.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	pf.StringVar(&f.session, "session", "default", "session id for history and persistence")
	pf.StringVar(&f.complexity, "complexity", "", "ELI5, STANDARD or TECHNICAL (inferred when empty)")
	pf.BoolVar(&f.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(
		newResolveCmd(f),
		newAskCmd(f),
		newReplCmd(f),
		newConfigCmd(f),
		newVersionCmd(),
	)
	return root
}

// #endregion main
