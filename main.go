// This is the main-driver for our compiler.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/go9cc/nanocc/compiler"
	"github.com/go9cc/nanocc/config"
)

// debugEnvVar, when set to any non-empty value, turns on a structured
// pipeline trace to stderr. It never changes stdout or the exit code.
const debugEnvVar = "NANOCC_DEBUG"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run holds everything main would otherwise do inline, so tests can
// drive it without touching the process's real argv/stdout/stderr.
func run(args []string, stdout, stderr *os.File) int {
	//
	// Ensure we have an expression as our single argument. No flags:
	// the CLI contract is exactly one positional argument.
	//
	if len(args) != 1 {
		fmt.Fprintf(stderr, "Usage: nanocc 'program'\n")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "%s\n", err)
		return 1
	}

	comp := compiler.New(args[0], cfg)

	out, err := comp.Compile()
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "%s\n", err)
		return 1
	}

	if os.Getenv(debugEnvVar) != "" {
		trace(stderr, comp.Stats)
	}

	fmt.Fprintf(stdout, "%s", out)
	return 0
}

// trace emits a structured, human-readable pipeline summary. It is
// purely additive: nothing here is part of the program's contract.
func trace(w *os.File, stats compiler.Stats) {
	logger := slog.New(slog.NewTextHandler(w, nil))
	logger.Info("compiled",
		"tokens", stats.Tokens,
		"statements", stats.Statements,
		"labels", stats.Labels,
		"locals", stats.Locals,
		"functions", stats.Functions,
	)
}
