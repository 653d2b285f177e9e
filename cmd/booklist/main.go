package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Flags are parsed again by runMain; here only --verbose matters.
	verbose := false
	if flags, _, err := parseFlags(os.Args[1:]); err == nil {
		verbose = flags.common.verbose
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}
