package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	env := DefaultEnv()
	if err := run(context.Background(), os.Args, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// run dispatches the command line to a subcommand.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ErrNoCommand
	}

	command := args[1]
	rest := args[2:]

	switch command {
	case "convert":
		flags, positional, err := parseConvertFlags(rest)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadFlags, err)
		}
		return runConvert(ctx, positional, flags, env)
	case "themes":
		flags, _, err := parseThemesFlags(rest)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadFlags, err)
		}
		return runThemes(flags, env)
	case "version":
		fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
		return nil
	case "help":
		runHelp(rest, env)
		return nil
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// runHelp prints usage for the named command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "themes":
		printThemesUsage(env.Stdout)
	default:
		printUsage(env.Stdout)
	}
}
