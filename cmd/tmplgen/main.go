// tmplgen generates tmpl.Params implementations for Go struct types and
// checks templates against them.
//
// Usage:
//
//	tmplgen gen    --pkg PATTERN --type A,B [--out DIR] [--tag KEY] [--no-comments]
//	tmplgen gen    --config tmplgen.yaml
//	tmplgen fields --pkg PATTERN --type A [--tag KEY]
//	tmplgen check  --pkg PATTERN --type A --template TEXT [--set name=value ...]
//
// A typical go:generate line:
//
//	//go:generate go run fieldtmpl/cmd/tmplgen gen --pkg . --type Invoice
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"fieldtmpl/internal/gen"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err != errUsage {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var (
	// errUsage is returned bare after printing usage text. Every usageError
	// matches it as well.
	errUsage = errors.New("usage")

	// errHelp is returned by subcommands after printing their help.
	errHelp = errors.New("help requested")
)

// usageError reports a bad invocation, such as an unknown flag or a missing
// required one. main exits with status 2 for it.
type usageError struct {
	err error
}

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func (u *usageError) Error() string { return u.err.Error() }
func (u *usageError) Unwrap() error { return u.err }
func (u *usageError) Is(target error) bool { return target == errUsage }

// command is one tmplgen subcommand.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = []command{
	{"gen", "generate TemplateFields/TemplateField methods", runGen},
	{"fields", "list the template fields of a type", runFields},
	{"check", "compile a template against a type", runCheck},
}

// env carries the process streams and the logger to subcommands.
type env struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errUsage
	}

	name := args[0]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage(stdout)
		return nil
	}

	for _, cmd := range commands {
		if cmd.name == name {
			err := cmd.run(ctx, &env{stdout: stdout, stderr: stderr}, args[1:])
			if errors.Is(err, errHelp) {
				return nil
			}

			return err
		}
	}

	fmt.Fprintf(stderr, "unknown command %q\n\n", name)
	printUsage(stderr)

	return errUsage
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, "Usage: tmplgen <command> [flags]\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprint(w, "\nRun 'tmplgen <command> --help' for command flags.\n")
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	pkg     string
	tag     string
	verbose bool
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.pkg, "pkg", ".", "package pattern declaring the types")
	fs.StringVar(&c.tag, "tag", gen.DefaultTagKey, "struct tag used to rename or skip fields")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "log debug messages")
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, e *env) *pflag.FlagSet {
	fs := pflag.NewFlagSet("tmplgen "+name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.SortFlags = false

	return fs
}

// parse parses args and sets up the logger. Help requests return errHelp
// after pflag has printed the flag defaults.
func parse(fs *pflag.FlagSet, e *env, common *commonFlags, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return errHelp
		}

		return usagef("%s: %w", fs.Name(), err)
	}

	if fs.NArg() > 0 {
		return usagef("%s: unexpected argument %q", fs.Name(), fs.Arg(0))
	}

	level := slog.LevelInfo
	if common.verbose {
		level = slog.LevelDebug
	}
	e.logger = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))

	return nil
}
