// Command greql is a CLI tool for tokenizing, parsing, and checking GReQL queries.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/greqlkit/greql"
	"github.com/greqlkit/greql/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK      = 0 // success
	exitError   = 1 // usage error or unreadable input
	exitInvalid = 2 // the query failed to parse
)

const usage = `greql - GReQL query parser

Usage:
  greql <command> [options] [QUERY | -f FILE]

Commands:
  tokens   Print the token stream of a query
  parse    Parse a query and print its syntax graph
  check    Parse queries and report errors only
  funcs    List the built-in function names
  version  Show version

Common options:
  -F, --func NAME   Treat NAME as a function (repeatable)
  -v, --verbose     Enable debug logging
  -vv               Enable trace logging (implies -v)
  -h, --help        Show help

A query is read from the arguments, from -f FILE, or from stdin when
neither is given.

Examples:
  greql tokens 'V{Person}'
  greql parse 'from x : V{Person} report x.name end'
  greql parse -format json -f query.greql
  greql check -f a.greql -f b.greql
  greql parse -F myFunc 'myFunc(1, 2)'
`

type cli struct {
	verbose   int
	functions []string
	helpFlag  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	var c cli
	args := os.Args[1:]
	var cmdArgs []string
	var cmd string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			c.helpFlag = true
		case arg == "-v" || arg == "--verbose":
			if c.verbose < 1 {
				c.verbose = 1
			}
		case arg == "-vv":
			c.verbose = 2
		case arg == "-F" || arg == "--func":
			if i+1 < len(args) {
				i++
				c.functions = append(c.functions, args[i])
			}
		case strings.HasPrefix(arg, "--func="):
			c.functions = append(c.functions, arg[7:])
		case cmd == "":
			if len(arg) > 0 && arg[0] == '-' {
				cmdArgs = append(cmdArgs, arg)
			} else {
				cmd = arg
			}
		default:
			cmdArgs = append(cmdArgs, arg)
		}
	}

	if c.helpFlag && cmd == "" {
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	}

	if cmd == "" {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	switch cmd {
	case "tokens":
		return c.cmdTokens(cmdArgs)
	case "parse":
		return c.cmdParse(cmdArgs)
	case "check":
		return c.cmdCheck(cmdArgs)
	case "funcs":
		return c.cmdFuncs(cmdArgs)
	case "version":
		printVersion()
		return exitOK
	case "help":
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = greql.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func (c *cli) parseOptions() []greql.ParseOption {
	var opts []greql.ParseOption
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, greql.WithLogger(logger))
	}
	if len(c.functions) > 0 {
		opts = append(opts, greql.WithFunctions(c.functions...))
	}
	return opts
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("greql %s\n", version)
}

func printError(format string, args ...any) {
	cliutil.PrintError(format, args...)
}

// fileList collects repeated -f flags.
type fileList []string

func (f *fileList) String() string     { return strings.Join(*f, ",") }
func (f *fileList) Set(v string) error { *f = append(*f, v); return nil }
