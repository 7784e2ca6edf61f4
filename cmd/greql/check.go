package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/greqlkit/greql"
	"github.com/greqlkit/greql/cmd/internal/cliutil"
)

const checkUsage = `greql check - Parse queries and report errors only

Usage:
  greql check [options] [QUERY | -f FILE...]

Options:
  -f FILE            Read a query from FILE (repeatable, "-" for stdin)
  -q, --quiet        Print nothing, only set the exit code
  -h, --help         Show help

Exit codes:
  0  all queries parsed
  1  usage error or unreadable input
  2  at least one query failed to parse

Examples:
  greql check 'V{Person}'
  greql check -f a.greql -f b.greql
`

func (c *cli) cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, checkUsage) }

	var files fileList
	fs.Var(&files, "f", "read query from file")
	quiet := fs.Bool("q", false, "quiet")
	fs.BoolVar(quiet, "quiet", false, "quiet")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, checkUsage)
		return exitOK
	}

	sources, err := cliutil.ReadQueries(files, fs.Args(), os.Stdin)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	opts := c.parseOptions()
	failed := 0
	for _, src := range sources {
		if _, err := greql.Parse(src.Text, opts...); err != nil {
			failed++
			if !*quiet {
				fmt.Fprintln(os.Stderr, cliutil.FormatError(src.Name, err))
			}
			continue
		}
		if !*quiet {
			fmt.Printf("%s: ok\n", src.Name)
		}
	}
	if failed > 0 {
		return exitInvalid
	}
	return exitOK
}
