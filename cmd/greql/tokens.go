package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ryanuber/columnize"

	"github.com/greqlkit/greql"
	"github.com/greqlkit/greql/cmd/internal/cliutil"
)

const tokensUsage = `greql tokens - Print the token stream of a query

Usage:
  greql tokens [options] [QUERY | -f FILE]

Options:
  -f FILE            Read the query from FILE ("-" for stdin)
  -format FORMAT     Output format: text, json, yaml (default text)
  -h, --help         Show help

Examples:
  greql tokens 'V{Person}'
  greql tokens -format json -f query.greql
`

func (c *cli) cmdTokens(args []string) int {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, tokensUsage) }

	var files fileList
	fs.Var(&files, "f", "read query from file")
	format := fs.String("format", "text", "output format")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, tokensUsage)
		return exitOK
	}
	if len(files) > 1 {
		printError("tokens takes a single query")
		return exitError
	}

	sources, err := cliutil.ReadQueries(files, fs.Args(), os.Stdin)
	if err != nil {
		printError("%v", err)
		return exitError
	}
	src := sources[0]

	toks, err := greql.Tokenize(src.Text)
	if err != nil {
		fmt.Fprintln(os.Stderr, cliutil.FormatError(src.Name, err))
		return exitInvalid
	}

	switch *format {
	case "text":
		fmt.Println(formatTokens(toks))
	case "json", "yaml":
		if err := writeStructured(os.Stdout, *format, toks); err != nil {
			printError("%v", err)
			return exitError
		}
	default:
		printError("unknown format: %s", *format)
		return exitError
	}
	return exitOK
}

// formatTokens aligns one token per row. Token text is quoted, so the
// tab delimiter cannot occur inside a column.
func formatTokens(toks []greql.Token) string {
	rows := make([]string, 0, len(toks)+1)
	rows = append(rows, "Offset\tLength\tKind\tText")
	for _, t := range toks {
		rows = append(rows, fmt.Sprintf("%d\t%d\t%s\t%q", t.Offset, t.Length, t.Kind, t.Text))
	}
	conf := columnize.DefaultConfig()
	conf.Delim = "\t"
	conf.Glue = "  "
	return columnize.Format(rows, conf)
}
