package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ryanuber/columnize"

	"github.com/greqlkit/greql"
	"github.com/greqlkit/greql/ast"
	"github.com/greqlkit/greql/cmd/internal/cliutil"
)

const parseUsage = `greql parse - Parse a query and print its syntax graph

Usage:
  greql parse [options] [QUERY | -f FILE]

Options:
  -f FILE            Read the query from FILE ("-" for stdin)
  -format FORMAT     Output format: text, sexpr, json, yaml (default text)
  -o, --output FILE  Write output to FILE
  --stats            Print parse statistics to stderr
  --no-memo          Disable rule memoization
  -h, --help         Show help

Formats:
  text    Compact functional notation of the main expression
  sexpr   Indented tree with edge kinds and source positions
  json    Full graph as nested JSON
  yaml    Full graph as nested YAML

Examples:
  greql parse 'from x : V report x end'
  greql parse -format sexpr -f query.greql
  greql parse --stats -format json -o out.json -f query.greql
`

// parseOutput is the structured form of a parsed query.
type parseOutput struct {
	Query          string       `json:"query" yaml:"query"`
	BoundVariables []string     `json:"boundVariables,omitempty" yaml:"boundVariables,omitempty"`
	ImportedTypes  []string     `json:"importedTypes,omitempty" yaml:"importedTypes,omitempty"`
	StoreAs        string       `json:"storeAs,omitempty" yaml:"storeAs,omitempty"`
	Stats          *greql.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
	Graph          *ast.Tree    `json:"graph" yaml:"graph"`
}

func (c *cli) cmdParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, parseUsage) }

	var files fileList
	fs.Var(&files, "f", "read query from file")
	format := fs.String("format", "text", "output format")
	output := fs.String("o", "", "output file")
	fs.StringVar(output, "output", "", "output file")
	stats := fs.Bool("stats", false, "print parse statistics")
	noMemo := fs.Bool("no-memo", false, "disable memoization")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, parseUsage)
		return exitOK
	}
	if len(files) > 1 {
		printError("parse takes a single query")
		return exitError
	}

	sources, err := cliutil.ReadQueries(files, fs.Args(), os.Stdin)
	if err != nil {
		printError("%v", err)
		return exitError
	}
	src := sources[0]

	opts := c.parseOptions()
	if *noMemo {
		opts = append(opts, greql.WithoutMemoization())
	}
	q, err := greql.Parse(src.Text, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, cliutil.FormatError(src.Name, err))
		return exitInvalid
	}

	out, closeOut, err := cliutil.GetOutput(*output)
	if err != nil {
		printError("cannot open output: %v", err)
		return exitError
	}
	defer closeOut()

	switch *format {
	case "text":
		fmt.Fprintln(out, q.String())
	case "sexpr":
		fmt.Fprintln(out, q.Sexpr())
	case "json", "yaml":
		po := parseOutput{
			Query:          q.Text,
			BoundVariables: q.BoundVariables(),
			ImportedTypes:  q.ImportedTypes(),
			StoreAs:        q.StoreAs(),
			Graph:          q.Export(),
		}
		if *stats {
			po.Stats = &q.Stats
		}
		if err := writeStructured(out, *format, po); err != nil {
			printError("%v", err)
			return exitError
		}
	default:
		printError("unknown format: %s", *format)
		return exitError
	}

	if *stats {
		fmt.Fprintln(os.Stderr, formatStats(q.Stats))
	}
	return exitOK
}

func formatStats(s greql.Stats) string {
	conf := columnize.DefaultConfig()
	conf.Glue = " = "
	return columnize.Format([]string{
		fmt.Sprintf("Tokens|%d", s.Tokens),
		fmt.Sprintf("Predicates|%d", s.Predicates),
		fmt.Sprintf("Memo hits|%d", s.MemoHits),
		fmt.Sprintf("Parsed nodes|%d", s.ParsedNodes),
		fmt.Sprintf("Parsed edges|%d", s.ParsedEdges),
		fmt.Sprintf("Nodes|%d", s.Nodes),
		fmt.Sprintf("Edges|%d", s.Edges),
	}, conf)
}
