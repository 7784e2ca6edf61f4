package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/greqlkit/greql"
)

const funcsUsage = `greql funcs - List the built-in function names

Usage:
  greql funcs [options]

Options:
  -format FORMAT     Output format: text, json, yaml (default text)
  -h, --help         Show help
`

func (c *cli) cmdFuncs(args []string) int {
	fs := flag.NewFlagSet("funcs", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, funcsUsage) }

	format := fs.String("format", "text", "output format")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, funcsUsage)
		return exitOK
	}

	names := append(greql.DefaultFunctions(), c.functions...)
	switch *format {
	case "text":
		for _, n := range names {
			fmt.Println(n)
		}
	case "json", "yaml":
		if err := writeStructured(os.Stdout, *format, names); err != nil {
			printError("%v", err)
			return exitError
		}
	default:
		printError("unknown format: %s", *format)
		return exitError
	}
	return exitOK
}
