// Package cliutil provides shared CLI utilities for greql command-line tools.
package cliutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source is one query to process, named for error messages.
type Source struct {
	Name string
	Text string
}

// ReadQueries returns the queries named by files, or the query given in
// args, or the query on stdin when both are empty. A file named "-" is
// stdin.
func ReadQueries(files, args []string, stdin io.Reader) ([]Source, error) {
	if len(files) > 0 && len(args) > 0 {
		return nil, errors.New("give either -f FILE or a query argument, not both")
	}
	if len(args) > 0 {
		return []Source{{Name: "<arg>", Text: strings.Join(args, " ")}}, nil
	}
	if len(files) == 0 {
		files = []string{"-"}
	}
	var out []Source
	for _, name := range files {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(stdin)
			name = "<stdin>"
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Source{Name: name, Text: string(data)})
	}
	return out, nil
}

// FormatError renders a parse error with its source excerpt when the
// error carries a location.
func FormatError(name string, err error) string {
	msg := fmt.Sprintf("%s: %v", name, err)
	var loc interface{ Excerpt() string }
	if errors.As(err, &loc) {
		if ex := loc.Excerpt(); ex != "" {
			msg += "\n" + ex
		}
	}
	return msg
}

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string) (*os.File, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
