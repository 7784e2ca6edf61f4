package cliutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greqlkit/greql"
)

func TestReadQueriesFromArgs(t *testing.T) {
	got, err := ReadQueries(nil, []string{"1", "+", "2"}, nil)
	require.NoError(t, err)
	require.Equal(t, []Source{{Name: "<arg>", Text: "1 + 2"}}, got)
}

func TestReadQueriesFromStdin(t *testing.T) {
	got, err := ReadQueries(nil, nil, strings.NewReader("V{Person}"))
	require.NoError(t, err)
	require.Equal(t, []Source{{Name: "<stdin>", Text: "V{Person}"}}, got)
}

func TestReadQueriesFromFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.greql")
	b := filepath.Join(dir, "b.greql")
	require.NoError(t, os.WriteFile(a, []byte("1"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("2"), 0o600))

	got, err := ReadQueries([]string{a, b}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []Source{{Name: a, Text: "1"}, {Name: b, Text: "2"}}, got)

	_, err = ReadQueries([]string{a}, []string{"1"}, nil)
	require.Error(t, err)

	_, err = ReadQueries([]string{filepath.Join(dir, "missing")}, nil, nil)
	require.Error(t, err)
}

func TestFormatError(t *testing.T) {
	_, err := greql.Parse("1 2")
	require.Error(t, err)
	require.Equal(t, "q: 1:3: expected end of query, found \"2\"\n1 2\n  ^", FormatError("q", err))

	require.Equal(t, "q: boom", FormatError("q", errors.New("boom")))
}
