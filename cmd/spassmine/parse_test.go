package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTransactionsRebasesToZero(t *testing.T) {
	rows, cols, err := parseTransactions(strings.NewReader("1 2 3\n2 3\n\n4\n"))
	require.NoError(t, err)
	require.Equal(t, 4, cols)
	require.Equal(t, [][]int{{0, 1, 2}, {1, 2}, {3}}, rows)
}

func TestParseTransactionsRejectsNonPositiveIndex(t *testing.T) {
	_, _, err := parseTransactions(strings.NewReader("0 1\n"))
	require.Error(t, err)
}

func TestParseTransactionsRejectsNonInteger(t *testing.T) {
	_, _, err := parseTransactions(strings.NewReader("1 x\n"))
	require.Error(t, err)
}

func TestParseLabelsSkipsBlankLines(t *testing.T) {
	labels, err := parseLabels(strings.NewReader("0\n1\n\n1\n"))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 1}, labels)
}

func TestParseLabelsRejectsNonInteger(t *testing.T) {
	_, err := parseLabels(strings.NewReader("abc\n"))
	require.Error(t, err)
}
