package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseTransactions reads a FIMI/SPMF-style transactions file: one row
// per line, space-separated 1-based column indices. Blank lines are
// skipped. It returns the row sets (rebased to 0-based) and the column
// universe size (the largest index seen).
func parseTransactions(r io.Reader) (rows [][]int, cols int, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		row := make([]int, 0, len(fields))
		for _, f := range fields {
			oneBased, convErr := strconv.Atoi(f)
			if convErr != nil {
				return nil, 0, fmt.Errorf("transactions line %d: %w", lineNo, convErr)
			}
			if oneBased <= 0 {
				return nil, 0, fmt.Errorf("transactions line %d: column index must be >= 1, got %d", lineNo, oneBased)
			}
			col := oneBased - 1
			row = append(row, col)
			if oneBased > cols {
				cols = oneBased
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}

	return rows, cols, nil
}

// parseLabels reads one integer group label per line.
func parseLabels(r io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(r)
	var labels []int
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("labels line %d: %w", lineNo, err)
		}
		labels = append(labels, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return labels, nil
}
