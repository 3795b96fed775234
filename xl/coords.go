package xl

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnLetters converts a 1-based column number into its bijective base-26
// name: 1 is "A", 26 is "Z", 27 is "AA". Non-positive columns yield "".
func ColumnLetters(col int) string {
	switch {
	case col <= 0:
		return ""
	case col <= 26:
		return string(rune('A' + col - 1))
	}
	q, r := col/26, col%26
	if r == 0 {
		// there is no zero digit: 52 is "AZ", not "B" followed by nothing
		return ColumnLetters(q-1) + "Z"
	}
	return ColumnLetters(q) + ColumnLetters(r)
}

// CellReference returns the A1-style name of a cell, both arguments 1-based.
func CellReference(row, col int) string {
	return ColumnLetters(col) + strconv.Itoa(row)
}

// ColumnNumber is the inverse of ColumnLetters. Letters are case-insensitive.
func ColumnNumber(letters string) (int, error) {
	if letters == "" || len(letters) > 7 {
		return 0, fmt.Errorf("%w: invalid column name %q", ErrInvalidReference, letters)
	}
	n := 0
	for _, ch := range letters {
		switch {
		case ch >= 'A' && ch <= 'Z':
			n = n*26 + int(ch-'A') + 1
		case ch >= 'a' && ch <= 'z':
			n = n*26 + int(ch-'a') + 1
		default:
			return 0, fmt.Errorf("%w: invalid column name %q", ErrInvalidReference, letters)
		}
	}
	return n, nil
}

// ParseCellReference splits a reference like "B12" or "$B$12" into its
// 1-based row and column.
func ParseCellReference(ref string) (row, col int, err error) {
	s := strings.ReplaceAll(ref, "$", "")
	i := 0
	for i < len(s) && (s[i] >= 'A' && s[i] <= 'Z' || s[i] >= 'a' && s[i] <= 'z') {
		i++
	}
	if i == 0 || i == len(s) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	col, err = ColumnNumber(s[:i])
	if err != nil {
		return 0, 0, err
	}
	if col > MaxColumns {
		return 0, 0, fmt.Errorf("%w: column out of range in %q", ErrInvalidReference, ref)
	}
	row, err = strconv.Atoi(s[i:])
	if err != nil || row < 1 || row > MaxRows {
		return 0, 0, fmt.Errorf("%w: invalid row in %q", ErrInvalidReference, ref)
	}
	return row, col, nil
}
