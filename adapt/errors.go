package adapt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrWrongType    = errors.New("wrong type")
)

// DecodeError locates a malformed part of the host value. Sheet, Row and Col
// are 1-based; zero means the error is not inside such an element.
type DecodeError struct {
	Sheet int
	Row   int
	Col   int
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode workbook")
	if e.Sheet > 0 {
		fmt.Fprintf(&b, ": sheet %d", e.Sheet)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ", row %d", e.Row)
	}
	if e.Col > 0 {
		fmt.Fprintf(&b, ", col %d", e.Col)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// pos is where the decoder currently is.
type pos struct {
	sheet, row, col int
}

func (p pos) fail(field string, err error) error {
	return &DecodeError{Sheet: p.sheet, Row: p.row, Col: p.col, Field: field, Err: err}
}

func (p pos) missing(field string) error {
	return p.fail(field, ErrMissingField)
}

func (p pos) wrongType(field, want string, got any) error {
	return p.fail(field, fmt.Errorf("%w: want %s, got %T", ErrWrongType, want, got))
}
