package xl

import (
	"errors"
	"fmt"
)

// Limits of the SpreadsheetML grid.
const (
	MaxColumns = 16384
	MaxRows    = 1048576
)

var (
	ErrInvalidSheetName = errors.New("invalid sheet name")
	ErrDuplicateSheet   = errors.New("duplicate sheet name")
	ErrInvalidReference = errors.New("invalid cell reference")
)

// SheetError reports a problem with one sheet of the workbook being compiled.
type SheetError struct {
	Sheet string
	Index int // 1-based position in the workbook
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %d (%q): %v", e.Index, e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
