package xl

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Workbook is the input of a compilation: an ordered list of sheets plus
// document properties.
type Workbook struct {
	Sheets []*Sheet

	Datetime   string    // ISO-8601 creation time; empty means the time of compilation
	AppName    string    // application name for docProps/app.xml
	Language   string    // dc:language, "en-US" when empty
	Revision   int       // cp:revision, 1 when zero
	Identifier uuid.UUID // dc:identifier, omitted when nil

	sheetMap map[string]*Sheet
}

func NewWorkbook() *Workbook {
	return &Workbook{
		sheetMap: map[string]*Sheet{},
	}
}

// AddSheet appends a new empty sheet.
func (wb *Workbook) AddSheet(name string) (*Sheet, error) {
	if err := validateSheetName(name); err != nil {
		return nil, err
	}
	if wb.sheetMap == nil {
		wb.sheetMap = map[string]*Sheet{}
	}
	key := strings.ToLower(name)
	if _, exists := wb.sheetMap[key]; exists {
		return nil, fmt.Errorf("%w '%s'", ErrDuplicateSheet, name)
	}

	sheet := NewSheet(name)
	wb.Sheets = append(wb.Sheets, sheet)
	wb.sheetMap[key] = sheet

	return sheet, nil
}

// SetCreated stores t as the creation time.
func (wb *Workbook) SetCreated(t time.Time) {
	wb.Datetime = t.UTC().Format(time.RFC3339)
}

// validate checks what the compiler relies on: every sheet name is legal and
// unique (case-insensitively) and every merge range is made of valid
// references.
func (wb *Workbook) validate() error {
	seen := map[string]bool{}
	for i, sh := range wb.Sheets {
		fail := func(err error) error {
			return &SheetError{Sheet: sh.Name, Index: i + 1, Err: err}
		}
		if err := validateSheetName(sh.Name); err != nil {
			return fail(err)
		}
		key := strings.ToLower(sh.Name)
		if seen[key] {
			return fail(fmt.Errorf("%w '%s'", ErrDuplicateSheet, sh.Name))
		}
		seen[key] = true
		for _, m := range sh.MergeCells {
			if _, _, err := ParseCellReference(m.From); err != nil {
				return fail(err)
			}
			if _, _, err := ParseCellReference(m.To); err != nil {
				return fail(err)
			}
		}
	}
	return nil
}

func validateSheetName(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return fmt.Errorf("%w: empty sheet name is not allowed", ErrInvalidSheetName)
	} else if n > 31 {
		return fmt.Errorf("%w: the sheet name is too long", ErrInvalidSheetName)
	}
	if strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'") {
		return fmt.Errorf("%w: the first or last character of the sheet name can not be a single quote", ErrInvalidSheetName)
	}
	if strings.ContainsAny(s, ":\\/?*[]") {
		return fmt.Errorf("%w: the sheet can not contain any of the characters :\\/?*[]", ErrInvalidSheetName)
	}
	return nil
}
