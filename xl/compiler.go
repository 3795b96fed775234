package xl

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// Reserved slots of the styles part. Custom entries are placed after them, so
// the reference to an interned value is its zero-based table position plus
// the number of slots in front of it.
const (
	reservedFonts   = 1   // the default font
	reservedFills   = 2   // patternType none and gray125
	reservedBorders = 1   // the default border
	reservedXfs     = 1   // the default cell format
	firstNumFmtID   = 164 // ids below are built-in formats
)

// Workbook-level relationship ids: rId1 is the styles part, sheets follow.
const firstSheetRID = 2

// SheetInfo is the naming assigned to one worksheet part.
type SheetInfo struct {
	RID      string // relationship id in xl/_rels/workbook.xml.rels
	Filename string // file name under xl/worksheets/
	SheetID  int
}

// CompilationState holds everything the part generators need to agree on:
// sheet naming, relationship ids and the interning tables. It only grows
// while worksheets are compiled and is read-only afterwards.
type CompilationState struct {
	Sheets      []SheetInfo
	NextFreeRID int // relationship id of the shared strings part

	Strings Table[string]
	Fonts   Table[Font]
	Fills   Table[string]
	Styles  Table[CellStyle]
	NumFmts Table[string]
	Borders Table[BorderStyle]
}

func newCompilationState(sheetCount int) *CompilationState {
	st := &CompilationState{
		Sheets:      make([]SheetInfo, sheetCount),
		NextFreeRID: firstSheetRID + sheetCount,
	}
	for i := range st.Sheets {
		st.Sheets[i] = SheetInfo{
			RID:      fmt.Sprintf("rId%d", firstSheetRID+i),
			Filename: fmt.Sprintf("sheet%d.xml", i+1),
			SheetID:  i + 1,
		}
	}
	return st
}

// styleIndex interns s with all of its components and returns its index
// into cellXfs. Nil and default styles map to the default format 0 and never
// allocate an entry.
func (st *CompilationState) styleIndex(s *CellStyle) int {
	if s == nil || s.IsDefault() {
		return 0
	}
	if id, ok := st.Styles.ID(*s); ok {
		return id - 1 + reservedXfs
	}
	if !s.Font.IsDefault() {
		st.Fonts.Intern(s.Font)
	}
	if s.Fill != "" {
		st.Fills.Intern(s.Fill)
	}
	if s.NumFmt != "" {
		st.NumFmts.Intern(s.NumFmt)
	}
	if !s.Border.IsDefault() {
		st.Borders.Intern(s.Border)
	}
	return st.Styles.Intern(*s) - 1 + reservedXfs
}

// sharedStringIndex interns s and returns its zero-based position in the
// shared strings part.
func (st *CompilationState) sharedStringIndex(s string) int {
	return st.Strings.Intern(s) - 1
}

// The lookups below run on the frozen state: every component was interned
// together with its style.

func (st *CompilationState) fontIndex(f Font) int {
	if id, ok := st.Fonts.ID(f); ok {
		return id - 1 + reservedFonts
	}
	return 0
}

func (st *CompilationState) fillIndex(fill string) int {
	if id, ok := st.Fills.ID(fill); ok {
		return id - 1 + reservedFills
	}
	return 0
}

func (st *CompilationState) numFmtID(code string) int {
	if id, ok := st.NumFmts.ID(code); ok {
		return id - 1 + firstNumFmtID
	}
	return 0
}

func (st *CompilationState) borderIndex(b BorderStyle) int {
	if id, ok := st.Borders.ID(b); ok {
		return id - 1 + reservedBorders
	}
	return 0
}

func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V)) {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		callback(k, m[k])
	}
}
