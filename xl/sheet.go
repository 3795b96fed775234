package xl

import (
	"iter"
	"slices"
)

// Row is a lazily produced sequence of cells, consumed once from left to
// right. Column numbers follow the position in the sequence.
type Row = iter.Seq[Cell]

type Sheet struct {
	Name string

	// Rows is consumed in a single forward pass; row numbers follow the
	// position in the sequence. When nil, rows added with AddRow are used.
	Rows iter.Seq[Row]

	ColWidths     map[int]float64 // 1-based column -> width in characters
	RowHeights    map[int]float64 // 1-based row -> height in points
	MergeCells    []MergeRange
	PaneFreeze    *Pane // nil = no frozen pane
	HideGridLines bool

	buffered [][]Cell
}

// MergeRange is a rectangular range given by its corner references, e.g.
// {"A1", "B2"}.
type MergeRange struct {
	From, To string
}

// Pane freezes the first Cols columns and the first Rows rows.
type Pane struct {
	Cols, Rows int
}

func NewSheet(name string) *Sheet {
	return &Sheet{
		Name:       name,
		ColWidths:  map[int]float64{},
		RowHeights: map[int]float64{},
	}
}

// AddRow buffers a row in memory. It is ignored once Rows is set.
func (s *Sheet) AddRow(cells ...Cell) {
	s.buffered = append(s.buffered, cells)
}

func (s *Sheet) SetColumnWidth(col int, w float64) {
	if col <= 0 {
		return
	}
	if s.ColWidths == nil {
		s.ColWidths = map[int]float64{}
	}
	if w <= 0 {
		delete(s.ColWidths, col)
	} else {
		s.ColWidths[col] = w
	}
}

func (s *Sheet) SetRowHeight(row int, h float64) {
	if row <= 0 {
		return
	}
	if s.RowHeights == nil {
		s.RowHeights = map[int]float64{}
	}
	if h <= 0 {
		delete(s.RowHeights, row)
	} else {
		s.RowHeights[row] = h
	}
}

// Merge registers the range from:to for merging.
func (s *Sheet) Merge(from, to string) {
	s.MergeCells = append(s.MergeCells, MergeRange{From: from, To: to})
}

// FreezePanes keeps the first cols columns and rows rows in view. (0, 0)
// removes the frozen pane.
func (s *Sheet) FreezePanes(cols, rows int) {
	if cols <= 0 && rows <= 0 {
		s.PaneFreeze = nil
		return
	}
	s.PaneFreeze = &Pane{Cols: max(cols, 0), Rows: max(rows, 0)}
}

func (s *Sheet) rows() iter.Seq[Row] {
	if s.Rows != nil {
		return s.Rows
	}
	return RowsOf(s.buffered)
}

// RowsOf adapts materialized rows to the lazy form of Sheet.Rows.
func RowsOf(rows [][]Cell) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, r := range rows {
			if !yield(slices.Values(r)) {
				return
			}
		}
	}
}
