package xl

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/adnsv/srw/xml"
)

const (
	nsMain          = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// compileSheet renders one worksheet part in a single pass over its rows,
// interning strings and styles as it meets them.
func (st *CompilationState) compileSheet(bb *bytes.Buffer, sh *Sheet) {
	x := newPartWriter(bb)

	x.OTag("worksheet")
	x.Attr("xmlns", nsMain)
	x.Attr("xmlns:r", nsRelationships)

	x.OTag("sheetPr").Attr("filterMode", "false")
	x.OTag("pageSetUpPr").Attr("fitToPage", "false").CTag()
	x.CTag()

	x.OTag("dimension").Attr("ref", "A1").CTag()

	writeSheetViews(x, sh)

	x.OTag("sheetFormatPr").Attr("defaultRowHeight", 12.8).CTag()

	cols := map[int]float64{}
	for col, width := range sh.ColWidths {
		if col >= 1 && col <= MaxColumns && width > 0 {
			cols[col] = width
		}
	}
	if len(cols) > 0 {
		x.OTag("cols")
		enumerate(cols, func(col int, width float64) {
			x.OTag("col").Attr("min", col).Attr("max", col)
			x.Attr("width", width).RawAttr("customWidth", flag(true))
			x.CTag()
		})
		x.CTag()
	}

	x.OTag("sheetData")
	rowNumber := 0
	for row := range sh.rows() {
		rowNumber++
		x.OTag("row").Attr("r", rowNumber)
		if h, ok := sh.RowHeights[rowNumber]; ok && h > 0 {
			x.Attr("ht", h).RawAttr("customHeight", flag(true))
		}
		col := 0
		for cell := range row {
			col++
			st.writeCell(x, rowNumber, col, cell)
		}
		x.CTag() // row
	}
	x.CTag() // sheetData

	if len(sh.MergeCells) > 0 {
		x.OTag("mergeCells").Attr("count", len(sh.MergeCells))
		for _, m := range sh.MergeCells {
			x.OTag("mergeCell").RawAttr("ref", escaped(m.From+":"+m.To)).CTag()
		}
		x.CTag()
	}

	x.OTag("pageMargins")
	x.Attr("left", 0.75).Attr("right", 0.75).Attr("top", 1.0).Attr("bottom", 1.0)
	x.Attr("header", 0.5).Attr("footer", 0.5)
	x.CTag()

	x.CTag() // worksheet
}

func writeSheetViews(x *xml.Writer, sh *Sheet) {
	x.OTag("sheetViews")
	x.OTag("sheetView").Attr("workbookViewId", 0)
	if sh.HideGridLines {
		x.RawAttr("showGridLines", flag(false))
	}

	var active string
	if p := sh.PaneFreeze; p != nil {
		cols, rows := max(p.Cols, 0), max(p.Rows, 0)
		switch {
		case cols > 0 && rows > 0:
			active = "bottomRight"
		case rows > 0:
			active = "bottomLeft"
		case cols > 0:
			active = "topRight"
		}
		if active != "" {
			x.OTag("pane")
			x.Attr("xSplit", cols).Attr("ySplit", rows)
			x.Attr("topLeftCell", CellReference(rows+1, cols+1))
			x.Attr("activePane", active).Attr("state", "frozen")
			x.CTag()
		}
	}

	x.OTag("selection")
	if active != "" {
		x.Attr("pane", active)
	}
	x.Attr("activeCell", "A1").Attr("sqref", "A1")
	x.CTag()

	x.CTag() // sheetView
	x.CTag() // sheetViews
}

// writeCell classifies the cell under its style and emits it. Unrecognized
// values produce no element at all.
func (st *CompilationState) writeCell(x *xml.Writer, row, col int, cell Cell) {
	v := Classify(cell.Value, cell.Style != nil && cell.Style.IsDate())

	var serial string
	switch v.Kind {
	case CellKindUnrecognized:
		return
	case CellKindDate:
		var ok bool
		if serial, ok = serialDate(v.Time); !ok {
			return
		}
	}

	x.OTag("c").Attr("r", CellReference(row, col))
	x.Attr("s", st.styleIndex(cell.Style))

	switch v.Kind {
	case CellKindString:
		x.Attr("t", "s")
		x.OTag("v").Write(st.sharedStringIndex(v.Text)).CTag()
	case CellKindNumber, CellKindTimestamp:
		x.Attr("t", "n")
		x.OTag("v").RawString(escaped(v.Text)).CTag()
	case CellKindDate:
		x.Attr("t", "n")
		x.OTag("v").RawString(xml.RawString(serial)).CTag()
	case CellKindFormula:
		cached, hasCached := v.Opts["value"]
		if hasCached && !isNumeric(cached) {
			x.Attr("t", "str")
		}
		x.OTag("f").RawString(escaped(strings.TrimPrefix(v.Text, "="))).CTag()
		if hasCached {
			x.OTag("v").RawString(escaped(cached)).CTag()
		}
	}
	x.CTag() // c
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
