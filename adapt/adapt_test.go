package adapt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adnsv/go-xlc/xl"
)

func collect(sh *xl.Sheet) [][]xl.Cell {
	var rows [][]xl.Cell
	for row := range sh.Rows {
		var cells []xl.Cell
		for c := range row {
			cells = append(cells, c)
		}
		rows = append(rows, cells)
	}
	return rows
}

func decodeString(t *testing.T, doc string) *xl.Workbook {
	t.Helper()
	wb, err := DecodeYAML(strings.NewReader(doc))
	require.NoError(t, err)
	return wb
}

func TestDecodeYAML_CompilesScenario(t *testing.T) {
	wb := decodeString(t, `
sheets:
  - name: Sheet1
    rows:
      - [["hello", []], 42]
`)
	require.Len(t, wb.Sheets, 1)

	p, err := xl.Compile(wb)
	require.NoError(t, err)
	ws := string(p.Part("xl/worksheets/sheet1.xml"))
	assert.Contains(t, ws, `<c r="A1" s="0" t="s"><v>0</v></c>`)
	assert.Contains(t, ws, `<c r="B1" s="0" t="n"><v>42</v></c>`)
	assert.Contains(t, string(p.Part("xl/styles.xml")), `<cellXfs count="1">`)
}

func TestDecodeYAML_WorkbookAndSheetFields(t *testing.T) {
	wb := decodeString(t, `
datetime: "2021-04-01T09:15:00Z"
app_name: Reports
language: fr-FR
revision: 7
identifier: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
sheets:
  - name: Summary
    rows:
      - [a, b]
      - []
      - [c]
    col_widths: {1: 20, 3: 12.5}
    row_heights: {2: 30}
    merge_cells: [[A1, B1]]
    pane_freeze: [1, 2]
    show_grid_lines: false
  - name: Other
    rows: []
`)
	assert.Equal(t, "2021-04-01T09:15:00Z", wb.Datetime)
	assert.Equal(t, "Reports", wb.AppName)
	assert.Equal(t, "fr-FR", wb.Language)
	assert.Equal(t, 7, wb.Revision)
	assert.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), wb.Identifier)

	require.Len(t, wb.Sheets, 2)
	sh := wb.Sheets[0]
	assert.Equal(t, "Summary", sh.Name)
	assert.Equal(t, map[int]float64{1: 20, 3: 12.5}, sh.ColWidths)
	assert.Equal(t, map[int]float64{2: 30}, sh.RowHeights)
	assert.Equal(t, []xl.MergeRange{{From: "A1", To: "B1"}}, sh.MergeCells)
	assert.Equal(t, &xl.Pane{Cols: 1, Rows: 2}, sh.PaneFreeze)
	assert.True(t, sh.HideGridLines)

	rows := collect(sh)
	require.Len(t, rows, 3)
	assert.Equal(t, []xl.Cell{xl.NewCell("a"), xl.NewCell("b")}, rows[0])
	assert.Empty(t, rows[1])
	assert.Equal(t, []xl.Cell{xl.NewCell("c")}, rows[2])

	assert.False(t, wb.Sheets[1].HideGridLines)
	assert.Nil(t, wb.Sheets[1].PaneFreeze)
	assert.Empty(t, collect(wb.Sheets[1]))
}

func TestDecode_JSONShapes(t *testing.T) {
	// what encoding/json produces: string keys and float64 numbers
	v := map[string]any{
		"datetime": float64(1700000000),
		"sheets": []any{
			map[string]any{
				"name":        "J",
				"rows":        []any{[]any{float64(1.5), "x"}},
				"col_widths":  map[string]any{"2": float64(10)},
				"pane_freeze": []any{float64(0), float64(1)},
			},
		},
	}
	wb, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-14T22:13:20Z", wb.Datetime)

	sh := wb.Sheets[0]
	assert.Equal(t, map[int]float64{2: 10}, sh.ColWidths)
	assert.Equal(t, &xl.Pane{Cols: 0, Rows: 1}, sh.PaneFreeze)
	assert.Equal(t, [][]xl.Cell{{xl.NewCell(1.5), xl.NewCell("x")}}, collect(sh))
}

func TestDecode_TaggedValues(t *testing.T) {
	wb := decodeString(t, `
sheets:
  - name: Values
    rows:
      - - {formula: "SUM(A2:A3)", opts: {value: 3}}
        - {excelts: "44000.5"}
        - {empty: true}
        - {date: "2020-06-18"}
        - {date: "2020-06-18 12:30:00"}
        - {colour: red}
        - true
        - null
        - []
`)
	row := collect(wb.Sheets[0])[0]
	require.Len(t, row, 9)

	assert.Equal(t, xl.Formula{Expr: "SUM(A2:A3)", Opts: map[string]string{"value": "3"}}, row[0].Value)
	assert.Equal(t, xl.Timestamp("44000.5"), row[1].Value)
	assert.Equal(t, xl.Empty, row[2].Value)
	assert.Equal(t, time.Date(2020, time.June, 18, 0, 0, 0, 0, time.UTC), row[3].Value)
	assert.Equal(t, time.Date(2020, time.June, 18, 12, 30, 0, 0, time.UTC), row[4].Value)

	// unknown shapes are kept and later skipped by the compiler
	assert.Equal(t, map[string]any{"colour": "red"}, row[5].Value)
	assert.Equal(t, true, row[6].Value)
	assert.Nil(t, row[7].Value)
	assert.Nil(t, row[8].Value)
	for _, c := range row[5:] {
		assert.Equal(t, xl.CellKindUnrecognized, xl.Classify(c.Value, false).Kind)
	}
}

func TestDecode_StyleProperties(t *testing.T) {
	wb := decodeString(t, `
sheets:
  - name: Styled
    rows:
      - - [1, {bold: true, italic: true, size: 12, color: "#112233", font: Arial, bg_color: "#FFEEDD", num_format: "0.00", align_horizontal: center, wrap_text: true}]
        - [2, {yyyymmdd: true, num_format: "0.00"}]
        - [3, {datetime: true}]
        - [4, {border: {left: {style: thin, color: "#000000"}, diagonal: {style: dash_dot}, diagonal_up: true}}]
        - [5, {bottom: {style: double}}]
        - [6, null]
`)
	row := collect(wb.Sheets[0])[0]
	require.Len(t, row, 6)

	assert.Equal(t, xl.CellStyle{
		Font: xl.Font{
			Bold: true, Italic: true, Size: 12, Color: "#112233", Name: "Arial",
			AlignHorizontal: "center", WrapText: true,
		},
		Fill:   "#FFEEDD",
		NumFmt: "0.00",
	}, *row[0].Style)
	assert.Equal(t, xl.CellStyle{NumFmt: xl.FormatDate}, *row[1].Style)
	assert.Equal(t, xl.CellStyle{NumFmt: xl.FormatDateTime}, *row[2].Style)
	assert.Equal(t, xl.BorderStyle{
		Left:       xl.Border{Style: "thin", Color: "#000000"},
		Diagonal:   xl.Border{Style: "dash_dot"},
		DiagonalUp: true,
	}, row[3].Style.Border)
	assert.Equal(t, xl.BorderStyle{Bottom: xl.Border{Style: "double"}}, row[4].Style.Border)
	require.NotNil(t, row[5].Style)
	assert.True(t, row[5].Style.IsDefault())
	assert.Equal(t, 6, row[5].Value)
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		want  DecodeError
		cause error
	}{
		{
			name:  "missing sheets",
			doc:   `app_name: x`,
			want:  DecodeError{Field: "sheets"},
			cause: ErrMissingField,
		},
		{
			name:  "sheets not a list",
			doc:   `sheets: 3`,
			want:  DecodeError{Field: "sheets"},
			cause: ErrWrongType,
		},
		{
			name: "sheet without name",
			doc: `
sheets:
  - {name: A, rows: []}
  - {rows: []}
`,
			want:  DecodeError{Sheet: 2, Field: "name"},
			cause: ErrMissingField,
		},
		{
			name:  "sheet without rows",
			doc:   `sheets: [{name: A}]`,
			want:  DecodeError{Sheet: 1, Field: "rows"},
			cause: ErrMissingField,
		},
		{
			name: "row is not a list",
			doc: `
sheets:
  - {name: A, rows: [[1], 7]}
`,
			want:  DecodeError{Sheet: 1, Row: 2, Field: "row"},
			cause: ErrWrongType,
		},
		{
			name: "cell list too long",
			doc: `
sheets:
  - {name: A, rows: [[], [1, 2, [3, {}, x]]]}
`,
			want:  DecodeError{Sheet: 1, Row: 2, Col: 3, Field: "cell"},
			cause: ErrWrongType,
		},
		{
			name: "properties not a map",
			doc: `
sheets:
  - {name: A, rows: [[[1, 2]]]}
`,
			want:  DecodeError{Sheet: 1, Row: 1, Col: 1, Field: "properties"},
			cause: ErrWrongType,
		},
		{
			name: "bold not a bool",
			doc: `
sheets:
  - {name: A, rows: [[[1, {bold: "yes"}]]]}
`,
			want:  DecodeError{Sheet: 1, Row: 1, Col: 1, Field: "bold"},
			cause: ErrWrongType,
		},
		{
			name: "border side not a map",
			doc: `
sheets:
  - {name: A, rows: [[[1, {border: {top: thin}}]]]}
`,
			want:  DecodeError{Sheet: 1, Row: 1, Col: 1, Field: "top"},
			cause: ErrWrongType,
		},
		{
			name: "pane freeze not a pair",
			doc: `
sheets:
  - {name: A, rows: [], pane_freeze: [1]}
`,
			want:  DecodeError{Sheet: 1, Field: "pane_freeze"},
			cause: ErrWrongType,
		},
		{
			name: "show grid lines not a bool",
			doc: `
sheets:
  - {name: A, rows: [], show_grid_lines: "no"}
`,
			want:  DecodeError{Sheet: 1, Field: "show_grid_lines"},
			cause: ErrWrongType,
		},
		{
			name: "col widths with text keys",
			doc: `
sheets:
  - {name: A, rows: [], col_widths: {B: 10}}
`,
			want:  DecodeError{Sheet: 1, Field: "col_widths"},
			cause: ErrWrongType,
		},
		{
			name: "revision not an integer",
			doc: `
revision: first
sheets: []
`,
			want:  DecodeError{Field: "revision"},
			cause: ErrWrongType,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.cause)

			var de *DecodeError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tc.want.Sheet, de.Sheet)
			assert.Equal(t, tc.want.Row, de.Row)
			assert.Equal(t, tc.want.Col, de.Col)
			assert.Equal(t, tc.want.Field, de.Field)
		})
	}
}

func TestDecode_InvalidIdentifier(t *testing.T) {
	_, err := Decode(map[string]any{"sheets": []any{}, "identifier": "not-a-uuid"})
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "identifier", de.Field)
}

func TestDecode_NotAMap(t *testing.T) {
	_, err := Decode([]any{1, 2})
	assert.ErrorIs(t, err, ErrWrongType)
	assert.EqualError(t, err, `decode workbook: field "workbook": wrong type: want map, got []interface {}`)
}

func TestDecodeError_Message(t *testing.T) {
	err := pos{sheet: 1, row: 2, col: 3}.missing("name")
	assert.EqualError(t, err, `decode workbook: sheet 1, row 2, col 3: field "name": missing field`)
}

func TestDecodeYAML_Malformed(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("sheets: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode workbook")
}
