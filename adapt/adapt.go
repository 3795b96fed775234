// Package adapt turns loosely typed workbook descriptions, as produced by
// JSON or YAML decoders, into xl.Workbook values.
package adapt

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/adnsv/go-xlc/xl"
)

// DecodeYAML reads one YAML (or JSON) document describing a workbook.
func DecodeYAML(r io.Reader) (*xl.Workbook, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}
	return Decode(v)
}

// Decode converts a generic value into a workbook. Malformed required fields
// fail with a *DecodeError; cell values of unknown shape are kept as they are
// and skipped by the compiler.
func Decode(v any) (*xl.Workbook, error) {
	var at pos
	m, ok := asMap(v)
	if !ok {
		return nil, at.wrongType("workbook", "map", v)
	}

	wb := &xl.Workbook{}

	raw, ok := m["sheets"]
	if !ok {
		return nil, at.missing("sheets")
	}
	sheets, ok := asList(raw)
	if !ok {
		return nil, at.wrongType("sheets", "list", raw)
	}
	for i, s := range sheets {
		sh, err := decodeSheet(s, pos{sheet: i + 1})
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, sh)
	}

	if dt, ok := m["datetime"]; ok && dt != nil {
		switch dt := dt.(type) {
		case string:
			wb.Datetime = dt
		case time.Time:
			wb.SetCreated(dt)
		default:
			secs, ok := asInt(dt)
			if !ok {
				return nil, at.wrongType("datetime", "string or epoch seconds", dt)
			}
			wb.SetCreated(time.Unix(int64(secs), 0))
		}
	}

	var err error
	if wb.AppName, err = optString(m, "app_name", at); err != nil {
		return nil, err
	}
	if wb.Language, err = optString(m, "language", at); err != nil {
		return nil, err
	}
	if rev, ok := m["revision"]; ok && rev != nil {
		if wb.Revision, ok = asInt(rev); !ok {
			return nil, at.wrongType("revision", "integer", rev)
		}
	}
	id, err := optString(m, "identifier", at)
	if err != nil {
		return nil, err
	}
	if id != "" {
		if wb.Identifier, err = uuid.Parse(id); err != nil {
			return nil, at.fail("identifier", err)
		}
	}

	return wb, nil
}

func decodeSheet(v any, at pos) (*xl.Sheet, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, at.wrongType("sheet", "map", v)
	}

	name, ok := m["name"]
	if !ok {
		return nil, at.missing("name")
	}
	sh := xl.NewSheet("")
	if sh.Name, ok = name.(string); !ok {
		return nil, at.wrongType("name", "string", name)
	}

	raw, ok := m["rows"]
	if !ok {
		return nil, at.missing("rows")
	}
	rows, ok := asList(raw)
	if !ok {
		return nil, at.wrongType("rows", "list", raw)
	}
	cells := make([][]xl.Cell, 0, len(rows))
	for r, row := range rows {
		at := at
		at.row = r + 1
		li, ok := asList(row)
		if !ok && row != nil {
			return nil, at.wrongType("row", "list", row)
		}
		decoded := make([]xl.Cell, 0, len(li))
		for c, cell := range li {
			at.col = c + 1
			dc, err := decodeCell(cell, at)
			if err != nil {
				return nil, err
			}
			decoded = append(decoded, dc)
		}
		cells = append(cells, decoded)
	}
	sh.Rows = xl.RowsOf(cells)

	if err := decodeSizes(m, "col_widths", at, sh.SetColumnWidth); err != nil {
		return nil, err
	}
	if err := decodeSizes(m, "row_heights", at, sh.SetRowHeight); err != nil {
		return nil, err
	}

	if raw, ok := m["merge_cells"]; ok && raw != nil {
		li, ok := asList(raw)
		if !ok {
			return nil, at.wrongType("merge_cells", "list", raw)
		}
		for _, item := range li {
			pair, ok := asList(item)
			if !ok || len(pair) != 2 {
				return nil, at.wrongType("merge_cells", "pair of references", item)
			}
			from, ok1 := pair[0].(string)
			to, ok2 := pair[1].(string)
			if !ok1 || !ok2 {
				return nil, at.wrongType("merge_cells", "pair of references", item)
			}
			sh.Merge(from, to)
		}
	}

	if raw, ok := m["pane_freeze"]; ok && raw != nil {
		pair, ok := asList(raw)
		if !ok || len(pair) != 2 {
			return nil, at.wrongType("pane_freeze", "pair of integers", raw)
		}
		cols, ok1 := asInt(pair[0])
		rows, ok2 := asInt(pair[1])
		if !ok1 || !ok2 {
			return nil, at.wrongType("pane_freeze", "pair of integers", raw)
		}
		sh.FreezePanes(cols, rows)
	}

	if raw, ok := m["show_grid_lines"]; ok && raw != nil {
		show, ok := raw.(bool)
		if !ok {
			return nil, at.wrongType("show_grid_lines", "bool", raw)
		}
		sh.HideGridLines = !show
	}

	return sh, nil
}

func decodeSizes(m map[string]any, field string, at pos, set func(int, float64)) error {
	raw, ok := m[field]
	if !ok || raw == nil {
		return nil
	}
	sizes, ok := intKeyed(raw)
	if !ok {
		return at.wrongType(field, "map of integer keys", raw)
	}
	for k, v := range sizes {
		f, ok := asFloat(v)
		if !ok {
			return at.wrongType(field, "number", v)
		}
		set(k, f)
	}
	return nil
}

func optString(m map[string]any, field string, at pos) (string, error) {
	v, ok := m[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", at.wrongType(field, "string", v)
	}
	return s, nil
}
