package adapt

import (
	"time"

	"github.com/adnsv/go-xlc/xl"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// decodeCell accepts a bare value, or a list holding the value followed by
// an optional map of style properties.
func decodeCell(v any, at pos) (xl.Cell, error) {
	li, ok := asList(v)
	if !ok {
		return xl.NewCell(decodeValue(v)), nil
	}
	if len(li) == 0 {
		return xl.Cell{}, nil
	}
	if len(li) > 2 {
		return xl.Cell{}, at.wrongType("cell", "[value, properties]", v)
	}

	cell := xl.NewCell(decodeValue(li[0]))
	var props map[string]any
	if len(li) == 2 {
		switch p := li[1].(type) {
		case nil:
		case []any:
			if len(p) > 0 {
				return xl.Cell{}, at.wrongType("properties", "map", p)
			}
		default:
			if props, ok = asMap(p); !ok {
				return xl.Cell{}, at.wrongType("properties", "map", p)
			}
		}
	}
	st, err := decodeStyle(props, at)
	if err != nil {
		return xl.Cell{}, err
	}
	return cell.WithStyle(st), nil
}

// decodeValue maps tagged forms to the raw value types of xl. Anything else
// is passed through for the classifier to accept or skip.
func decodeValue(v any) any {
	m, ok := asMap(v)
	if !ok {
		return v
	}
	if expr, ok := m["formula"]; ok {
		s, ok := expr.(string)
		if !ok {
			return v
		}
		f := xl.Formula{Expr: s, Opts: map[string]string{}}
		if opts, ok := asMap(m["opts"]); ok {
			for k, o := range opts {
				if t, ok := text(o); ok {
					f.Opts[k] = t
				}
			}
		}
		return f
	}
	if ts, ok := m["excelts"]; ok {
		if t, ok := text(ts); ok {
			return xl.Timestamp(t)
		}
		return v
	}
	if e, ok := m["empty"]; ok {
		if b, _ := e.(bool); b {
			return xl.Empty
		}
		return v
	}
	if d, ok := m["date"]; ok {
		switch d := d.(type) {
		case time.Time:
			return d
		case string:
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, d); err == nil {
					return t
				}
			}
		}
	}
	return v
}

func decodeStyle(props map[string]any, at pos) (xl.CellStyle, error) {
	var st xl.CellStyle
	d := styleDecoder{props: props, at: at}

	f := &st.Font
	d.flag("bold", &f.Bold)
	d.flag("italic", &f.Italic)
	d.flag("underline", &f.Underline)
	d.flag("strike", &f.Strike)
	d.flag("wrap_text", &f.WrapText)
	d.integer("size", &f.Size)
	d.str("color", &f.Color)
	d.str("font", &f.Name)
	d.str("align_horizontal", &f.AlignHorizontal)
	d.str("align_vertical", &f.AlignVertical)

	d.str("bg_color", &st.Fill)

	var dateOnly, dateTime bool
	d.flag("yyyymmdd", &dateOnly)
	d.flag("datetime", &dateTime)
	switch {
	case dateOnly:
		st.NumFmt = xl.FormatDate
	case dateTime:
		st.NumFmt = xl.FormatDateTime
	default:
		d.str("num_format", &st.NumFmt)
	}

	// border sides may be nested under "border" or given at the top level
	bd := d
	if raw, ok := props["border"]; ok && raw != nil {
		m, ok := asMap(raw)
		if !ok {
			return st, at.wrongType("border", "map", raw)
		}
		bd = styleDecoder{props: m, at: at}
	}
	b := &st.Border
	bd.border("left", &b.Left)
	bd.border("right", &b.Right)
	bd.border("top", &b.Top)
	bd.border("bottom", &b.Bottom)
	bd.border("diagonal", &b.Diagonal)
	bd.flag("diagonal_up", &b.DiagonalUp)
	bd.flag("diagonal_down", &b.DiagonalDown)

	if d.err != nil {
		return st, d.err
	}
	return st, bd.err
}

// styleDecoder reads optional properties, keeping the first error.
type styleDecoder struct {
	props map[string]any
	at    pos
	err   error
}

func (d *styleDecoder) get(key string) (any, bool) {
	if d.err != nil {
		return nil, false
	}
	v, ok := d.props[key]
	return v, ok && v != nil
}

func (d *styleDecoder) flag(key string, dst *bool) {
	if v, ok := d.get(key); ok {
		b, isBool := v.(bool)
		if !isBool {
			d.err = d.at.wrongType(key, "bool", v)
			return
		}
		*dst = b
	}
}

func (d *styleDecoder) integer(key string, dst *int) {
	if v, ok := d.get(key); ok {
		n, isInt := asInt(v)
		if !isInt {
			d.err = d.at.wrongType(key, "integer", v)
			return
		}
		*dst = n
	}
}

func (d *styleDecoder) str(key string, dst *string) {
	if v, ok := d.get(key); ok {
		s, isStr := v.(string)
		if !isStr {
			d.err = d.at.wrongType(key, "string", v)
			return
		}
		*dst = s
	}
}

func (d *styleDecoder) border(key string, dst *xl.Border) {
	v, ok := d.get(key)
	if !ok {
		return
	}
	m, isMap := asMap(v)
	if !isMap {
		d.err = d.at.wrongType(key, "map", v)
		return
	}
	side := styleDecoder{props: m, at: d.at}
	side.str("style", &dst.Style)
	side.str("color", &dst.Color)
	d.err = side.err
}
