package xl

import "strings"

// Number format codes for the two date presets accepted by the input layer.
const (
	FormatDate     = "yyyy-mm-dd"
	FormatDateTime = "yyyy-mm-dd h:mm:ss"
)

// Font represents font formatting properties for cell content. It also
// carries the alignment flags, which end up on the cell format record rather
// than on the font itself.
type Font struct {
	Bold      bool
	Italic    bool
	Underline bool // single underline
	Strike    bool
	Size      int    // points, 0 = use default
	Color     string // "#RRGGBB" or "#AARRGGBB"
	Name      string // font family, e.g. "Arial"

	WrapText        bool
	AlignHorizontal string // ST_HorizontalAlignment, e.g. "center"
	AlignVertical   string // ST_VerticalAlignment, e.g. "top"
}

// IsDefault returns true if the font uses all default properties. A default
// font is treated as no font at all.
func (f Font) IsDefault() bool {
	return f == Font{}
}

func (f Font) hasAlignment() bool {
	return f.WrapText || f.AlignHorizontal != "" || f.AlignVertical != ""
}

// Border is one edge of a cell border.
type Border struct {
	Style string // snake_case line style, e.g. "thin", "dash_dot"
	Color string
}

func (b Border) IsDefault() bool {
	return b == Border{}
}

// BorderStyle describes all edges of a cell border.
type BorderStyle struct {
	Left, Right, Top, Bottom Border
	Diagonal                 Border
	DiagonalUp               bool
	DiagonalDown             bool
}

func (b BorderStyle) IsDefault() bool {
	return b == BorderStyle{}
}

// CellStyle is the complete formatting of a cell. It is a comparable value
// so equal styles share one format record.
type CellStyle struct {
	Font   Font
	Fill   string // background color, empty = no fill
	NumFmt string // number format code, empty = General
	Border BorderStyle
}

// IsDate reports whether the number format renders dates, which decides how
// raw numeric values of the cell are interpreted.
func (s CellStyle) IsDate() bool {
	return strings.Contains(s.NumFmt, "yy")
}

func (s CellStyle) IsDefault() bool {
	return s == CellStyle{}
}

// borderStyleToken maps snake_case line styles ("dash_dot_dot") to the
// camelCase tokens of ST_BorderStyle ("dashDotDot").
func borderStyleToken(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if p := parts[i]; p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}

// argb turns "#RRGGBB" into the opaque "FFRRGGBB" form used by rgb
// attributes. "#AARRGGBB" keeps its alpha.
func argb(color string) string {
	c := strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(c) == 6 {
		return "FF" + c
	}
	return c
}
