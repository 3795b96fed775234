package xl

import (
	"bytes"

	"github.com/adnsv/srw/xml"
)

// stylesPart renders xl/styles.xml from the frozen tables. Elements are in
// CT_Stylesheet order; every list starts with its reserved slots.
func (st *CompilationState) stylesPart() []byte {
	bb := bytes.Buffer{}
	x := newPartWriter(&bb)

	x.OTag("styleSheet").Attr("xmlns", nsMain)

	if st.NumFmts.Len() > 0 {
		x.OTag("numFmts").Attr("count", st.NumFmts.Len())
		for _, e := range st.NumFmts.Entries() {
			x.OTag("numFmt")
			x.Attr("numFmtId", st.numFmtID(e.Value))
			x.RawAttr("formatCode", escaped(e.Value))
			x.CTag()
		}
		x.CTag()
	}

	x.OTag("fonts").Attr("count", reservedFonts+st.Fonts.Len())
	x.OTag("font").CTag()
	for _, e := range st.Fonts.Entries() {
		writeFont(x, e.Value)
	}
	x.CTag()

	x.OTag("fills").Attr("count", reservedFills+st.Fills.Len())
	x.OTag("fill").OTag("patternFill").Attr("patternType", "none").CTag().CTag()
	x.OTag("fill").OTag("patternFill").Attr("patternType", "gray125").CTag().CTag()
	for _, e := range st.Fills.Entries() {
		x.OTag("fill").OTag("patternFill").Attr("patternType", "solid")
		x.OTag("fgColor").RawAttr("rgb", escaped(argb(e.Value))).CTag()
		x.CTag().CTag()
	}
	x.CTag()

	x.OTag("borders").Attr("count", reservedBorders+st.Borders.Len())
	writeBorderStyle(x, BorderStyle{})
	for _, e := range st.Borders.Entries() {
		writeBorderStyle(x, e.Value)
	}
	x.CTag()

	x.OTag("cellStyleXfs").Attr("count", 1)
	x.OTag("xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).CTag()
	x.CTag()

	x.OTag("cellXfs").Attr("count", reservedXfs+st.Styles.Len())
	x.OTag("xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).Attr("xfId", 0).CTag()
	for _, e := range st.Styles.Entries() {
		st.writeCellFormat(x, e.Value)
	}
	x.CTag()

	x.OTag("cellStyles").Attr("count", 1)
	x.OTag("cellStyle").Attr("name", "Normal").Attr("xfId", 0).Attr("builtinId", 0).CTag()
	x.CTag()

	x.CTag() // styleSheet

	return bb.Bytes()
}

func (st *CompilationState) writeCellFormat(x *xml.Writer, s CellStyle) {
	numFmt := st.numFmtID(s.NumFmt)
	font := st.fontIndex(s.Font)
	fill := st.fillIndex(s.Fill)
	border := st.borderIndex(s.Border)

	x.OTag("xf")
	x.Attr("numFmtId", numFmt).Attr("fontId", font).Attr("fillId", fill).Attr("borderId", border)
	x.Attr("xfId", 0)
	if numFmt != 0 {
		x.RawAttr("applyNumberFormat", flag(true))
	}
	if font != 0 {
		x.RawAttr("applyFont", flag(true))
	}
	if fill != 0 {
		x.RawAttr("applyFill", flag(true))
	}
	if border != 0 {
		x.RawAttr("applyBorder", flag(true))
	}
	if f := s.Font; f.hasAlignment() {
		x.RawAttr("applyAlignment", flag(true))
		x.OTag("alignment")
		if f.WrapText {
			x.RawAttr("wrapText", flag(true))
		}
		if f.AlignHorizontal != "" {
			x.RawAttr("horizontal", escaped(f.AlignHorizontal))
		}
		if f.AlignVertical != "" {
			x.RawAttr("vertical", escaped(f.AlignVertical))
		}
		x.CTag()
	}
	x.CTag() // xf
}

func writeFont(x *xml.Writer, f Font) {
	x.OTag("font")
	if f.Bold {
		x.OTag("b").RawAttr("val", flag(true)).CTag()
	}
	if f.Italic {
		x.OTag("i").RawAttr("val", flag(true)).CTag()
	}
	if f.Strike {
		x.OTag("strike").RawAttr("val", flag(true)).CTag()
	}
	if f.Underline {
		x.OTag("u").Attr("val", "single").CTag()
	}
	if f.Size > 0 {
		x.OTag("sz").Attr("val", f.Size).CTag()
	}
	if f.Color != "" {
		x.OTag("color").RawAttr("rgb", escaped(argb(f.Color))).CTag()
	}
	if f.Name != "" {
		x.OTag("name").RawAttr("val", escaped(f.Name)).CTag()
	}
	x.CTag()
}

func writeBorderStyle(x *xml.Writer, b BorderStyle) {
	x.OTag("border")
	if b.DiagonalUp {
		x.RawAttr("diagonalUp", flag(true))
	}
	if b.DiagonalDown {
		x.RawAttr("diagonalDown", flag(true))
	}
	writeBorder(x, "left", b.Left)
	writeBorder(x, "right", b.Right)
	writeBorder(x, "top", b.Top)
	writeBorder(x, "bottom", b.Bottom)
	if b.DiagonalUp || b.DiagonalDown {
		writeBorder(x, "diagonal", b.Diagonal)
	} else {
		x.OTag("diagonal").CTag()
	}
	x.CTag()
}

func writeBorder(x *xml.Writer, side string, b Border) {
	x.OTag(side)
	if b.Style != "" {
		x.RawAttr("style", escaped(borderStyleToken(b.Style)))
	}
	if b.Color != "" {
		x.OTag("color").RawAttr("rgb", escaped(argb(b.Color))).CTag()
	}
	x.CTag()
}
