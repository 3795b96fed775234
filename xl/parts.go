package xl

import (
	"bytes"
	"fmt"

	"github.com/adnsv/srw/xml"
)

const (
	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	ctCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtendedProps = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	relSharedStrings  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
)

// newPartWriter starts a compact part. Text from the workbook goes through
// escaped and RawString/RawAttr so it is escaped once, by Escape.
func newPartWriter(bb *bytes.Buffer) *xml.Writer {
	x := xml.NewWriter(bb, xml.WriterConfig{Indent: xml.IndentNone})
	x.XmlStandaloneDecl()
	return x
}

func escaped(s string) xml.RawString {
	return xml.RawString(Escape(s))
}

// flag renders an xsd:boolean the way spreadsheet applications write it.
func flag(b bool) xml.RawString {
	if b {
		return "1"
	}
	return "0"
}

// RelInfo is one entry of a relationships part.
type RelInfo struct {
	ID     string
	Type   string // url to schema type
	Target string // relative path
}

// sharedStringsPart lists the interned strings in id order, which is the
// order of first use.
func (st *CompilationState) sharedStringsPart() []byte {
	bb := bytes.Buffer{}
	x := newPartWriter(&bb)

	n := st.Strings.Len()
	x.OTag("sst")
	x.Attr("xmlns", nsMain)
	x.Attr("count", n)
	x.Attr("uniqueCount", n)
	for _, e := range st.Strings.Entries() {
		x.OTag("si")
		x.OTag("t")
		if needsSpacePreserve(e.Value) {
			x.Attr("xml:space", "preserve")
		}
		x.RawString(escaped(e.Value)).CTag()
		x.CTag()
	}
	x.CTag()

	return bb.Bytes()
}

func needsSpacePreserve(s string) bool {
	if s == "" {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return first == ' ' || first == '\t' || first == '\n' || last == ' ' || last == '\t' || last == '\n'
}

func (st *CompilationState) workbookPart(wb *Workbook) []byte {
	bb := bytes.Buffer{}
	x := newPartWriter(&bb)

	x.OTag("workbook")
	x.Attr("xmlns", nsMain)
	x.Attr("xmlns:r", nsRelationships)

	x.OTag("bookViews")
	x.OTag("workbookView").Attr("activeTab", 0).CTag()
	x.CTag()

	x.OTag("sheets")
	for i, sheet := range wb.Sheets {
		info := st.Sheets[i]
		x.OTag("sheet")
		x.RawAttr("name", escaped(sheet.Name))
		x.Attr("sheetId", info.SheetID)
		x.Attr("state", "visible")
		x.Attr("r:id", info.RID)
		x.CTag()
	}
	x.CTag()

	x.OTag("calcPr")
	x.RawAttr("fullCalcOnLoad", flag(true)).Attr("iterateCount", 100).Attr("refMode", "A1")
	x.RawAttr("iterate", flag(false)).Attr("iterateDelta", 0.001)
	x.CTag()

	x.CTag()

	return bb.Bytes()
}

func (st *CompilationState) workbookRels() []RelInfo {
	rels := []RelInfo{{ID: "rId1", Type: relStyles, Target: "styles.xml"}}
	for _, info := range st.Sheets {
		rels = append(rels, RelInfo{ID: info.RID, Type: relWorksheet, Target: "worksheets/" + info.Filename})
	}
	rels = append(rels, RelInfo{
		ID:     fmt.Sprintf("rId%d", st.NextFreeRID),
		Type:   relSharedStrings,
		Target: "sharedStrings.xml",
	})
	return rels
}

var packageRels = []RelInfo{
	{ID: "rId1", Type: relOfficeDocument, Target: "xl/workbook.xml"},
	{ID: "rId2", Type: relCoreProps, Target: "docProps/core.xml"},
	{ID: "rId3", Type: relExtendedProps, Target: "docProps/app.xml"},
}

func relsPart(rels []RelInfo) []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Relationships")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	for _, rel := range rels {
		x.OTag("+Relationship").Attr("Id", rel.ID).Attr("Type", rel.Type).Attr("Target", rel.Target)
		x.CTag()
	}
	x.CTag()

	return bb.Bytes()
}

func (st *CompilationState) contentTypesPart() []byte {
	defaults := map[string]string{
		"xml":  "application/xml",
		"rels": ctRelationships,
	}
	type override struct{ part, ctype string }
	overrides := []override{
		{"/xl/workbook.xml", ctWorkbook},
		{"/xl/styles.xml", ctStyles},
		{"/docProps/app.xml", ctExtendedProps},
		{"/docProps/core.xml", ctCoreProps},
	}
	for _, info := range st.Sheets {
		overrides = append(overrides, override{"/xl/worksheets/" + info.Filename, ctWorksheet})
	}
	overrides = append(overrides, override{"/xl/sharedStrings.xml", ctSharedStrings})

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})

	x.XmlStandaloneDecl()
	x.OTag("Types")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")
	enumerate(defaults, func(ext, ctype string) {
		x.OTag("+Default").Attr("Extension", ext).Attr("ContentType", ctype).CTag()
	})
	for _, o := range overrides {
		x.OTag("+Override").Attr("PartName", o.part).Attr("ContentType", o.ctype).CTag()
	}
	x.CTag()

	return bb.Bytes()
}
