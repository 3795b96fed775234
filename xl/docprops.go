package xl

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/adnsv/srw/xml"
	"github.com/google/uuid"
)

const (
	DefaultAppName  = "go-xlc"
	DefaultLanguage = "en-US"
	appVersion      = "1.00"
)

var ErrInvalidDatetime = errors.New("invalid workbook datetime")

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// coreTimestamp normalizes the workbook datetime to the W3CDTF form used by
// core.xml. Values without a zone are taken as UTC; an empty value means now.
func coreTimestamp(s string, now func() time.Time) (string, error) {
	if s == "" {
		return now().UTC().Format(time.RFC3339), nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDatetime, s)
}

func appPropsPart(wb *Workbook) []byte {
	appname := wb.AppName
	if appname == "" {
		appname = DefaultAppName
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Properties")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
	x.Attr("xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")

	x.OTag("+TotalTime").Write(0).CTag()
	x.OTag("+Application").RawString(escaped(appname)).CTag()
	x.OTag("+AppVersion").String(appVersion).CTag()

	x.CTag()

	return bb.Bytes()
}

func corePropsPart(wb *Workbook, created string) []byte {
	language := wb.Language
	if language == "" {
		language = DefaultLanguage
	}
	revision := wb.Revision
	if revision <= 0 {
		revision = 1
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("cp:coreProperties")
	x.Attr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	x.Attr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	x.Attr("xmlns:dcterms", "http://purl.org/dc/terms/")
	x.Attr("xmlns:dcmitype", "http://purl.org/dc/dcmitype/")
	x.Attr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	x.OTag("+dcterms:created")
	x.Attr("xsi:type", "dcterms:W3CDTF")
	x.Write(created)
	x.CTag()

	if wb.Identifier != uuid.Nil {
		x.OTag("+dc:identifier").String(wb.Identifier.URN()).CTag()
	}

	x.OTag("+dc:language").RawString(escaped(language)).CTag()

	x.OTag("+dcterms:modified")
	x.Attr("xsi:type", "dcterms:W3CDTF")
	x.Write(created)
	x.CTag()

	x.OTag("+cp:revision").Write(revision).CTag()

	x.CTag()

	return bb.Bytes()
}
