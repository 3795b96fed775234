package xl

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"
)

var ErrNoSheets = errors.New("workbook has no sheets")

// Package is a compiled workbook: every part of the xlsx container keyed by
// its path inside the archive.
type Package struct {
	parts map[string][]byte
	order []string
}

func (p *Package) add(path string, blob []byte) {
	p.parts[path] = blob
	p.order = append(p.order, path)
}

// Paths lists the part names in archive order.
func (p *Package) Paths() []string {
	return append([]string(nil), p.order...)
}

// Part returns the content of one part, or nil.
func (p *Package) Part(path string) []byte {
	return p.parts[path]
}

// WriteTo hands every part to s in archive order. Storage errors are
// returned unchanged.
func (p *Package) WriteTo(s Storage) error {
	for _, path := range p.order {
		if err := s.WriteBlob(path, p.parts[path]); err != nil {
			return err
		}
	}
	return nil
}

// Compile turns wb into a package. Worksheets are compiled first, in order;
// only then are the styles, shared strings, manifests and properties
// generated, since they read the final contents of the interning tables.
func Compile(wb *Workbook) (*Package, error) {
	return compile(wb, time.Now)
}

func compile(wb *Workbook, now func() time.Time) (*Package, error) {
	if len(wb.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	if err := wb.validate(); err != nil {
		return nil, err
	}
	created, err := coreTimestamp(wb.Datetime, now)
	if err != nil {
		return nil, err
	}

	st := newCompilationState(len(wb.Sheets))

	sheets := make([][]byte, len(wb.Sheets))
	for i, sh := range wb.Sheets {
		bb := bytes.Buffer{}
		st.compileSheet(&bb, sh)
		sheets[i] = bb.Bytes()
	}

	// st is frozen from here on.
	p := &Package{parts: map[string][]byte{}}
	p.add("[Content_Types].xml", st.contentTypesPart())
	p.add("_rels/.rels", relsPart(packageRels))
	p.add("docProps/app.xml", appPropsPart(wb))
	p.add("docProps/core.xml", corePropsPart(wb, created))
	p.add("xl/workbook.xml", st.workbookPart(wb))
	p.add("xl/_rels/workbook.xml.rels", relsPart(st.workbookRels()))
	p.add("xl/styles.xml", st.stylesPart())
	p.add("xl/sharedStrings.xml", st.sharedStringsPart())
	for i, info := range st.Sheets {
		p.add("xl/worksheets/"+info.Filename, sheets[i])
	}
	return p, nil
}

// Writer compiles workbooks into a Storage.
type Writer struct {
	out Storage
}

func NewWriter(s Storage) *Writer {
	return &Writer{out: s}
}

// Write compiles wb and stores all of its parts. Nothing is stored when
// compilation fails.
func (w *Writer) Write(wb *Workbook) error {
	p, err := Compile(wb)
	if err != nil {
		return err
	}
	return p.WriteTo(w.out)
}

// Encode writes wb as a zipped xlsx document to out.
func Encode(out io.Writer, wb *Workbook) error {
	zs := NewZipStorage(out)
	if err := NewWriter(zs).Write(wb); err != nil {
		return err
	}
	return zs.Close()
}

// WriteFile compiles wb and stores it as the named xlsx file. The file is
// written next to its final location and renamed into place, so a failed
// compilation or write leaves any existing file untouched.
func WriteFile(name string, wb *Workbook) error {
	p, err := Compile(wb)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	fail := func(err error) error {
		f.Close()
		os.Remove(tmp)
		return err
	}

	zs := NewZipStorage(f)
	if err := p.WriteTo(zs); err != nil {
		return fail(err)
	}
	if err := zs.Close(); err != nil {
		return fail(err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, name); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
