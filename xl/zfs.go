package xl

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage receives the parts of a compiled package, one call per part, in
// archive order. Paths are relative to the package root.
type Storage interface {
	WriteBlob(path string, blob []byte) error
}

// zipModTime is stamped on every entry so equal workbooks produce equal archives.
var zipModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// ZipStorage packs parts into an xlsx container.
type ZipStorage struct {
	z *zip.Writer
}

// NewZipStorage starts an archive on out. Close must be called once every
// part is written.
func NewZipStorage(out io.Writer) *ZipStorage {
	return &ZipStorage{z: zip.NewWriter(out)}
}

func (zs *ZipStorage) WriteBlob(path string, blob []byte) error {
	w, err := zs.z.CreateHeader(&zip.FileHeader{
		Name:     partName(path),
		Method:   zip.Deflate,
		Modified: zipModTime,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(blob)
	return err
}

// Close writes the central directory. The underlying writer stays open.
func (zs *ZipStorage) Close() error {
	return zs.z.Close()
}

// DirStorage lays the parts out as plain files under Dir, which is handy for
// looking at the generated XML.
type DirStorage struct {
	Dir string
}

func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{Dir: dir}
}

func (ds *DirStorage) WriteBlob(path string, blob []byte) error {
	fn := filepath.Join(ds.Dir, filepath.FromSlash(partName(path)))
	if err := os.MkdirAll(filepath.Dir(fn), 0o777); err != nil {
		return err
	}
	return os.WriteFile(fn, blob, 0o666)
}

// MemStorage keeps parts in memory, keyed by path.
type MemStorage map[string][]byte

func (ms MemStorage) WriteBlob(path string, blob []byte) error {
	ms[partName(path)] = blob
	return nil
}

func partName(path string) string {
	return strings.TrimPrefix(path, "/")
}
