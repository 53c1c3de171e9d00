package convert

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path"
	"strings"

	"artboard-wallpaper/internal/utils"
)

var ErrEntryNotFound = errors.New("entry not found in package")

// maxPkgString bounds names read from a package header.
const maxPkgString = 4096

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Pkg is an opened Wallpaper Engine scene package. Entries are read on
// demand without extracting the archive.
type Pkg struct {
	Version string
	Entries []FileEntry

	r         io.ReaderAt
	closer    io.Closer
	dataStart int64
}

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > maxPkgString {
		return "", fmt.Errorf("package string of %d bytes", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// countingReader tracks how far the header parse has advanced.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ReadPkg parses the package index from r.
func ReadPkg(r io.ReaderAt, size int64) (*Pkg, error) {
	cr := &countingReader{r: io.NewSectionReader(r, 0, size)}

	version, err := readPkgString(cr)
	if err != nil {
		return nil, fmt.Errorf("read package version: %w", err)
	}
	utils.Debug("Unpacker: Package Version: %s", version)

	var fileCount uint32
	if err := binary.Read(cr, binary.LittleEndian, &fileCount); err != nil {
		return nil, fmt.Errorf("read file count: %w", err)
	}
	utils.Debug("Unpacker: File Count: %d", fileCount)

	entries := make([]FileEntry, 0, min(fileCount, 1<<16))
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(cr)
		if err != nil {
			return nil, fmt.Errorf("read entry %d name: %w", i, err)
		}
		var offset, length uint32
		if err := binary.Read(cr, binary.LittleEndian, &offset); err != nil {
			return nil, fmt.Errorf("read entry %s offset: %w", name, err)
		}
		if err := binary.Read(cr, binary.LittleEndian, &length); err != nil {
			return nil, fmt.Errorf("read entry %s size: %w", name, err)
		}
		entries = append(entries, FileEntry{Name: name, Offset: offset, Size: length})
	}

	p := &Pkg{Version: version, Entries: entries, r: r, dataStart: cr.n}
	for _, e := range entries {
		if p.dataStart+int64(e.Offset)+int64(e.Size) > size {
			return nil, fmt.Errorf("entry %s runs past the end of the package", e.Name)
		}
	}
	return p, nil
}

func OpenPkg(pkgPath string) (*Pkg, error) {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	p, err := ReadPkg(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", pkgPath, err)
	}
	p.closer = f
	return p, nil
}

func (p *Pkg) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// Find looks an entry up by name. Without a directory the name matches the
// base name of any entry, with or without its extension.
func (p *Pkg) Find(name string) (FileEntry, bool) {
	for _, e := range p.Entries {
		if e.Name == name {
			return e, true
		}
	}
	if strings.Contains(name, "/") {
		return FileEntry{}, false
	}
	for _, e := range p.Entries {
		base := path.Base(e.Name)
		if base == name || strings.TrimSuffix(base, path.Ext(base)) == name {
			return e, true
		}
	}
	return FileEntry{}, false
}

// ReadEntry returns the contents of one entry.
func (p *Pkg) ReadEntry(name string) ([]byte, FileEntry, error) {
	e, ok := p.Find(name)
	if !ok {
		return nil, FileEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	buf := make([]byte, e.Size)
	if _, err := p.r.ReadAt(buf, p.dataStart+int64(e.Offset)); err != nil {
		return nil, e, fmt.Errorf("read %s: %w", e.Name, err)
	}
	return buf, e, nil
}

// LoadPkgImage decodes an image entry from a package file.
func LoadPkgImage(pkgPath, name string) (image.Image, error) {
	p, err := OpenPkg(pkgPath)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	data, e, err := p.ReadEntry(name)
	if err != nil {
		return nil, err
	}
	return DecodeImage(e.Name, data)
}
