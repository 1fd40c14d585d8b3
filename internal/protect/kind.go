// Package protect reads and removes the editing-restriction marker of OOXML
// packages.
package protect

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yeka/zip"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindZIP
	KindOLE
)

var (
	ErrNotZip           = errors.New("not an OOXML (ZIP) package")
	ErrEncryptedPackage = errors.New("document is an OLE compound file (encrypted package), not supported")

	zipMagic = []byte{'P', 'K', 0x03, 0x04}
	oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
)

func (k Kind) String() string {
	switch k {
	case KindZIP:
		return "ZIP"
	case KindOLE:
		return "OLE"
	default:
		return "unknown"
	}
}

// DetectKind inspects the leading magic bytes of a document.
func DetectKind(head []byte) Kind {
	switch {
	case bytes.HasPrefix(head, zipMagic):
		return KindZIP
	case bytes.HasPrefix(head, oleMagic):
		return KindOLE
	}
	return KindUnknown
}

func openPackage(path string) (*zip.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	head := make([]byte, len(oleMagic))
	n, err := io.ReadFull(f, head)
	f.Close()
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}

	switch DetectKind(head[:n]) {
	case KindZIP:
	case KindOLE:
		return nil, ErrEncryptedPackage
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrNotZip)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotZip, err)
	}
	return zr, nil
}

// readMember returns the contents of the first member called name.
func readMember(zr *zip.Reader, name string) ([]byte, bool, error) {
	for _, f := range zr.File {
		if f.Name == name {
			data, err := readFile(f)
			return data, true, err
		}
	}
	return nil, false, nil
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return data, nil
}
