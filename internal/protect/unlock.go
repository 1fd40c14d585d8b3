package protect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/yeka/zip"
)

var reDocumentProtection = regexp.MustCompile(`(?s)<w:documentProtection\b[^>]*/>|<w:documentProtection\b[^>]*>.*?</w:documentProtection>`)

// StripProtection removes every w:documentProtection element, self-closing
// or not, from a settings part.
func StripProtection(settings []byte) ([]byte, bool) {
	if !reDocumentProtection.Match(settings) {
		return settings, false
	}
	return reDocumentProtection.ReplaceAll(settings, nil), true
}

type UnlockResult struct {
	Entries int
	// HasSettings is false when the package has no settings part; the copy
	// is then identical in content.
	HasSettings bool
	Removed     bool
}

// Unlock writes a copy of the package at in to out with the editing
// restriction removed. No password is needed. Members keep their order,
// names, compression methods and timestamps.
func Unlock(in, out string) (UnlockResult, error) {
	var res UnlockResult

	ai, err := filepath.Abs(in)
	if err != nil {
		return res, err
	}
	ao, err := filepath.Abs(out)
	if err != nil {
		return res, err
	}
	if ai == ao {
		return res, errors.New("output path must differ from input path")
	}

	zr, err := openPackage(in)
	if err != nil {
		return res, err
	}
	defer zr.Close()

	f, err := os.Create(out)
	if err != nil {
		return res, err
	}
	if res, err = copyPackage(&zr.Reader, f); err != nil {
		f.Close()
		os.Remove(out)
		return res, err
	}
	if err := f.Close(); err != nil {
		os.Remove(out)
		return res, err
	}
	return res, nil
}

func copyPackage(zr *zip.Reader, w io.Writer) (UnlockResult, error) {
	var res UnlockResult
	zw := zip.NewWriter(w)
	for _, f := range zr.File {
		hdr := &zip.FileHeader{
			Name:          f.Name,
			Comment:       f.Comment,
			Method:        f.Method,
			ExternalAttrs: f.ExternalAttrs,
		}
		hdr.SetModTime(f.ModTime())
		dst, err := zw.CreateHeader(hdr)
		if err != nil {
			return res, fmt.Errorf("create %s: %w", f.Name, err)
		}
		res.Entries++
		if f.FileInfo().IsDir() {
			continue
		}

		if f.Name == SettingsPath {
			res.HasSettings = true
			data, err := readFile(f)
			if err != nil {
				return res, err
			}
			data, res.Removed = StripProtection(data)
			if _, err := dst.Write(data); err != nil {
				return res, fmt.Errorf("write %s: %w", f.Name, err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return res, fmt.Errorf("open %s: %w", f.Name, err)
		}
		_, err = io.Copy(dst, rc)
		rc.Close()
		if err != nil {
			return res, fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return res, err
	}
	return res, nil
}
