package protect

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const SettingsPath = "word/settings.xml"

var (
	ErrSettingsMissing = errors.New(SettingsPath + " not found in archive")
	ErrNoProtection    = errors.New("no documentProtection element found")
)

type Attr struct {
	Name  string
	Value string
}

// Protection is the documentProtection element of a WordprocessingML
// settings part.
type Protection struct {
	// Attrs holds every attribute in document order, keyed by local name.
	Attrs []Attr

	Hash      string
	Salt      string
	SpinCount string

	// Edit is the restriction type, e.g. readOnly or forms.
	Edit        string
	Enforcement string

	AlgorithmName     string
	CryptAlgorithmSid string
}

// Lookup returns the first attribute matching any of names, ignoring case.
func (p *Protection) Lookup(names ...string) (string, bool) {
	for _, name := range names {
		for _, a := range p.Attrs {
			if strings.EqualFold(a.Name, name) {
				return a.Value, true
			}
		}
	}
	return "", false
}

// IsSHA1 reports whether the marker declares SHA-1, the only algorithm the
// digest chain supports. Markers that declare nothing are assumed SHA-1.
func (p *Protection) IsSHA1() bool {
	if p.AlgorithmName != "" {
		n := strings.ToUpper(strings.ReplaceAll(p.AlgorithmName, "-", ""))
		return n == "SHA1"
	}
	if p.CryptAlgorithmSid != "" {
		// ALG_SID_SHA1
		return strings.TrimSpace(p.CryptAlgorithmSid) == "4"
	}
	return true
}

// ExtractProtection reads the documentProtection marker of a .docx file.
func ExtractProtection(path string) (*Protection, error) {
	zr, err := openPackage(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	data, ok, err := readMember(&zr.Reader, SettingsPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSettingsMissing
	}
	return ParseProtection(data)
}

// ParseProtection finds the first documentProtection element in a settings
// part, matching the local name case-insensitively in any namespace.
func ParseProtection(settings []byte) (*Protection, error) {
	dec := xml.NewDecoder(bytes.NewReader(trimToMarkup(settings)))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoProtection
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", SettingsPath, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(se.Name.Local, "documentProtection") {
			continue
		}

		p := &Protection{Attrs: make([]Attr, 0, len(se.Attr))}
		for _, a := range se.Attr {
			p.Attrs = append(p.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
		}
		p.Hash, _ = p.Lookup("hash", "hashValue")
		p.Salt, _ = p.Lookup("salt", "saltValue")
		p.SpinCount, _ = p.Lookup("cryptSpinCount", "spinCount")
		p.Edit, _ = p.Lookup("edit")
		p.Enforcement, _ = p.Lookup("enforcement")
		p.AlgorithmName, _ = p.Lookup("algorithmName")
		p.CryptAlgorithmSid, _ = p.Lookup("cryptAlgorithmSid")
		return p, nil
	}
}

// trimToMarkup drops anything before the XML declaration, or before the
// first tag when there is none.
func trimToMarkup(data []byte) []byte {
	if i := bytes.Index(data, []byte("<?xml")); i > 0 {
		return data[i:]
	}
	if i := bytes.IndexByte(data, '<'); i > 0 {
		return data[i:]
	}
	return data
}
