package protect

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNoEncryptionInfo = errors.New("no EncryptionInfo/encryption.xml found in archive")

// encryptionInfoMembers are tried in order.
var encryptionInfoMembers = []string{"EncryptionInfo", "encryption.xml"}

// EncryptionInfo holds the verifier fields of an encryption descriptor.
// Values are kept as stored (base64 or decimal text); missing fields are
// empty.
type EncryptionInfo struct {
	Member                string
	SaltValue             string
	SpinCount             string
	EncryptedVerifier     string
	EncryptedVerifierHash string
}

// Complete reports whether every field was found.
func (e *EncryptionInfo) Complete() bool {
	return e.SaltValue != "" && e.SpinCount != "" && e.EncryptedVerifier != "" && e.EncryptedVerifierHash != ""
}

func ExtractEncryptionInfo(path string) (*EncryptionInfo, error) {
	zr, err := openPackage(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, name := range encryptionInfoMembers {
		data, ok, err := readMember(&zr.Reader, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		info, err := ParseEncryptionInfo(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		info.Member = name
		return info, nil
	}
	return nil, ErrNoEncryptionInfo
}

// ParseEncryptionInfo collects verifier fields from an encryption descriptor.
// Binary stream headers before the XML are skipped. Fields are accepted both
// as element text and as attributes; the first occurrence of a name wins and
// preferred names win over fallbacks.
func ParseEncryptionInfo(data []byte) (*EncryptionInfo, error) {
	seen := make(map[string]string)
	record := func(name, value string) {
		name = strings.ToLower(name)
		value = strings.TrimSpace(value)
		if _, ok := seen[name]; !ok && value != "" {
			seen[name] = value
		}
	}

	dec := xml.NewDecoder(bytes.NewReader(trimToMarkup(data)))
	var (
		open []string
		text strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse encryption info: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			for _, a := range t.Attr {
				record(a.Name.Local, a.Value)
			}
			open = append(open, t.Name.Local)
			text.Reset()
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if n := len(open); n > 0 {
				record(open[n-1], text.String())
				open = open[:n-1]
			}
			text.Reset()
		}
	}

	first := func(names ...string) string {
		for _, n := range names {
			if v, ok := seen[strings.ToLower(n)]; ok {
				return v
			}
		}
		return ""
	}
	return &EncryptionInfo{
		SaltValue:             first("saltValue", "salt"),
		SpinCount:             first("spinCount"),
		EncryptedVerifier:     first("encryptedVerifier", "encryptedVerifierHashInput", "verifier"),
		EncryptedVerifierHash: first("encryptedVerifierHash", "encryptedVerifierHashValue", "verifierHash"),
	}, nil
}
