package digest

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidBase64    = errors.New("invalid base64")
	ErrInvalidHashLen   = errors.New("invalid hash length")
	ErrInvalidSpinCount = errors.New("spinCount must be an integer")
)

// Params is a decoded protection marker.
type Params struct {
	Salt   []byte
	Target Digest
	Spin   int
}

// ParseParams decodes the textual marker values as stored in the document:
// standard base64 salt and hash, decimal spin count. Nothing is hashed when
// an error is returned.
func ParseParams(saltB64, hashB64, spin string) (Params, error) {
	salt, err := base64.StdEncoding.DecodeString(strings.TrimSpace(saltB64))
	if err != nil {
		return Params{}, fmt.Errorf("%w: salt: %w", ErrInvalidBase64, err)
	}
	hash, err := base64.StdEncoding.DecodeString(strings.TrimSpace(hashB64))
	if err != nil {
		return Params{}, fmt.Errorf("%w: hash: %w", ErrInvalidBase64, err)
	}
	if len(hash) != Size {
		return Params{}, fmt.Errorf("%w: hash is %d bytes, expected %d", ErrInvalidHashLen, len(hash), Size)
	}
	n, err := strconv.Atoi(strings.TrimSpace(spin))
	if err != nil {
		return Params{}, fmt.Errorf("%w: %q", ErrInvalidSpinCount, spin)
	}

	p := Params{Salt: salt, Spin: n}
	copy(p.Target[:], hash)
	return p, nil
}

func (p Params) Verifier() *Verifier {
	return NewVerifier(p.Salt, p.Target, p.Spin)
}
