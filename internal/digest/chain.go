// Package digest computes and checks the salted SHA-1 chain that protects
// the "restrict editing" setting of OOXML documents.
//
// The stored hash is SHA-1(salt || UTF-16LE(password)) re-hashed a number of
// times derived from the document's spin count. Producers disagree on that
// number, so two conventions are supported:
//
//	ModeA: spin-1 chained re-hashes after the initial hash
//	ModeB: spin   chained re-hashes after the initial hash
//
// Candidates are always tried in the order of Modes.
package digest

import (
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const Size = sha1.Size

// Digest is a SHA-1 value of the chain.
type Digest [Size]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

type Mode uint8

const (
	NoMode Mode = iota
	ModeA
	ModeB
)

// Modes lists the supported conventions in the order candidates are checked.
var Modes = [...]Mode{ModeA, ModeB}

func (m Mode) String() string {
	switch m {
	case ModeA:
		return "A"
	case ModeB:
		return "B"
	default:
		return "none"
	}
}

// rehashes returns how many chained SHA-1 invocations follow the initial
// hash. It may be negative; chain treats that as zero.
func (m Mode) rehashes(spin int) int {
	switch m {
	case ModeA:
		return spin - 1
	case ModeB:
		return spin
	default:
		return 0
	}
}

// Compute returns the digest of password under the given salt, spin count
// and mode. It is pure: equal inputs always yield equal digests.
func Compute(salt []byte, password string, spin int, mode Mode) Digest {
	buf := make([]byte, len(salt), len(salt)+2*len(password))
	copy(buf, salt)
	buf = appendUTF16LE(newEncoder(), buf, password)
	return chain(sha1.Sum(buf), mode.rehashes(spin)) //nolint:gosec
}

func chain(d Digest, n int) Digest {
	for ; n > 0; n-- {
		d = sha1.Sum(d[:]) //nolint:gosec
	}
	return d
}

func newEncoder() *encoding.Encoder {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
}

// appendUTF16LE appends the UTF-16LE code units of s to dst. Ill-formed UTF-8
// is encoded as U+FFFD.
func appendUTF16LE(enc *encoding.Encoder, dst []byte, s string) []byte {
	enc.Reset()
	out, _, err := transform.Append(enc, dst, []byte(s))
	if err == nil {
		return out
	}
	enc.Reset()
	out, _, err = transform.Append(enc, dst, []byte(strings.ToValidUTF8(s, "\uFFFD")))
	if err != nil {
		return dst
	}
	return out
}
