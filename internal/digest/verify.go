package digest

import (
	"crypto/sha1" //nolint:gosec

	"golang.org/x/text/encoding"
)

// Result reports whether a candidate matched and under which mode. Mode and
// Digest are zero when Matched is false.
type Result struct {
	Matched bool
	Mode    Mode
	Digest  Digest
}

// Verifier checks candidates against one protection marker. It reuses an
// internal buffer between calls and must not be shared between goroutines;
// use Clone for each worker.
type Verifier struct {
	salt   []byte
	target Digest
	spin   int

	enc *encoding.Encoder
	buf []byte
}

func NewVerifier(salt []byte, target Digest, spin int) *Verifier {
	s := append([]byte(nil), salt...)
	buf := make([]byte, len(s), len(s)+64)
	copy(buf, s)
	return &Verifier{
		salt:   s,
		target: target,
		spin:   spin,
		enc:    newEncoder(),
		buf:    buf,
	}
}

func (v *Verifier) Clone() *Verifier {
	return NewVerifier(v.salt, v.target, v.spin)
}

func (v *Verifier) Spin() int {
	return v.spin
}

// Verify tries candidate under ModeA, then ModeB.
//
// ModeB runs exactly one re-hash more than ModeA whenever spin >= 1, so its
// digest is derived from ModeA's instead of rerunning the chain. For spin <= 0
// both modes perform no re-hash and share the initial digest.
func (v *Verifier) Verify(candidate string) Result {
	v.buf = appendUTF16LE(v.enc, v.buf[:len(v.salt)], candidate)
	d := chain(sha1.Sum(v.buf), ModeA.rehashes(v.spin)) //nolint:gosec
	if d == v.target {
		return Result{Matched: true, Mode: ModeA, Digest: d}
	}
	if v.spin >= 1 {
		d = sha1.Sum(d[:]) //nolint:gosec
	}
	if d == v.target {
		return Result{Matched: true, Mode: ModeB, Digest: d}
	}
	return Result{}
}

// Verify checks a single candidate without keeping a Verifier around.
func Verify(salt []byte, target Digest, spin int, candidate string) Result {
	return NewVerifier(salt, target, spin).Verify(candidate)
}
