package digest

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyEndToEnd(t *testing.T) {
	require := require.New(t)

	dA := Compute(zeroSalt, "test", 1, ModeA)
	dB := Compute(zeroSalt, "test", 1, ModeB)

	res := Verify(zeroSalt, dA, 1, "test")
	require.True(res.Matched)
	require.Equal(ModeA, res.Mode)
	require.Equal(dA, res.Digest)

	res = Verify(zeroSalt, dB, 1, "test")
	require.True(res.Matched)
	require.Equal(ModeB, res.Mode)
	require.Equal(dB, res.Digest)

	res = Verify(zeroSalt, dA, 1, "wrong")
	require.False(res.Matched)
	require.Equal(NoMode, res.Mode)
	require.Equal(Digest{}, res.Digest)
}

func TestVerifierMatchesCompute(t *testing.T) {
	require := require.New(t)

	salt := []byte("0123456789abcdef")
	for _, spin := range []int{-3, 0, 1, 2, 7, 1000} {
		for _, mode := range Modes {
			target := Compute(salt, "Secret!", spin, mode)
			res := NewVerifier(salt, target, spin).Verify("Secret!")
			require.True(res.Matched, "spin %d mode %s", spin, mode)
			require.Equal(target, res.Digest)
			if spin <= 0 {
				// Both modes collapse to the initial hash; A is reported first.
				require.Equal(ModeA, res.Mode)
			} else {
				require.Equal(mode, res.Mode)
			}
		}
	}
}

func TestVerifierReuse(t *testing.T) {
	require := require.New(t)

	target := Compute(zeroSalt, "a much longer password than the scratch buffer holds at first", 5, ModeB)
	v := NewVerifier(zeroSalt, target, 5)

	require.False(v.Verify("short").Matched)
	require.True(v.Verify("a much longer password than the scratch buffer holds at first").Matched)
	require.False(v.Verify("").Matched)
	require.True(v.Verify("a much longer password than the scratch buffer holds at first").Matched)
}

func TestVerifierDoesNotAliasSalt(t *testing.T) {
	require := require.New(t)

	salt := []byte("saltsaltsaltsalt")
	target := Compute(salt, "pw", 3, ModeA)
	v := NewVerifier(salt, target, 3)
	salt[0] = 'X'

	require.True(v.Verify("pw").Matched)
	require.True(v.Clone().Verify("pw").Matched)
	require.Equal(3, v.Spin())
}

func TestParamsVerifier(t *testing.T) {
	require := require.New(t)

	p, err := ParseParams("AAECAwQFBgcICQoLDA0ODw==", "eezwCn8I/by2k3efqAhOcfpNL6Q=", "1000")
	require.NoError(err)
	require.Equal(1000, p.Spin)
	require.Equal("AAECAwQFBgcICQoLDA0ODw==", base64.StdEncoding.EncodeToString(p.Salt))

	res := p.Verifier().Verify("hunter2")
	require.True(res.Matched)
	require.Equal(ModeB, res.Mode)
	require.Equal("79ecf00a7f08fdbcb693779fa8084e71fa4d2fa4", res.Digest.String())
}
