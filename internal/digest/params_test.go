package digest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	const (
		salt = "AAAAAAAAAAAAAAAAAAAAAA=="
		hash = "oN7EnB9RJfFoHXP5MvO5KaMS4Gc="
	)
	tests := []struct {
		name    string
		salt    string
		hash    string
		spin    string
		wantErr error
	}{
		{name: "valid", salt: salt, hash: hash, spin: "100000"},
		{name: "surrounding space", salt: " " + salt, hash: hash + "\n", spin: " 1 "},
		{name: "negative spin", salt: salt, hash: hash, spin: "-4"},
		{name: "bad salt", salt: "not base64!", hash: hash, spin: "1", wantErr: ErrInvalidBase64},
		{name: "bad hash", salt: salt, hash: "%%%", spin: "1", wantErr: ErrInvalidBase64},
		{name: "short hash", salt: salt, hash: "AAAA", spin: "1", wantErr: ErrInvalidHashLen},
		{name: "spin not integer", salt: salt, hash: hash, spin: "10k", wantErr: ErrInvalidSpinCount},
		{name: "spin empty", salt: salt, hash: hash, spin: "", wantErr: ErrInvalidSpinCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			p, err := ParseParams(tt.salt, tt.hash, tt.spin)
			if tt.wantErr != nil {
				require.ErrorIs(err, tt.wantErr)
				require.Equal(Params{}, p)
				return
			}
			require.NoError(err)
			require.Len(p.Salt, 16)
			require.Equal("a0dec49c1f5125f1681d73f932f3b929a312e067", p.Target.String())
		})
	}
}
