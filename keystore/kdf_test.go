package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckKDFDefaultLimits(t *testing.T) {
	salt := fixedBytes(32, 0)
	scryptParams := func(n, r, p int) KDFParams {
		return KDFParams{Name: KDFScrypt, Salt: salt, DKLen: 32, Scrypt: &ScryptParams{N: n, R: r, P: p}}
	}
	pbkdf2Params := func(c int) KDFParams {
		return KDFParams{Name: KDFPBKDF2, Salt: salt, DKLen: 32, PBKDF2: &PBKDF2Params{Iterations: c, PRF: "hmac-sha256"}}
	}

	cases := []struct {
		name string
		p    KDFParams
		kind Kind // "" means accepted
	}{
		{"geth standard", scryptParams(1<<18, 8, 1), ""},
		{"geth light", scryptParams(1<<12, 8, 6), ""},
		{"vector scrypt", scryptParams(1<<18, 1, 8), ""},
		{"max n", scryptParams(1<<20, 8, 1), ""},
		{"n too large", scryptParams(1<<21, 1, 1), KindMalformedRecord},
		{"p too large", scryptParams(1<<10, 8, 17), KindMalformedRecord},
		{"r too large", scryptParams(1<<10, 33, 1), KindMalformedRecord},
		{"pbkdf2 vector", pbkdf2Params(262144), ""},
		{"pbkdf2 zero", pbkdf2Params(0), KindMalformedRecord},
		{"pbkdf2 too many", pbkdf2Params(10_000_001), KindMalformedRecord},
		{"argon2", KDFParams{Name: "argon2id", Salt: salt, DKLen: 32}, KindUnsupportedKDF},
		{"empty name", KDFParams{Salt: salt, DKLen: 32}, KindUnsupportedKDF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkKDF(tc.p, DefaultLimits(), 32)
			if tc.kind == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.kind, KindOf(err), "%v", err)
		})
	}
}

func TestDeriveKeyLength(t *testing.T) {
	for _, p := range []KDFParams{cheapScrypt(), cheapPBKDF2("hmac-sha256"), cheapPBKDF2("hmac-sha512")} {
		p.DKLen = 48
		key, err := deriveKey([]byte("pw"), p)
		assert.NoError(t, err)
		assert.Len(t, key, 48)
	}

	_, err := deriveKey([]byte("pw"), KDFParams{Name: "bcrypt"})
	assert.ErrorIs(t, err, ErrUnsupportedKDF)
}
