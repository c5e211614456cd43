package keystore

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// macKeyLen is the length of the MAC key that follows the cipher key in the derived key.
const macKeyLen = 16

// Limits bounds the KDF cost a record may demand before any derivation runs.
type Limits struct {
	MaxScryptN          int
	MaxScryptR          int
	MaxScryptP          int
	MaxScryptMemory     int64 // bytes, 128*N*r
	MaxPBKDF2Iterations int
	MaxDKLen            int
}

// DefaultLimits admits the standard geth "light" and "standard" parameter sets
// (N=262144, r=8, p=1 uses 256 MiB) and rejects anything much heavier.
func DefaultLimits() Limits {
	return Limits{
		MaxScryptN:          1 << 20,
		MaxScryptR:          32,
		MaxScryptP:          16,
		MaxScryptMemory:     1 << 30,
		MaxPBKDF2Iterations: 10_000_000,
		MaxDKLen:            64,
	}
}

var prfs = map[string]func() hash.Hash{
	"hmac-sha256": sha256.New,
	"hmac-sha512": sha512.New,
}

// checkKDF validates the KDF parameters against l without deriving anything.
// minDKLen is the cipher key size plus the MAC key size.
func checkKDF(p KDFParams, l Limits, minDKLen int) error {
	switch p.Name {
	case KDFScrypt, KDFPBKDF2:
	default:
		return &Error{Kind: KindUnsupportedKDF, Message: "unsupported KDF: " + p.Name}
	}

	if len(p.Salt) == 0 {
		return malformed("empty kdf salt")
	}
	if p.DKLen < minDKLen {
		return malformed("dklen %d too short, need at least %d", p.DKLen, minDKLen)
	}
	if p.DKLen > l.MaxDKLen {
		return malformed("dklen %d exceeds limit %d", p.DKLen, l.MaxDKLen)
	}

	switch p.Name {
	case KDFScrypt:
		s := p.Scrypt
		if s == nil {
			return malformed("missing scrypt parameters")
		}
		if s.N <= 1 || s.N&(s.N-1) != 0 {
			return malformed("scrypt n must be a power of two greater than 1, got %d", s.N)
		}
		if s.R <= 0 || s.P <= 0 {
			return malformed("scrypt r and p must be positive")
		}
		if s.N > l.MaxScryptN || s.R > l.MaxScryptR || s.P > l.MaxScryptP {
			return malformed("scrypt parameters n=%d r=%d p=%d exceed limits", s.N, s.R, s.P)
		}
		if mem := int64(128) * int64(s.N) * int64(s.R); mem > l.MaxScryptMemory {
			return malformed("scrypt needs %d bytes of memory, limit is %d", mem, l.MaxScryptMemory)
		}
	case KDFPBKDF2:
		pb := p.PBKDF2
		if pb == nil {
			return malformed("missing pbkdf2 parameters")
		}
		if _, ok := prfs[pb.PRF]; !ok {
			return &Error{Kind: KindUnsupportedKDF, Message: "unsupported PBKDF2 PRF: " + pb.PRF}
		}
		if pb.Iterations <= 0 {
			return malformed("pbkdf2 iteration count must be positive, got %d", pb.Iterations)
		}
		if pb.Iterations > l.MaxPBKDF2Iterations {
			return malformed("pbkdf2 iteration count %d exceeds limit %d", pb.Iterations, l.MaxPBKDF2Iterations)
		}
	}
	return nil
}

// deriveKey runs the KDF. Parameters must have passed checkKDF.
func deriveKey(password []byte, p KDFParams) ([]byte, error) {
	switch p.Name {
	case KDFScrypt:
		key, err := scrypt.Key(password, p.Salt, p.Scrypt.N, p.Scrypt.R, p.Scrypt.P, p.DKLen)
		if err != nil {
			return nil, wrapError(KindMalformedRecord, "scrypt", err)
		}
		return key, nil
	case KDFPBKDF2:
		return pbkdf2.Key(password, p.Salt, p.PBKDF2.Iterations, p.DKLen, prfs[p.PBKDF2.PRF]), nil
	default:
		return nil, &Error{Kind: KindUnsupportedKDF, Message: "unsupported KDF: " + p.Name}
	}
}
