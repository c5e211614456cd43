package keystore

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

const (
	addressLength = 20
	macLength     = 32 // Keccak-256
)

// Parse decodes keystore JSON into a Record.
//
// Parse checks structure only: required fields present, hex well formed, version
// supported. KDF and cipher identifiers are kept verbatim and checked by Decrypt,
// so an unknown algorithm surfaces as UnsupportedKdf or UnsupportedCipher.
func Parse(keyjson []byte) (*Record, error) {
	var k encryptedKeyJSON
	if err := json.Unmarshal(keyjson, &k); err != nil {
		return nil, wrapError(KindMalformedRecord, "invalid keystore json", err)
	}

	rec := &Record{Version: int(k.Version)}
	if rec.Version != 1 && rec.Version != 3 {
		return nil, malformed("unsupported keystore version %d", rec.Version)
	}
	if k.Crypto == nil {
		return nil, malformed("missing crypto section")
	}

	if k.ID != "" {
		id, err := uuid.Parse(k.ID)
		if err != nil {
			return nil, wrapError(KindMalformedRecord, "invalid id", err)
		}
		rec.ID = id
	}
	if k.Address != "" {
		addr, err := decodeHex("address", k.Address)
		if err != nil {
			return nil, err
		}
		if len(addr) != addressLength {
			return nil, malformed("address must be %d bytes, got %d", addressLength, len(addr))
		}
		rec.Address = addr
	}

	c := k.Crypto
	if c.Cipher == "" {
		return nil, malformed("missing cipher")
	}
	rec.Cipher = c.Cipher

	var err error
	if rec.CipherText, err = requireHex("ciphertext", c.CipherText); err != nil {
		return nil, err
	}
	if rec.IV, err = requireHex("cipherparams.iv", c.CipherParams.IV); err != nil {
		return nil, err
	}
	if rec.MAC, err = requireHex("mac", c.MAC); err != nil {
		return nil, err
	}
	if len(rec.MAC) != macLength {
		return nil, malformed("mac must be %d bytes, got %d", macLength, len(rec.MAC))
	}

	if c.KDF == "" {
		return nil, malformed("missing kdf")
	}
	if rec.KDF, err = parseKDFParams(c.KDF, c.KDFParams); err != nil {
		return nil, err
	}
	return rec, nil
}

func parseKDFParams(name string, p *kdfParamsJSON) (KDFParams, error) {
	params := KDFParams{Name: name}
	if name != KDFScrypt && name != KDFPBKDF2 {
		// Left for Decrypt to reject as unsupported.
		return params, nil
	}
	if p == nil {
		return params, malformed("missing kdfparams")
	}

	salt, err := requireHex("kdfparams.salt", p.Salt)
	if err != nil {
		return params, err
	}
	params.Salt = salt
	if p.DKLen == nil {
		return params, malformed("missing kdfparams.dklen")
	}
	params.DKLen = *p.DKLen

	switch name {
	case KDFScrypt:
		if p.N == nil || p.R == nil || p.P == nil {
			return params, malformed("scrypt kdfparams require n, r and p")
		}
		params.Scrypt = &ScryptParams{N: *p.N, R: *p.R, P: *p.P}
	case KDFPBKDF2:
		if p.C == nil {
			return params, malformed("pbkdf2 kdfparams require c")
		}
		if p.PRF == "" {
			return params, malformed("pbkdf2 kdfparams require prf")
		}
		params.PBKDF2 = &PBKDF2Params{Iterations: *p.C, PRF: p.PRF}
	}
	return params, nil
}

func requireHex(field string, s *string) ([]byte, error) {
	if s == nil {
		return nil, malformed("missing %s", field)
	}
	return decodeHex(field, *s)
}

func decodeHex(field, s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, wrapError(KindMalformedRecord, "invalid hex in "+field, err)
	}
	return b, nil
}
