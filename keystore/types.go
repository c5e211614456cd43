package keystore

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
)

// KDF identifiers
const (
	KDFScrypt = "scrypt"
	KDFPBKDF2 = "pbkdf2"
)

// encryptedKeyJSON is the on-disk layout of a keystore file (version 1 or 3)
type encryptedKeyJSON struct {
	Address string      `json:"address"`
	Crypto  *cryptoJSON `json:"crypto"`
	ID      string      `json:"id"`
	Version version     `json:"version"`
}

type cryptoJSON struct {
	Cipher       string           `json:"cipher"`
	CipherText   *string          `json:"ciphertext"`
	CipherParams cipherparamsJSON `json:"cipherparams"`
	KDF          string           `json:"kdf"`
	KDFParams    *kdfParamsJSON   `json:"kdfparams"`
	MAC          *string          `json:"mac"`
}

type cipherparamsJSON struct {
	IV *string `json:"iv"`
}

// kdfParamsJSON holds the union of scrypt and pbkdf2 parameters.
// Pointers distinguish an absent field from a zero one.
type kdfParamsJSON struct {
	DKLen *int    `json:"dklen"`
	Salt  *string `json:"salt"`
	N     *int    `json:"n"`
	R     *int    `json:"r"`
	P     *int    `json:"p"`
	C     *int    `json:"c"`
	PRF   string  `json:"prf"`
}

// version accepts both 3 and "1": legacy geth files quote the number.
type version int

func (v *version) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*v = version(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = version(n)
	return nil
}

// ScryptParams are the cost parameters of an scrypt derivation.
type ScryptParams struct {
	N int
	R int
	P int
}

// PBKDF2Params are the parameters of a PBKDF2 derivation.
type PBKDF2Params struct {
	Iterations int
	PRF        string // "hmac-sha256" or "hmac-sha512"
}

// KDFParams describes how the symmetric key is derived from the password.
// Exactly one of Scrypt and PBKDF2 is set for a supported Name.
type KDFParams struct {
	Name   string
	Salt   []byte
	DKLen  int
	Scrypt *ScryptParams
	PBKDF2 *PBKDF2Params
}

// Record is a parsed keystore file. All hex fields are already decoded.
// A Record is never modified by decryption.
type Record struct {
	Version    int
	ID         uuid.UUID // uuid.Nil when the file has no id
	Address    []byte    // nil when the file has no address
	Cipher     string
	CipherText []byte
	IV         []byte
	KDF        KDFParams
	MAC        []byte
}

// Secret is a decrypted private key. It only ever lives in memory.
type Secret []byte
