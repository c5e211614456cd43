package keystore

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/awnumar/memguard"
)

// blockSize is the IV length every supported cipher requires.
const blockSize = 16

// Option configures a Decoder.
type Option func(*Decoder)

// WithLimits replaces the default KDF cost limits.
func WithLimits(l Limits) Option {
	return func(d *Decoder) {
		d.limits = l
	}
}

// Decoder decrypts keystore records. It holds no mutable state and is safe
// for concurrent use.
type Decoder struct {
	limits Limits
}

// NewDecoder returns a Decoder using DefaultLimits unless overridden.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Limits returns the KDF cost limits the decoder enforces.
func (d *Decoder) Limits() Limits {
	return d.limits
}

// Decrypt derives the key from password, verifies the record's MAC and returns
// the plaintext. A wrong password and a tampered record are indistinguishable
// and both fail with ErrAuthenticationFailed.
func (d *Decoder) Decrypt(rec *Record, password []byte) (Secret, error) {
	if rec == nil {
		return nil, malformed("nil record")
	}
	c, err := lookupCipher(rec.Version, rec.Cipher)
	if err != nil {
		return nil, err
	}
	if len(rec.IV) != blockSize {
		return nil, malformed("iv must be %d bytes for %s, got %d", blockSize, rec.Cipher, len(rec.IV))
	}
	if len(rec.MAC) != macLength {
		return nil, malformed("mac must be %d bytes, got %d", macLength, len(rec.MAC))
	}
	if err := checkKDF(rec.KDF, d.limits, c.keySize+macKeyLen); err != nil {
		return nil, err
	}

	derived, err := deriveKey(password, rec.KDF)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(derived)

	encKey := derived[:c.keySize]
	macKey := derived[c.keySize : c.keySize+macKeyLen]

	mac := keccak256(macKey, rec.CipherText)
	if subtle.ConstantTimeCompare(mac, rec.MAC) != 1 {
		return nil, ErrAuthenticationFailed
	}

	plain, err := c.decrypt(encKey, rec.IV, rec.CipherText)
	if err != nil {
		return nil, err
	}
	return Secret(plain), nil
}

// DecryptJSON parses keyjson and decrypts it with password.
func (d *Decoder) DecryptJSON(keyjson, password []byte) (Secret, error) {
	rec, err := Parse(keyjson)
	if err != nil {
		return nil, err
	}
	return d.Decrypt(rec, password)
}

// Decrypt decrypts rec with the default limits.
func Decrypt(rec *Record, password []byte) (Secret, error) {
	return NewDecoder().Decrypt(rec, password)
}

// DecryptJSON parses and decrypts keyjson with the default limits.
func DecryptJSON(keyjson, password []byte) (Secret, error) {
	return NewDecoder().DecryptJSON(keyjson, password)
}

// Hex returns the lowercase hex encoding of the secret, without prefix.
func (s Secret) Hex() string {
	return hex.EncodeToString(s)
}

// Wipe overwrites the secret with zeros.
func (s Secret) Wipe() {
	memguard.WipeBytes(s)
}
