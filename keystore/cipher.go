package keystore

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/tink-crypto/tink-go/v2/aead/subtle"
	"golang.org/x/crypto/sha3"
)

// Cipher identifiers
const (
	CipherAES128CTR = "aes-128-ctr"
	CipherAES256CTR = "aes-256-ctr"
	CipherAES128CBC = "aes-128-cbc"
)

type cipherSpec struct {
	keySize int
	decrypt func(key, iv, ciphertext []byte) ([]byte, error)
}

// ciphers maps a record version to the ciphers it may name.
var ciphers = map[int]map[string]cipherSpec{
	3: {
		CipherAES128CTR: {keySize: 16, decrypt: aesCTRDecrypt},
		CipherAES256CTR: {keySize: 32, decrypt: aesCTRDecrypt},
	},
	1: {
		CipherAES128CBC: {keySize: 16, decrypt: aesCBCDecryptV1},
	},
}

func lookupCipher(version int, name string) (cipherSpec, error) {
	c, ok := ciphers[version][name]
	if !ok {
		return cipherSpec{}, &Error{Kind: KindUnsupportedCipher, Message: "unsupported cipher: " + name}
	}
	return c, nil
}

func aesCTRDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}
	ctr, err := subtle.NewAESCTR(key, len(iv))
	if err != nil {
		return nil, wrapError(KindMalformedRecord, "aes-ctr", err)
	}
	in := make([]byte, 0, len(iv)+len(ciphertext))
	in = append(in, iv...)
	in = append(in, ciphertext...)
	out, err := ctr.Decrypt(in)
	if err != nil {
		return nil, wrapError(KindMalformedRecord, "aes-ctr", err)
	}
	return out, nil
}

// aesCBCDecryptV1 decrypts a version 1 record, whose AES key is the
// Keccak-256 of the first 16 derived bytes, truncated to 16.
func aesCBCDecryptV1(key, iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, malformed("cbc ciphertext length %d is not a multiple of the block size", len(ciphertext))
	}
	block, err := aes.NewCipher(keccak256(key)[:16])
	if err != nil {
		return nil, wrapError(KindMalformedRecord, "aes-cbc", err)
	}
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)
	plain := pkcs7Unpad(padded)
	if plain == nil {
		return nil, malformed("invalid cbc padding")
	}
	return plain, nil
}

func pkcs7Unpad(in []byte) []byte {
	if len(in) == 0 {
		return nil
	}
	padding := int(in[len(in)-1])
	if padding == 0 || padding > aes.BlockSize || padding > len(in) {
		return nil
	}
	for _, b := range in[len(in)-padding:] {
		if int(b) != padding {
			return nil
		}
	}
	return in[:len(in)-padding]
}

func keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}
