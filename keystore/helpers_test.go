package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPassword = "testpassword"

// vectorSecret is the private key held by the published Web3 Secret Storage test vectors.
const vectorSecret = "7a28b5ba57c53603b0b07b56bba752f7784bf506fa95edc395f5cf6c7514fe9d"

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func fixedBytes(n int, start byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

func cheapScrypt() KDFParams {
	return KDFParams{
		Name:   KDFScrypt,
		Salt:   fixedBytes(32, 0x10),
		DKLen:  32,
		Scrypt: &ScryptParams{N: 16, R: 8, P: 1},
	}
}

func cheapPBKDF2(prf string) KDFParams {
	return KDFParams{
		Name:   KDFPBKDF2,
		Salt:   fixedBytes(32, 0x20),
		DKLen:  32,
		PBKDF2: &PBKDF2Params{Iterations: 64, PRF: prf},
	}
}

// sealJSON builds keystore JSON for secret under password. It is the inverse of
// Decrypt and exists only to produce fixtures.
func sealJSON(t *testing.T, version int, cipherName string, kdf KDFParams, secret, password []byte) []byte {
	t.Helper()

	derived, err := deriveKey(password, kdf)
	require.NoError(t, err)
	iv := fixedBytes(blockSize, 0x40)

	var (
		keySize    int
		ciphertext []byte
	)
	switch cipherName {
	case CipherAES128CTR, CipherAES256CTR:
		keySize = 16
		if cipherName == CipherAES256CTR {
			keySize = 32
		}
		block, err := aes.NewCipher(derived[:keySize])
		require.NoError(t, err)
		ciphertext = make([]byte, len(secret))
		cipher.NewCTR(block, iv).XORKeyStream(ciphertext, secret)
	case CipherAES128CBC:
		keySize = 16
		block, err := aes.NewCipher(keccak256(derived[:16])[:16])
		require.NoError(t, err)
		padLen := aes.BlockSize - len(secret)%aes.BlockSize
		padded := append(append([]byte{}, secret...), make([]byte, padLen)...)
		for i := len(secret); i < len(padded); i++ {
			padded[i] = byte(padLen)
		}
		ciphertext = make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	default:
		t.Fatalf("sealJSON: no encrypter for %s", cipherName)
	}
	mac := keccak256(derived[keySize:keySize+macKeyLen], ciphertext)

	params := map[string]interface{}{
		"dklen": kdf.DKLen,
		"salt":  hex.EncodeToString(kdf.Salt),
	}
	if kdf.Scrypt != nil {
		params["n"] = kdf.Scrypt.N
		params["r"] = kdf.Scrypt.R
		params["p"] = kdf.Scrypt.P
	}
	if kdf.PBKDF2 != nil {
		params["c"] = kdf.PBKDF2.Iterations
		params["prf"] = kdf.PBKDF2.PRF
	}

	var v interface{} = version
	if version == 1 {
		v = "1"
	}
	doc := map[string]interface{}{
		"address": "008aeeda4d805471df9b2a5b0f38a0c3bcba786b",
		"id":      "e13b209c-3b2f-4327-bab0-3bef2e51630d",
		"version": v,
		"crypto": map[string]interface{}{
			"cipher":       cipherName,
			"ciphertext":   hex.EncodeToString(ciphertext),
			"cipherparams": map[string]interface{}{"iv": hex.EncodeToString(iv)},
			"kdf":          kdf.Name,
			"kdfparams":    params,
			"mac":          hex.EncodeToString(mac),
		},
	}
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func sealRecord(t *testing.T, version int, cipherName string, kdf KDFParams, secret, password []byte) *Record {
	t.Helper()
	rec, err := Parse(sealJSON(t, version, cipherName, kdf, secret, password))
	require.NoError(t, err)
	return rec
}
