// Package keystore decrypts Web3 Secret Storage keystore files.
//
// A keystore holds a private key encrypted under a password. Decryption derives
// a key with scrypt or PBKDF2, checks a Keccak-256 MAC over the ciphertext and
// then decrypts with AES. Version 3 files (aes-128-ctr) and legacy version 1
// geth files (aes-128-cbc) are supported.
//
// The package never writes keystores and never logs. Decrypt is a pure
// function of its inputs; KDF cost is bounded by Limits before any derivation.
package keystore
