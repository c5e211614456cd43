package main

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"keydecode/keystore"
)

// checkAddress derives the account address of secret and compares it with the
// address recorded in the keystore. Without verify a mismatch is only logged.
func checkAddress(rec *keystore.Record, secret keystore.Secret, verify bool) error {
	priv, err := crypto.ToECDSA(secret)
	if err != nil {
		if verify {
			return errors.Wrap(err, "decrypted secret is not a secp256k1 private key")
		}
		log.Debug().Err(err).Msg("secret is not a secp256k1 key, skipping address check")
		return nil
	}
	derived := crypto.PubkeyToAddress(priv.PublicKey)
	log.Debug().Str("address", derived.Hex()).Msg("derived account address")

	if rec.Address == nil {
		if verify {
			return errors.New("keystore has no address to verify against")
		}
		return nil
	}

	if !bytes.Equal(derived.Bytes(), rec.Address) {
		stored := common.BytesToAddress(rec.Address)
		if verify {
			return errors.Errorf("address mismatch: keystore records %s but key derives %s", stored.Hex(), derived.Hex())
		}
		log.Warn().Str("stored", stored.Hex()).Str("derived", derived.Hex()).Msg("keystore address does not match key")
	}
	return nil
}
