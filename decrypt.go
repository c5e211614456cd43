package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"keydecode/keystore"
)

// decode selects the keystore, decrypts it and prints the key as hex on out.
func decode(cfg Config, out, prompt io.Writer) error {
	path, err := selectKeystore(cfg.KeystoreDir, cfg.KeystoreFile, cfg.Select)
	if err != nil {
		return err
	}
	log.Debug().Str("file", path).Msg("selected keystore")

	keyjson, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read keystore")
	}

	rec, err := keystore.Parse(keyjson)
	if err != nil {
		return errors.Wrapf(err, "invalid keystore %s", filepath.Base(path))
	}
	log.Debug().
		Int("version", rec.Version).
		Str("kdf", rec.KDF.Name).
		Str("cipher", rec.Cipher).
		Msg("parsed keystore")

	password, err := getPassword(cfg.PasswordFile, prompt)
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(password)

	secret, err := keystore.NewDecoder().Decrypt(rec, password)
	if err != nil {
		if keystore.IsKind(err, keystore.KindAuthenticationFailed) {
			return errors.Wrap(err, "decryption failed (wrong password or corrupted keystore?)")
		}
		return errors.Wrapf(err, "failed to decrypt %s", filepath.Base(path))
	}
	defer secret.Wipe()

	if err := checkAddress(rec, secret, cfg.VerifyAddress); err != nil {
		return err
	}

	prefix := ""
	if cfg.HexPrefix {
		prefix = "0x"
	}
	if _, err := fmt.Fprintln(out, prefix+secret.Hex()); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	return nil
}
