package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Environment variable for the password, checked before the password file
	PasswordEnvVar = "KEYDECODE_PASSWORD"

	envPrefix = "KEYDECODE"
)

// Config holds everything a single decode run needs
type Config struct {
	KeystoreDir   string
	KeystoreFile  string // exact file name inside KeystoreDir, optional
	Select        string // SelectSingle or SelectFirst
	PasswordFile  string // empty disables the file and falls back to a prompt
	HexPrefix     bool
	VerifyAddress bool
	Debug         bool
}

func addFlags(fs *pflag.FlagSet) {
	fs.String("keystore-dir", "/data/keystore", "directory holding the keystore file")
	fs.String("keystore-file", "", "exact keystore file name inside --keystore-dir")
	fs.String("select", SelectSingle, "how to pick among several files: single (refuse) or first (lexicographic)")
	fs.String("password-file", "/data/password.txt", "file holding the password; empty to prompt instead")
	fs.Bool("0x", false, "prefix the printed key with 0x")
	fs.Bool("verify-address", false, "fail unless the key derives the address stored in the keystore")
	fs.Bool("debug", false, "sets debug level log output")
	fs.String("config", "", "optional config file (yaml, json or toml)")
}

// newViper binds fs and the KEYDECODE_* environment into a fresh viper instance.
func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}
	return v, nil
}

func loadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		KeystoreDir:   v.GetString("keystore-dir"),
		KeystoreFile:  v.GetString("keystore-file"),
		Select:        v.GetString("select"),
		PasswordFile:  v.GetString("password-file"),
		HexPrefix:     v.GetBool("0x"),
		VerifyAddress: v.GetBool("verify-address"),
		Debug:         v.GetBool("debug"),
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.KeystoreDir == "" {
		return errors.New("keystore directory cannot be empty")
	}
	if c.Select != SelectSingle && c.Select != SelectFirst {
		return errors.Errorf("invalid select policy %q, must be %s or %s", c.Select, SelectSingle, SelectFirst)
	}
	return nil
}
