package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"syscall"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// asciiSpace is the set of bytes trimmed from both ends of a configured password.
// Unicode spaces such as U+00A0 are part of the password.
const asciiSpace = " \t\n\r\v\f"

// getPassword returns the keystore password. The environment variable wins,
// then the password file, then an interactive prompt when no file is configured.
func getPassword(passwordFile string, prompt io.Writer) ([]byte, error) {
	// First check environment variable
	if envPass := os.Getenv(PasswordEnvVar); envPass != "" {
		log.Debug().Str("source", PasswordEnvVar).Msg("using password from environment")
		return trimPassword([]byte(envPass)), nil
	}

	if passwordFile != "" {
		log.Debug().Str("source", passwordFile).Msg("reading password file")
		return readPasswordFile(passwordFile)
	}

	password, err := readPassword(prompt, "Keystore password: ")
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return password, nil
}

// readPasswordFile reads the file and trims surrounding ASCII whitespace, so a
// trailing newline is never part of the password.
func readPasswordFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read password file")
	}
	password := trimPassword(data)
	memguard.WipeBytes(data)
	return password, nil
}

// trimPassword returns a copy of raw without surrounding ASCII whitespace.
func trimPassword(raw []byte) []byte {
	trimmed := bytes.Trim(raw, asciiSpace)
	password := make([]byte, len(trimmed))
	copy(password, trimmed)
	return password
}

func readPassword(prompt io.Writer, msg string) ([]byte, error) {
	fmt.Fprint(prompt, msg)

	var password []byte
	var err error

	if term.IsTerminal(int(syscall.Stdin)) {
		// STDIN is a terminal, use secure input
		password, err = term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(prompt)
	} else {
		// STDIN is not a terminal (piped), try to read from /dev/tty
		tty, ttyErr := os.Open("/dev/tty")
		if ttyErr != nil {
			if runtime.GOOS == "windows" {
				return nil, errors.Errorf("password must be set via %s or --password-file when STDIN is piped", PasswordEnvVar)
			}
			return nil, errors.Errorf("cannot read password: STDIN is piped and /dev/tty is not available. Set %s or --password-file", PasswordEnvVar)
		}
		defer tty.Close()

		password, err = term.ReadPassword(int(tty.Fd()))
		fmt.Fprintln(prompt)
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to read password")
	}
	return password, nil
}
