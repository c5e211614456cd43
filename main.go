package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const Version = "1.0.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "keydecode",
		Short: "Print the private key held in an encrypted keystore file",
		Long: `keydecode decrypts one Web3 Secret Storage keystore file (version 3, or
legacy version 1) and prints the private key as hex on STDOUT.

The file is taken from --keystore-dir. When the directory holds several files,
name one with --keystore-file or pass --select=first to take the first in
lexicographic order.

PASSWORD:
    Set KEYDECODE_PASSWORD, point --password-file at a file (surrounding
    whitespace is trimmed), or pass --password-file="" to be prompted.

Every flag can also be set as KEYDECODE_<FLAG> (e.g. KEYDECODE_KEYSTORE_DIR)
or in the file given by --config.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			setupLogging(stderr, cfg.Debug)
			return decode(cfg, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	addFlags(root.Flags())

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stderr, "keydecode version %s\n", Version)
		},
	})
	return root
}

// setupLogging sends logs to w so that STDOUT only ever carries the key.
func setupLogging(w io.Writer, debug bool) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
