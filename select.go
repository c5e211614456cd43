package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Selection policies when the keystore directory holds more than one file
const (
	SelectSingle = "single"
	SelectFirst  = "first"
)

var (
	ErrNoKeystore        = errors.New("no keystore files found")
	ErrAmbiguousKeystore = errors.New("multiple keystore files found")
)

// selectKeystore returns the path of the one keystore file to decode.
// Directories and dot-files are never candidates.
func selectKeystore(dir, name, policy string) (string, error) {
	if name != "" {
		if filepath.Base(name) != name || strings.HasPrefix(name, ".") {
			return "", errors.Errorf("invalid keystore file name %q", name)
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return "", errors.Wrap(ErrNoKeystore, path)
		}
		if err != nil {
			return "", errors.Wrap(err, "failed to stat keystore")
		}
		if info.IsDir() {
			return "", errors.Errorf("%s is a directory", path)
		}
		return path, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to list %s", dir)
	}
	var candidates []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		candidates = append(candidates, e.Name())
	}
	sort.Strings(candidates)

	switch {
	case len(candidates) == 0:
		return "", errors.Wrapf(ErrNoKeystore, "keystore directory %s", dir)
	case len(candidates) == 1:
	case policy == SelectFirst:
		log.Warn().
			Str("selected", candidates[0]).
			Strs("ignored", candidates[1:]).
			Msg("several keystore files found, using the first")
	default:
		return "", errors.Wrapf(ErrAmbiguousKeystore, "keystore directory %s holds %s; name one with --keystore-file or pass --select=first",
			dir, strings.Join(candidates, ", "))
	}
	return filepath.Join(dir, candidates[0]), nil
}
