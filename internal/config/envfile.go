package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"

	"github.com/subosito/gotenv"
)

// Set is the configuration set read from a key=value file. It is read-only after loading.
type Set map[string]string

// Get returns the value for key, or the empty string when the key is absent.
func (s Set) Get(key string) string {
	return s[key]
}

// Keys returns the keys of the set in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Environ renders the set as KEY=value entries, sorted by key, for a subprocess environment.
func (s Set) Environ() []string {
	env := make([]string, 0, len(s))
	for _, k := range s.Keys() {
		env = append(env, k+"="+s[k])
	}
	return env
}

// LoadFile reads a key=value configuration file. Blank lines and lines starting with '#'
// are ignored, values lose surrounding quotes and whitespace, unknown keys are kept.
// Lines are parsed one at a time, so a line gotenv rejects (MY-FLAG=1) is read as a plain
// key=value pair and a line with no '=' is skipped with a warning; neither hides later lines.
// A missing file yields a CONFIG_NOT_FOUND error.
func LoadFile(path string) (Set, error) {
	cleanPath := filepath.Clean(path)

	f, err := os.Open(cleanPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ErrConfigNotFound(cleanPath, err)
		}
		return nil, apperrors.ErrInvalidConfig(fmt.Sprintf("failed to read configuration file %s", cleanPath), err)
	}
	defer func() { _ = f.Close() }()

	set := make(Set)
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parsed, parseErr := gotenv.StrictParse(strings.NewReader(line))
		if parseErr != nil {
			key, value, ok := splitPair(line)
			if !ok {
				slog.Warn("skipping unparsable configuration line", "path", cleanPath, "line", lineNo, "error", parseErr)
				continue
			}
			parsed = gotenv.Env{key: value}
		}
		for key, value := range parsed {
			set[key] = strings.TrimSpace(value)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, apperrors.ErrInvalidConfig(fmt.Sprintf("failed to read configuration file %s", cleanPath), err)
	}

	slog.Debug("configuration file loaded", "path", cleanPath, "keys", len(set))

	return set, nil
}

// splitPair reads KEY=value without gotenv's key grammar. The key must be non-empty and
// free of whitespace; matching outer quotes are removed from the value.
func splitPair(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(strings.TrimPrefix(line, "export "), "=")
	key = strings.TrimSpace(key)
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// Environment returns the process environment overlaid with the configuration set,
// the view the original export-then-read flow had of its variables.
func Environment(set Set) map[string]string {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", constants.EnvVarSplitLimit)
		if len(parts) == constants.EnvVarSplitLimit {
			environ[parts[0]] = parts[1]
		}
	}
	for key, value := range set {
		environ[key] = value
	}
	return environ
}
