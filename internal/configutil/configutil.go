package configutil

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// LocalPath returns the override path for a config file,
// `swdeploy.json5` becomes `swdeploy.local.json5`.
func LocalPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

func readJson5[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return true, nil
	}
	return true, json5.Unmarshal(contents, out)
}

// ReadConfig reads the json5 file at `name` and merges its local override
// over it, fields set in the override win. It returns os.ErrNotExist only
// if neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T

	foundDefault, err := readJson5(name, &out)
	if err != nil {
		return out, err
	}

	var override T
	localPath := LocalPath(name)
	foundLocal, err := readJson5(localPath, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Debug("merged config with local overrides", "local", localPath)
	}

	if !foundDefault && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FindRecursively walks up from dir until the filesystem root, returning the
// path of the first directory that holds `name` or its local override.
func FindRecursively(dir, name string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(current, name)
		if exists(candidate) || exists(LocalPath(candidate)) {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", os.ErrNotExist
		}
		current = parent
	}
}

// ReadRecursively is ReadConfig on the first `name` found walking up from the
// working directory. The returned path is where it was found.
func ReadRecursively[T any](name string) (T, string, error) {
	var out T
	cwd, err := os.Getwd()
	if err != nil {
		return out, "", err
	}
	path, err := FindRecursively(cwd, name)
	if err != nil {
		return out, "", err
	}
	out, err = ReadConfig[T](path)
	return out, path, err
}
