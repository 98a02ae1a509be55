package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Rate     int    `json:"rate"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "a/swdeploy.local.json5", LocalPath("a/swdeploy.json5"))
	require.Equal(t, "config.local", LocalPath("config"))
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "swdeploy.json5")
	writeFile(t, name, `{
		// comments are allowed
		base_url: "https://scraperwiki.com",
		username: "alice",
		rate: 2,
	}`)
	writeFile(t, filepath.Join(dir, "swdeploy.local.json5"), `{ username: "bob", password: "hunter2" }`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl:  "https://scraperwiki.com",
		Username: "bob",
		Password: "hunter2",
		Rate:     2,
	}, cfg)
}

func TestReadConfigOnlyLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "swdeploy.local.json5"), `{ username: "bob" }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "swdeploy.json5"))
	require.NoError(t, err)
	require.Equal(t, "bob", cfg.Username)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "swdeploy.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "swdeploy.json5")
	writeFile(t, name, `{ username: `)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestFindRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	err := os.MkdirAll(nested, 0777)
	require.NoError(t, err)
	writeFile(t, filepath.Join(root, "a", "swdeploy.json5"), `{}`)

	found, err := FindRecursively(nested, "swdeploy.json5")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "a", "swdeploy.json5"), found)

	_, err = FindRecursively(nested, "does-not-exist.json5")
	require.ErrorIs(t, err, os.ErrNotExist)
}
