package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const tomlConfig = `
format = "json"
strict = true
rules = "1-10"
disable = ["DC-07"]
jobs = 2
color = "never"
cache_dir = ".cache/dccheck"
exclude = ["build/**"]

[severity]
DC-09 = "error"
`

const yamlConfig = `
format: json
strict: true
rules: "1-10"
disable: [DC-07]
jobs: 2
color: never
cache_dir: .cache/dccheck
exclude:
  - build/**
severity:
  DC-09: error
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"toml", ".dccheck.toml", tomlConfig},
		{"yaml", ".dccheck.yml", yamlConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, &Config{
				Format:   FormatJSON,
				Strict:   true,
				Rules:    "1-10",
				Disable:  []string{"DC-07"},
				Severity: map[string]string{"DC-09": "error"},
				Jobs:     2,
				Color:    ColorNever,
				CacheDir: ".cache/dccheck",
				Exclude:  []string{"build/**"},
			}, cfg)
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dccheck.yaml")
	writeFile(t, path, "strict: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Positive(t, cfg.Jobs)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dccheck.yml")
	writeFile(t, path, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatText, cfg.Format)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, file, content string
	}{
		{"unknown toml key", "a.toml", "formt = \"json\"\n"},
		{"unknown yaml key", "a.yml", "formt: json\n"},
		{"invalid toml", "b.toml", "format = \n"},
		{"invalid value", "c.yml", "format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestLoadUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dccheck.json")
	writeFile(t, path, "{}")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".dccheck.yml"), yamlConfig)
	nested := filepath.Join(root, "pkg", "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".dccheck.yml"), got)
}

func TestDiscoverPrefersTOML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".dccheck.yml"), yamlConfig)
	writeFile(t, filepath.Join(root, ".dccheck.toml"), tomlConfig)

	got, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".dccheck.toml"), got)
}

func TestDiscoverStopsAtRepositoryRoot(t *testing.T) {
	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".dccheck.toml"), tomlConfig)
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	got, err := Discover(repo)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	cfg, path, err := Resolve("", root)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Defaults(), cfg)

	explicit := filepath.Join(root, "custom.toml")
	writeFile(t, explicit, "format = \"json\"\n")
	cfg, path, err = Resolve(explicit, root)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, FormatJSON, cfg.Format)
}
