package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults, *cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
output_dir: docs
select: '"web" in roles'
preview:
  style: dark
  width: 80
`)
	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "docs", cfg.OutputDir)
	assert.Equal(t, `"web" in roles`, cfg.Select)
	assert.Equal(t, "dark", cfg.Preview.Style)
	assert.Equal(t, 80, cfg.Preview.Width)
}

func TestLoad_DiscoversFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("output_dir: out\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "output_dir: docs\npreview:\n  style: light\n")
	t.Setenv("AUTODOC_OUTPUT_DIR", "from-env")
	t.Setenv("AUTODOC_PREVIEW_STYLE", "notty")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
	assert.Equal(t, "notty", cfg.Preview.Style)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
	}{
		{"unknown key", "outptu_dir: docs\n", ""},
		{"wrong type", "verbose: sometimes\n", "verbose"},
		{"bad enum", "preview:\n  style: neon\n", "preview/style"},
		{"negative width", "preview:\n  width: -1\n", "preview/width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(New(), writeConfig(t, tt.body))
			require.Error(t, err)

			var inv *InvalidError
			require.True(t, errors.As(err, &inv), "got %T: %v", err, err)
			require.NotEmpty(t, inv.Errors)
			if tt.path != "" {
				assert.Equal(t, tt.path, inv.Errors[0].Path)
			}
		})
	}
}

func TestValidate_EmptyDocument(t *testing.T) {
	assert.Empty(t, Validate(nil))
	assert.Empty(t, Validate([]byte("# nothing\n")))
}

func TestGenerateJSONSchema(t *testing.T) {
	data, err := GenerateJSONSchema()
	require.NoError(t, err)

	var s map[string]any
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, schemaID, s["$id"])

	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"output_dir", "select", "verbose", "preview"} {
		assert.Contains(t, props, key)
	}
}
