package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 512, cfg.MaxCallDepth)
	require.True(t, cfg.Color)
	require.Equal(t, "normal", cfg.Telemetry)
}

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeTemp(t, "novalang.yaml", "maxCallDepth: 128\ncolor: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 128, cfg.MaxCallDepth)
	require.False(t, cfg.Color)
	require.Equal(t, "normal", cfg.Telemetry, "fields absent from the file fall back to Default()")
}

func TestLoadEmptyFileReturnsDefault(t *testing.T) {
	path := writeTemp(t, ".novalangrc", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownProperty(t *testing.T) {
	path := writeTemp(t, "novalang.yaml", "maxCallDepth: 64\nnotAField: true\n")

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed validation")
}

func TestLoadRejectsInvalidTelemetryEnum(t *testing.T) {
	path := writeTemp(t, "novalang.yaml", "telemetry: chatty\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidateArgsNilSchemaAlwaysPasses(t *testing.T) {
	require.NoError(t, ValidateArgs(nil, []any{"whatever"}))
}

func TestValidateArgsEnforcesSchema(t *testing.T) {
	schema := map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "number"},
		"minItems": 1,
	}

	require.NoError(t, ValidateArgs(schema, []any{1.0}))

	err := ValidateArgs(schema, []any{"not a number"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "argument validation failed")
}
