package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 34, cfg.Vector.Length)
	assert.True(t, cfg.DocumentImport())
	assert.Equal(t, FormatHashtron, cfg.Model.Format)
	assert.Equal(t, []int{15, 1}, cfg.Model.Layers)
	assert.Equal(t, float32(0.5), cfg.Threshold())
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
vector:
  length: 51
  document_import: false
model:
  path: model.json
  format: logistic
classifier:
  threshold: 0.7
logging:
  level: debug
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 51, cfg.Vector.Length)
	assert.False(t, cfg.DocumentImport())
	assert.Equal(t, "model.json", cfg.Model.Path)
	assert.Equal(t, FormatLogistic, cfg.Model.Format)
	assert.Empty(t, cfg.Model.Layers)
	assert.Equal(t, float32(0.7), cfg.Threshold())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejects(t *testing.T) {
	for _, doc := range []string{
		"vector: [",
		"vector:\n  length: -3\n",
		"model:\n  format: onnx\n",
		"model:\n  layers: [15, 2]\n",
		"model:\n  layers: [40, 1]\n",
		"model:\n  layers: [0, 1]\n",
		"logging:\n  format: xml\n",
	} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestZeroThresholdKept(t *testing.T) {
	cfg, err := Parse([]byte("classifier:\n  threshold: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, float32(0), cfg.Threshold())
}

func TestPremodulo(t *testing.T) {
	cfg, err := Parse([]byte("model:\n  path: m.json.lzw\n  premodulo: 4096\n"))
	require.NoError(t, err)
	assert.Equal(t, uint32(4096), cfg.Model.Premodulo)
	assert.Equal(t, uint32(0), Default().Model.Premodulo)
}
