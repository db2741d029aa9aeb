package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/c360/ringbuf/errors"
)

func TestCheckPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative yaml", "testdata/base.yaml", false},
		{"relative with inner parent", "testdata/../testdata/base.yaml", false},
		{"absolute", filepath.Join(t.TempDir(), "cfg.yml"), false},
		{"empty", "", true},
		{"escapes cwd", "../cfg.yaml", true},
		{"wrong extension", "testdata/cfg.toml", true},
		{"too long", strings.Repeat("a", maxPathLen) + ".json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadConfigFile_Limits(t *testing.T) {
	dir := t.TempDir()

	_, err := readConfigFile(dir + ".json")
	assert.ErrorIs(t, err, errors.ErrConfigNotFound)

	sub := filepath.Join(dir, "dir.yaml")
	require.NoError(t, os.Mkdir(sub, 0o700))
	_, err = readConfigFile(sub)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)

	big := filepath.Join(dir, "big.json")
	require.NoError(t, os.WriteFile(big, make([]byte, maxConfigSize+1), 0o600))
	_, err = readConfigFile(big)
	assert.ErrorIs(t, err, errors.ErrResourceExhausted)
}

func TestWriteConfigFile_TooLarge(t *testing.T) {
	err := writeConfigFile(filepath.Join(t.TempDir(), "big.yaml"), make([]byte, maxConfigSize+1))
	assert.ErrorIs(t, err, errors.ErrResourceExhausted)
}

func TestCheckEnvValue(t *testing.T) {
	assert.NoError(t, checkEnvValue("K", ""))
	assert.NoError(t, checkEnvValue("K", "nats://a:4222,nats://b:4222"))
	assert.ErrorIs(t, checkEnvValue("K", "a\x00b"), errors.ErrInvalidConfig)
	assert.ErrorIs(t, checkEnvValue("K", strings.Repeat("x", maxEnvVarLen+1)), errors.ErrInvalidConfig)
}

func TestCheckNesting(t *testing.T) {
	deepJSON := strings.Repeat("[", maxNesting+1) + strings.Repeat("]", maxNesting+1)
	okJSON := strings.Repeat("[", maxNesting) + strings.Repeat("]", maxNesting)

	assert.NoError(t, checkJSONNesting([]byte(okJSON)))
	assert.NoError(t, checkJSONNesting([]byte(`{"s": "[[[[{{{{"}`)))
	assert.ErrorIs(t, checkJSONNesting([]byte(deepJSON)), errors.ErrInvalidConfig)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(deepJSON), &doc))
	assert.ErrorIs(t, checkYAMLNesting(&doc), errors.ErrInvalidConfig)

	doc = yaml.Node{}
	require.NoError(t, yaml.Unmarshal([]byte("rings:\n  default:\n    capacity: 3\n"), &doc))
	assert.NoError(t, checkYAMLNesting(&doc))
}

func TestLoader_RejectsDeepJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep.json")
	body := `{"x": ` + strings.Repeat("[", maxNesting) + strings.Repeat("]", maxNesting) + `}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	_, err := NewLoader().LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
}
