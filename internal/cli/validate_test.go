package cli

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/paramcomplete/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	var out bytes.Buffer
	err := Validate(writeManifest(t, giveManifest), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Configuration is valid")

	sum := sha256.Sum256([]byte(giveManifest))
	assert.Contains(t, out.String(), "Manifest hash: sha256:"+hex.EncodeToString(sum[:]))
}

func TestValidate_InvalidConfig(t *testing.T) {
	content := `static:
  range: "1|2"
commands:
  - name: give
    parameters:
      - name: sender
        injected: true
        completion: "@players"
`
	var out bytes.Buffer
	err := Validate(writeManifest(t, content), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	var validationErr *derrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "VALIDATION_ERROR", validationErr.Code())
	assert.Contains(t, out.String(), "shadows a built-in handler")
	assert.Contains(t, out.String(), "Found 2 error(s)")
}

func TestValidate_SchemaError(t *testing.T) {
	var out bytes.Buffer
	err := Validate(writeManifest(t, "unknown_key: true\n"), &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Configuration has errors")
}

func TestValidate_AutoDetect(t *testing.T) {
	manifest := writeManifest(t, giveManifest)
	chdir(t, filepath.Dir(manifest))

	var out bytes.Buffer
	require.NoError(t, Validate("", &out))
	assert.Contains(t, out.String(), ".paramcomplete.yml")
}

func TestValidate_NoConfigFound(t *testing.T) {
	chdir(t, t.TempDir())

	err := Validate("", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}
