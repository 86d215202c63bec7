package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindEnvFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "cmd", "server")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("APP_ENV=test\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cmd", "local.env"), []byte("APP_ENV=local\n"), 0o600))
	t.Chdir(nested)

	got, err := findEnvFile("")
	require.NoError(t, err)
	assert.Equal(t, ".env", filepath.Base(got))
	assert.Equal(t, filepath.Base(root), filepath.Base(filepath.Dir(got)))

	got, err = findEnvFile("local.env")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("cmd", "local.env"), filepath.Join(filepath.Base(filepath.Dir(got)), filepath.Base(got)))

	_, err = findEnvFile("no-such-file-7f3a.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
