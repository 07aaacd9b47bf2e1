package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvStorageDir, dir)

	got, err := Storage()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestStorage_Default(t *testing.T) {
	t.Setenv(EnvStorageDir, "")

	got, err := Storage()
	require.NoError(t, err)
	assert.Equal(t, appDirName, filepath.Base(got), "default path should end in the app dir name")
	assert.True(t, filepath.IsAbs(got), "default path should be absolute")
}
