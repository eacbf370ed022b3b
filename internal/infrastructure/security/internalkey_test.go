package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateInternalKeyGeneratesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internal_key")

	key, err := LoadOrCreateInternalKey(path)
	require.NoError(t, err)
	assert.Len(t, key.Value(), 64)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a second load reads the same key back
	reloaded, err := LoadOrCreateInternalKey(path)
	require.NoError(t, err)
	assert.Equal(t, key.Value(), reloaded.Value())
}

func TestInternalKeyVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internal_key")
	key, err := LoadOrCreateInternalKey(path)
	require.NoError(t, err)

	assert.True(t, key.Verify(key.Value()))
	assert.False(t, key.Verify("wrong"))
	assert.False(t, key.Verify(""))
}
