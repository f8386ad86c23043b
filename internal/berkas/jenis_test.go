package berkas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJenisSetDefault(t *testing.T) {
	set, err := LoadJenisSet("")
	require.NoError(t, err)
	assert.Equal(t, DefaultJenis, set.Labels())
	assert.True(t, set.Has("SK CPNS"))
	assert.False(t, set.Has("sk cpns"))
}

func TestLoadJenisSetFromYAML(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "jenis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jenis:\n  - KTP\n  - NPWP\n  - KTP\n  - \"  \"\n"), 0644))
	set, err := LoadJenisSet(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"KTP", "NPWP"}, set.Labels())

	empty := filepath.Join(dir, "kosong.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("jenis: []\n"), 0644))
	_, err = LoadJenisSet(empty)
	assert.Error(t, err)

	broken := filepath.Join(dir, "rusak.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("jenis: [KTP\n"), 0644))
	_, err = LoadJenisSet(broken)
	assert.Error(t, err)

	_, err = LoadJenisSet(filepath.Join(dir, "tidak-ada.yaml"))
	assert.Error(t, err)
}
