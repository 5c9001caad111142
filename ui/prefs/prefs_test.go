package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", prefsFile)

	p := LoadFrom(path)
	assert.Equal(t, "assets", p.StringWithFallback(KeyAssetsDir, "assets"))
	assert.Equal(t, 200.0, p.FloatWithFallback(KeyDPI, 200))

	p.SetString(KeyAssetsDir, "/srv/photos")
	p.SetFloat(KeyDPI, 300)
	require.NoError(t, p.Save())

	q := LoadFrom(path)
	assert.Equal(t, "/srv/photos", q.StringWithFallback(KeyAssetsDir, "assets"))
	assert.Equal(t, 300.0, q.FloatWithFallback(KeyDPI, 200))
	assert.Equal(t, path, q.Path())
}

func TestCorruptFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), prefsFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	p := LoadFrom(path)
	assert.Equal(t, "x", p.StringWithFallback(KeyOutputDir, "x"))
}

func TestEmptyStringFallsBack(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), prefsFile))
	p.SetString(KeyRequestDir, "")
	assert.Equal(t, ".", p.StringWithFallback(KeyRequestDir, "."))
}
