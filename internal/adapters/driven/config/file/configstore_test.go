package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".supportbot", "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("threshold = [[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("rotation.mode", "shuffle"))
	require.NoError(t, store.Set("fallback.rate_per_minute", 6))
	require.NoError(t, store.Set("match.threshold", 0.6))
	require.NoError(t, store.Set("verbose", true))
	require.NoError(t, store.Set("tags", []string{"a", "b"}))

	assert.Equal(t, "shuffle", store.GetString("rotation.mode"))
	assert.Equal(t, 6, store.GetInt("fallback.rate_per_minute"))
	assert.InDelta(t, 0.6, store.GetFloat("match.threshold"), 1e-9)
	assert.InDelta(t, 6.0, store.GetFloat("fallback.rate_per_minute"), 1e-9)
	assert.True(t, store.GetBool("verbose"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("tags"))
}

func TestConfigStore_TypedGetters_WrongTypeOrMissing(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("match.threshold", "high"))

	assert.Zero(t, store.GetFloat("match.threshold"))
	assert.Zero(t, store.GetInt("match.threshold"))
	assert.False(t, store.GetBool("match.threshold"))
	assert.Empty(t, store.GetString("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_PersistsNestedKeys(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("match.threshold", 0.7))
	require.NoError(t, store.Set("llm.provider", "openai"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.InDelta(t, 0.7, reopened.GetFloat("match.threshold"), 1e-9)
	assert.Equal(t, "openai", reopened.GetString("llm.provider"))
}

func TestConfigStore_LoadsHandWrittenTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[match]\nthreshold = 1\naggregation = \"mean\"\n\n[fallback]\nrate_per_minute = 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, store.GetFloat("match.threshold"), 1e-9)
	assert.Equal(t, "mean", store.GetString("match.aggregation"))
	assert.Equal(t, 3, store.GetInt("fallback.rate_per_minute"))
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("llm.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestConfigStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("fallback.rate_per_minute", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("fallback.rate_per_minute")
		}()
	}
	wg.Wait()

	_, ok := store.Get("fallback.rate_per_minute")
	assert.True(t, ok)
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"match": map[string]any{"threshold": 0.5},
		"top":   "value",
	}, "")

	assert.Equal(t, map[string]any{"match.threshold": 0.5, "top": "value"}, flat)
}
