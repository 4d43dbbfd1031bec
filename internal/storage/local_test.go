package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveReadRemove(t *testing.T) {
	store := newTestStore(t)
	data := []byte("fake image bytes")

	path, err := store.Save("art.png", data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "art.png"), path)

	got, err := store.Read("art.png")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Remove("art.png"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Remove("never_existed.png"))
}

func TestResolveRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"", "../escape.png", "a/b.png", `a\b.png`, "..", "foo..bar"} {
		t.Run(name, func(t *testing.T) {
			_, err := store.Path(name)
			assert.Error(t, err)
		})
	}
}

func TestUploadFilename(t *testing.T) {
	store := newTestStore(t)

	name := store.UploadFilename("my art?.png")
	assert.True(t, strings.HasSuffix(name, "_my_art_.png"))
	// 14-digit timestamp prefix
	assert.Len(t, strings.SplitN(name, "_", 2)[0], 14)

	// Same original uploaded twice in the same second still gets distinct names.
	assert.NotEqual(t, store.UploadFilename("my art?.png"), store.UploadFilename("my art?.png"))
}

func TestUploadFilenameWithConsecutiveDotsResolves(t *testing.T) {
	store := newTestStore(t)

	// A legal original name containing ".." must sanitize to something the
	// path resolver accepts.
	name := store.UploadFilename("my..art.png")
	_, err := store.Save(name, []byte("bytes"))
	require.NoError(t, err)
}

func TestGeneratedFilename(t *testing.T) {
	store := newTestStore(t)

	name := store.GeneratedFilename(42, "png")
	assert.True(t, strings.HasPrefix(name, "generated_42_"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	// Dotted extension and empty extension both normalize
	assert.True(t, strings.HasSuffix(store.GeneratedFilename(1, ".gif"), ".gif"))
	assert.True(t, strings.HasSuffix(store.GeneratedFilename(1, ""), ".jpg"))

	// Two names for the same user never collide
	assert.NotEqual(t, store.GeneratedFilename(1, "jpg"), store.GeneratedFilename(1, "jpg"))
}
