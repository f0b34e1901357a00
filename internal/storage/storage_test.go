package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFile(name, body string) File {
	return File{
		Name: name,
		Size: int64(len(body)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(body)), nil },
	}
}

func newLocalGateway(t *testing.T) (*Gateway, *LocalStore) {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8000/uploads/")
	require.NoError(t, err)
	return NewGateway(store, nil, nil), store
}

func blobPath(t *testing.T, store *LocalStore, url string) string {
	t.Helper()
	key, ok := store.KeyFromURL(url)
	require.True(t, ok)
	return filepath.Join(store.Dir(), filepath.FromSlash(key))
}

func TestClassify(t *testing.T) {
	for name, want := range map[string]string{
		"a.JPG": model.MediaImage, "b.webp": model.MediaImage,
		"c.mp4": model.MediaVideo, "d.WebM": model.MediaVideo,
		"e.pdf": MediaDocument,
	} {
		got, err := Classify(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	for _, name := range []string{"x.exe", "noext", "y.svg"} {
		_, err := Classify(name)
		assert.ErrorIs(t, err, pkg.ErrUnsupportedMediaType, name)
	}
}

func TestUploadAndDelete(t *testing.T) {
	g, store := newLocalGateway(t)
	ctx := t.Context()

	up, err := g.Upload(ctx, memFile("Holiday.PNG", "png-bytes"), "gallery/images")
	require.NoError(t, err)
	assert.Equal(t, model.MediaImage, up.MediaType)
	assert.True(t, strings.HasPrefix(up.Key, "gallery/images/"))
	assert.True(t, strings.HasSuffix(up.Key, ".png"))
	assert.Equal(t, "http://localhost:8000/uploads/"+up.Key, up.URL)

	data, err := os.ReadFile(blobPath(t, store, up.URL))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	again, err := g.Upload(ctx, memFile("Holiday.PNG", "png-bytes"), "gallery/images")
	require.NoError(t, err)
	assert.NotEqual(t, up.Key, again.Key, "keys never collide")

	assert.True(t, g.Delete(ctx, up.URL))
	_, err = os.Stat(blobPath(t, store, up.URL))
	assert.True(t, os.IsNotExist(err))

	assert.False(t, g.Delete(ctx, "https://elsewhere.example/x.png"))
	assert.False(t, g.Delete(ctx, ""))
}

func TestUploadRejectsUnsupported(t *testing.T) {
	g, _ := newLocalGateway(t)
	_, err := g.Upload(t.Context(), memFile("notes.pdf", "x"), "gallery")
	assert.ErrorIs(t, err, pkg.ErrUnsupportedMediaType)
	_, err = g.Upload(t.Context(), memFile("run.sh", "x"), "gallery")
	assert.ErrorIs(t, err, pkg.ErrUnsupportedMediaType)
}

func TestUploadPublicLimits(t *testing.T) {
	g, _ := newLocalGateway(t)
	big := File{
		Name: "photo.jpg",
		Size: MaxPublicUploadSize + 1,
		Open: func() (io.ReadCloser, error) { t.Fatal("store must not be touched"); return nil, nil },
	}
	_, err := g.UploadPublic(t.Context(), big, "membership/photos")
	require.ErrorIs(t, err, ErrFileTooLarge)
	var ve *pkg.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = g.UploadPublic(t.Context(), memFile("clip.mp4", "x"), "membership/photos")
	assert.ErrorIs(t, err, pkg.ErrUnsupportedMediaType, "photos must be images")

	up, err := g.UploadPublic(t.Context(), memFile("proof.pdf", "x"), "complaints/documents", model.MediaImage, MediaDocument)
	require.NoError(t, err)
	assert.Equal(t, MediaDocument, up.MediaType)
}

type failingStore struct {
	*LocalStore
	putErr    error
	deleteErr error
	deleted   []string
}

func (f *failingStore) Put(ctx context.Context, key string, body io.Reader, size int64, ct string) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.LocalStore.Put(ctx, key, body, size, ct)
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.LocalStore.Delete(ctx, key)
}

func TestUploadStorageError(t *testing.T) {
	local, err := NewLocalStore(t.TempDir(), "http://x/uploads")
	require.NoError(t, err)
	g := NewGateway(&failingStore{LocalStore: local, putErr: errors.New("bucket gone")}, nil, pkg.NewMetrics(nil))

	_, err = g.Upload(t.Context(), memFile("a.png", "x"), "gallery")
	require.ErrorIs(t, err, pkg.ErrStorage)
	var se *pkg.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "put", se.Op)
}

func TestDeleteFailureIsReportedNotRaised(t *testing.T) {
	local, err := NewLocalStore(t.TempDir(), "http://x/uploads")
	require.NoError(t, err)
	store := &failingStore{LocalStore: local, deleteErr: errors.New("denied")}
	g := NewGateway(store, nil, nil)

	assert.False(t, g.Delete(t.Context(), "http://x/uploads/gallery/a.png"))
	assert.Equal(t, []string{"gallery/a.png"}, store.deleted)
}

func TestReplace(t *testing.T) {
	g, store := newLocalGateway(t)
	ctx := t.Context()
	old, err := g.Upload(ctx, memFile("old.png", "old"), "gallery/images")
	require.NoError(t, err)

	var committed string
	up, err := g.Replace(ctx, old.URL, memFile("new.mp4", "new"), "gallery/videos", func(u *Upload) error {
		committed = u.URL
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, up.URL, committed)
	assert.NotEqual(t, old.URL, up.URL)
	assert.Equal(t, model.MediaVideo, up.MediaType)
	_, err = os.Stat(blobPath(t, store, old.URL))
	assert.True(t, os.IsNotExist(err), "old blob deleted")
	_, err = os.Stat(blobPath(t, store, up.URL))
	assert.NoError(t, err)
}

func TestReplaceCommitFailureKeepsOldBlob(t *testing.T) {
	g, store := newLocalGateway(t)
	ctx := t.Context()
	old, err := g.Upload(ctx, memFile("old.png", "old"), "gallery/images")
	require.NoError(t, err)

	var attempted string
	boom := errors.New("db down")
	_, err = g.Replace(ctx, old.URL, memFile("new.png", "new"), "gallery/images", func(u *Upload) error {
		attempted = u.URL
		return boom
	})
	require.ErrorIs(t, err, boom)
	_, err = os.Stat(blobPath(t, store, old.URL))
	assert.NoError(t, err, "old blob still referenced")
	_, err = os.Stat(blobPath(t, store, attempted))
	assert.True(t, os.IsNotExist(err), "new blob cleaned up")
}

func TestLocalKeyFromURLRejectsTraversal(t *testing.T) {
	_, store := newLocalGateway(t)
	_, ok := store.KeyFromURL("http://localhost:8000/uploads/../etc/passwd")
	assert.False(t, ok)
}
