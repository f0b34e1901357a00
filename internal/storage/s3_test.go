package storage

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()
	switch {
	case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "missing.png"):
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>not found</Message></Error>`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func TestS3Store(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	store, err := NewS3Store(t.Context(),
		WithBucket("media"),
		WithRegion("us-east-1"),
		WithEndpoint(srv.URL),
		WithPathStyle(true),
	)
	require.NoError(t, err)
	g := NewGateway(store, nil, nil)

	up, err := g.Upload(t.Context(), memFile("pic.jpg", "jpeg-bytes"), "gallery/images")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.URL, "https://media.s3.amazonaws.com/gallery/images/"))

	key, ok := store.KeyFromURL(up.URL)
	require.True(t, ok)
	assert.Equal(t, up.Key, key)

	assert.True(t, g.Delete(t.Context(), up.URL))
	assert.True(t, g.Delete(t.Context(), "https://media.s3.amazonaws.com/gallery/missing.png"), "missing object counts as deleted")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.requests, 3)
	assert.Equal(t, "PUT /media/"+up.Key, fake.requests[0])
	assert.Contains(t, fake.bodies[0], "jpeg-bytes")
	assert.Equal(t, "DELETE /media/"+up.Key, fake.requests[1])
}

func TestS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(t.Context())
	assert.Error(t, err)
}
