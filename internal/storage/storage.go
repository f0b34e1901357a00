// Package storage is the media attachment gateway: it classifies uploaded
// files, stores them in a BlobStore under collision-free keys and cleans up
// blobs that records no longer reference.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"

	"github.com/google/uuid"
)

// MaxPublicUploadSize limit for files sent by unauthenticated users.
const MaxPublicUploadSize = 5 * 1024 * 1024

const MediaDocument = "document"

var ErrFileTooLarge = &pkg.ValidationError{Field: "file", Msg: "file exceeds the 5 MiB limit"}

var allowedExtensions = map[string]string{
	".jpg":  model.MediaImage,
	".jpeg": model.MediaImage,
	".png":  model.MediaImage,
	".gif":  model.MediaImage,
	".webp": model.MediaImage,
	".mp4":  model.MediaVideo,
	".avi":  model.MediaVideo,
	".mov":  model.MediaVideo,
	".wmv":  model.MediaVideo,
	".flv":  model.MediaVideo,
	".webm": model.MediaVideo,
	".pdf":  MediaDocument,
	".doc":  MediaDocument,
	".docx": MediaDocument,
}

// BlobStore is the external object storage.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
	KeyFromURL(url string) (string, bool)
}

// File an upload as received from the client.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

func FromMultipart(fh *multipart.FileHeader) File {
	return File{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// Upload a stored blob.
type Upload struct {
	URL       string
	Key       string
	MediaType string
}

// Classify maps a filename to image, video or document by its extension.
func Classify(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	kind, ok := allowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", pkg.ErrUnsupportedMediaType, ext)
	}
	return kind, nil
}

type Gateway struct {
	store   BlobStore
	logger  *slog.Logger
	metrics *pkg.Metrics
}

func NewGateway(store BlobStore, logger *slog.Logger, metrics *pkg.Metrics) *Gateway {
	if logger == nil {
		logger = pkg.DiscardLogger()
	}
	return &Gateway{store: store, logger: logger.With("component", "storage"), metrics: metrics}
}

// Upload stores an image or video under folder.
func (g *Gateway) Upload(ctx context.Context, f File, folder string) (*Upload, error) {
	return g.put(ctx, f, folder, model.MediaImage, model.MediaVideo)
}

// UploadPublic is Upload for unauthenticated callers: the 5 MiB limit is
// checked before the store is touched and accept lists the allowed kinds.
func (g *Gateway) UploadPublic(ctx context.Context, f File, folder string, accept ...string) (*Upload, error) {
	if f.Size > MaxPublicUploadSize {
		return nil, ErrFileTooLarge
	}
	if len(accept) == 0 {
		accept = []string{model.MediaImage}
	}
	return g.put(ctx, f, folder, accept...)
}

func (g *Gateway) put(ctx context.Context, f File, folder string, accept ...string) (*Upload, error) {
	kind, err := Classify(f.Name)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(accept, kind) {
		return nil, fmt.Errorf("%w: %s files are not accepted here", pkg.ErrUnsupportedMediaType, kind)
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	key := strings.Trim(folder, "/") + "/" + uuid.NewString() + ext

	body, err := f.Open()
	if err != nil {
		return nil, &pkg.StorageError{Op: "put", Key: key, Err: err}
	}
	defer body.Close()

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	err = g.store.Put(ctx, key, body, f.Size, contentType)
	g.metrics.ObserveBlob("put", err)
	if err != nil {
		g.logger.Error("blob upload failed", "key", key, "error", err)
		return nil, &pkg.StorageError{Op: "put", Key: key, Err: err}
	}
	return &Upload{URL: g.store.URL(key), Key: key, MediaType: kind}, nil
}

// Delete removes the blob behind url. Failures are logged and reported as
// false, never returned.
func (g *Gateway) Delete(ctx context.Context, url string) bool {
	if url == "" {
		return false
	}
	key, ok := g.store.KeyFromURL(url)
	if !ok {
		g.logger.Warn("blob url not owned by this store", "url", url)
		return false
	}
	// cleanup outlives the request that triggered it
	err := g.store.Delete(context.WithoutCancel(ctx), key)
	g.metrics.ObserveBlob("delete", err)
	if err != nil {
		g.logger.Error("blob delete failed", "key", key, "error", err)
		return false
	}
	return true
}

// Replace uploads f, runs commit with the new blob and only then deletes
// oldURL. When commit fails the new blob is deleted and the error returned;
// a failed delete of the old blob leaves an orphan that is only logged.
func (g *Gateway) Replace(ctx context.Context, oldURL string, f File, folder string, commit func(*Upload) error) (*Upload, error) {
	up, err := g.Upload(ctx, f, folder)
	if err != nil {
		return nil, err
	}
	if err := commit(up); err != nil {
		g.Delete(ctx, up.URL)
		return nil, err
	}
	if oldURL != "" && !g.Delete(ctx, oldURL) {
		g.logger.Warn("orphaned blob left after replace", "url", oldURL)
	}
	return up, nil
}
