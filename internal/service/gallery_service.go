package service

import (
	"context"
	"io"
	"strings"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/query"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/storage"
)

const (
	galleryImageFolder = "gallery/images"
	galleryVideoFolder = "gallery/videos"
)

type GalleryService struct {
	repo  *database.GalleryRepository
	media *storage.Gateway
	*workflow
}

type GallerySummary struct {
	TotalItems  int64 `json:"total_items"`
	TotalImages int64 `json:"total_images"`
	TotalVideos int64 `json:"total_videos"`
}

// GalleryInput editable fields. On update a blank title, a nil description
// or a nil file leave the stored value as is.
type GalleryInput struct {
	Title       string
	Description *string
	File        *storage.File
}

func galleryFolder(filename string) string {
	if kind, _ := storage.Classify(filename); kind == model.MediaVideo {
		return galleryVideoFolder
	}
	return galleryImageFolder
}

func (s *GalleryService) Get(ctx context.Context, id uint64) (*model.GalleryItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GalleryService) List(ctx context.Context, p query.Params) (*query.Result[model.GalleryItem], error) {
	return s.repo.List(ctx, p)
}

func (s *GalleryService) Export(ctx context.Context, p query.Params, w io.Writer) (int, error) {
	return s.repo.Export(ctx, p, w)
}

// Public every item matching p, newest first.
func (s *GalleryService) Public(ctx context.Context, p query.Params) ([]model.GalleryItem, error) {
	return s.repo.All(ctx, p)
}

func (s *GalleryService) Summary(ctx context.Context) (*GallerySummary, error) {
	counts, err := s.repo.CountBy(ctx, "media_type")
	if err != nil {
		return nil, err
	}
	return &GallerySummary{
		TotalItems:  query.Sum(counts),
		TotalImages: counts[model.MediaImage],
		TotalVideos: counts[model.MediaVideo],
	}, nil
}

// Create uploads the file and inserts the item. When the insert fails the
// uploaded blob is removed again.
func (s *GalleryService) Create(ctx context.Context, in GalleryInput) (*model.GalleryItem, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, pkg.NewValidationError("title", "is required")
	}
	if in.File == nil {
		return nil, pkg.NewValidationError("file", "is required")
	}
	up, err := s.media.Upload(ctx, *in.File, galleryFolder(in.File.Name))
	if err != nil {
		return nil, err
	}
	item := &model.GalleryItem{
		Title:     title,
		MediaURL:  up.URL,
		MediaType: up.MediaType,
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.media.Delete(ctx, up.URL)
		return nil, err
	}
	s.logger.Info("gallery item created", "id", item.ID, "media_type", item.MediaType)
	return item, nil
}

// Update rewrites title and description and, when a file is given, swaps the
// media: the new blob is committed first and the old one deleted after.
func (s *GalleryService) Update(ctx context.Context, id uint64, in GalleryInput) (*model.GalleryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		item.Title = t
	}
	if in.Description != nil {
		item.Description = *in.Description
	}

	if in.File == nil {
		if err := s.repo.Save(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	oldURL := item.MediaURL
	_, err = s.media.Replace(ctx, oldURL, *in.File, galleryFolder(in.File.Name), func(up *storage.Upload) error {
		item.MediaURL = up.URL
		item.MediaType = up.MediaType
		return s.repo.Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the row, then attempts to delete its blob. The bool reports
// whether the blob went away.
func (s *GalleryService) Delete(ctx context.Context, id uint64) (bool, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return s.media.Delete(ctx, item.MediaURL), nil
}
