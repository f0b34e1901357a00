package handler

import (
	"log/slog"
	"net/http"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type GalleryHandler struct {
	resource[model.GalleryItem]
	svc *service.GalleryService
}

func NewGalleryHandler(svc *service.GalleryService, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{
		resource: resource[model.GalleryItem]{family: database.GalleryFamily, svc: svc, logger: logger},
		svc:      svc,
	}
}

func (h *GalleryHandler) List(c *gin.Context)   { h.list(c) }
func (h *GalleryHandler) Get(c *gin.Context)    { h.get(c) }
func (h *GalleryHandler) Export(c *gin.Context) { h.export(c) }

func (h *GalleryHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func galleryInput(c *gin.Context) service.GalleryInput {
	in := service.GalleryInput{
		Title: c.PostForm("title"),
		File:  formFile(c, "file"),
	}
	if d, ok := c.GetPostForm("description"); ok {
		in.Description = &d
	}
	return in
}

// Create multipart title, description and file.
func (h *GalleryHandler) Create(c *gin.Context) {
	item, err := h.svc.Create(c.Request.Context(), galleryInput(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update multipart; every field is optional.
func (h *GalleryHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	item, err := h.svc.Update(c.Request.Context(), id, galleryInput(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	blobDeleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "gallery item deleted", "blob_deleted": blobDeleted})
}

// Public the unpaginated gallery, optionally filtered by media_type.
func (h *GalleryHandler) Public(c *gin.Context) {
	p, err := h.family.Parse(c.Request.URL.Query())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	items, err := h.svc.Public(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}
