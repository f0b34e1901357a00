// Package handler is the HTTP surface: it binds requests, calls the services
// and maps their errors to status codes.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/query"
	"Mala_Admin/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// writeError maps service errors to HTTP responses.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		verr *pkg.ValidationError
		serr *pkg.StorageError
	)
	switch {
	case errors.Is(err, pkg.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid email or password"})
	case errors.Is(err, pkg.ErrTokenRevoked), errors.Is(err, pkg.ErrTokenExpired), errors.Is(err, pkg.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
	case errors.Is(err, pkg.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"msg": verr.Error()})
	case errors.Is(err, pkg.ErrUnsupportedMediaType):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.As(err, &serr):
		logger.Error("storage failure", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "file storage failed"})
	default:
		logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
	}
}

// bindError turns a gin binding failure into a ValidationError naming the
// first offending field.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			return pkg.NewValidationError(field, "is required")
		case "email":
			return pkg.NewValidationError(field, "must be a valid email")
		case "oneof":
			return pkg.NewValidationError(field, "must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
		case tagPhone:
			return pkg.NewValidationError(field, "must be 10 digits")
		case tagAadhaar:
			return pkg.NewValidationError(field, "must be 12 digits")
		case tagLetters:
			return pkg.NewValidationError(field, "may contain letters and spaces only")
		case tagDMYDate:
			return pkg.NewValidationError(field, "must be in dd-mm-yyyy format")
		default:
			return pkg.NewValidationError(field, "failed %s validation", fe.Tag())
		}
	}
	return pkg.NewValidationError("body", "invalid params")
}

func parseID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, pkg.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

// formFile the named multipart file, nil when it was not sent.
func formFile(c *gin.Context, name string) *storage.File {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	f := storage.FromMultipart(fh)
	return &f
}

// listResponse is the paged list body, items under the family name.
func listResponse[T any](family string, res *query.Result[T]) gin.H {
	return gin.H{
		family:        res.Items,
		"total":       res.Total,
		"page":        res.Page,
		"limit":       res.Limit,
		"total_pages": res.TotalPages,
	}
}

// reader the read side every resource family offers.
type reader[T any] interface {
	Get(ctx context.Context, id uint64) (*T, error)
	List(ctx context.Context, p query.Params) (*query.Result[T], error)
	Export(ctx context.Context, p query.Params, w io.Writer) (int, error)
}

// resource serves list, get and export for one family.
type resource[T any] struct {
	family query.Family[T]
	svc    reader[T]
	logger *slog.Logger
}

func (r resource[T]) list(c *gin.Context) {
	p, err := r.family.Parse(c.Request.URL.Query())
	if err != nil {
		writeError(c, r.logger, err)
		return
	}
	res, err := r.svc.List(c.Request.Context(), p)
	if err != nil {
		writeError(c, r.logger, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(r.family.Name, res))
}

func (r resource[T]) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, r.logger, err)
		return
	}
	item, err := r.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, r.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r resource[T]) export(c *gin.Context) {
	p, err := r.family.Parse(c.Request.URL.Query())
	if err != nil {
		writeError(c, r.logger, err)
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_export.csv", r.family.Name))
	c.Status(http.StatusOK)
	n, err := r.svc.Export(c.Request.Context(), p, c.Writer)
	if err != nil {
		// headers are gone, the client sees a truncated file
		r.logger.Error("export failed", "family", r.family.Name, "rows", n, "error", err)
		return
	}
	r.logger.Info("export finished", "family", r.family.Name, "rows", n)
}

// runTransition applies fn to the :id record and answers with the result
// under key.
func runTransition[T any](c *gin.Context, logger *slog.Logger, msg, key string, fn func(context.Context, uint64) (*T, error)) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	item, err := fn(c.Request.Context(), id)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": msg, key: item})
}
