package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ContextAdminKey = "admin"
	ContextTokenKey = "token"
)

type Authorizer interface {
	Authorize(ctx context.Context, token string) (*model.Admin, error)
}

// BearerToken the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func AuthMiddleware(auth Authorizer, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			return
		}
		tokenStr, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			return
		}

		admin, err := auth.Authorize(c.Request.Context(), tokenStr)
		switch {
		case err == nil:
		case errors.Is(err, pkg.ErrTokenRevoked):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "token has been revoked"})
			return
		case errors.Is(err, pkg.ErrTokenExpired):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "token has expired"})
			return
		case errors.Is(err, pkg.ErrTokenInvalid):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		default:
			logger.Error("authorize failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Set(ContextTokenKey, tokenStr)
		c.Request = c.Request.WithContext(service.WithActor(c.Request.Context(), admin.Email))
		c.Next()
	}
}

// CurrentAdmin the admin set by AuthMiddleware.
func CurrentAdmin(c *gin.Context) (*model.Admin, bool) {
	v, ok := c.Get(ContextAdminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*model.Admin)
	return admin, ok
}

// CurrentToken the raw bearer token accepted by AuthMiddleware.
func CurrentToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextTokenKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok && token != ""
}
