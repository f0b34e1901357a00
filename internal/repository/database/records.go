package database

import (
	"context"
	"io"

	"Mala_Admin/internal/query"

	"gorm.io/gorm"
)

// Records is the read side every family repository shares.
type Records[T any] struct {
	DB     *gorm.DB
	Family query.Family[T]
}

func (r Records[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	return findByID[T](ctx, r.DB, id)
}

func (r Records[T]) List(ctx context.Context, p query.Params) (*query.Result[T], error) {
	return query.List(ctx, r.DB, r.Family, p)
}

func (r Records[T]) All(ctx context.Context, p query.Params) ([]T, error) {
	return query.All(ctx, r.DB, r.Family, p)
}

func (r Records[T]) Export(ctx context.Context, p query.Params, w io.Writer) (int, error) {
	return query.Export(ctx, r.DB, r.Family, p, w)
}

func (r Records[T]) CountBy(ctx context.Context, column string) (map[string]int64, error) {
	return query.CountBy[T](ctx, r.DB, column)
}
