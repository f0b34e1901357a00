package database

import (
	"context"
	"errors"
	"fmt"

	"Mala_Admin/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxIDAttempts = 5

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.ErrNotFound
	}
	return err
}

func findByID[T any](ctx context.Context, db *gorm.DB, id uint64) (*T, error) {
	row := new(T)
	if err := db.WithContext(ctx).First(row, id).Error; err != nil {
		return nil, notFound(err)
	}
	return row, nil
}

// lockByID loads row id with SELECT ... FOR UPDATE. SQLite ignores the lock.
func lockByID[T any](tx *gorm.DB, id uint64, row *T) error {
	return notFound(tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(row, id).Error)
}

// mutate locks row id, lets fn change it and writes back columns in the same
// transaction. An error from fn rolls back and is returned unchanged.
func mutate[T any](ctx context.Context, db *gorm.DB, id uint64, columns []string, fn func(*T) error) (*T, error) {
	row := new(T)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, id, row); err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
		return tx.Model(row).Select(columns).Updates(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// uniqueValue draws values from gen until one is not yet used in column.
func uniqueValue[T any](tx *gorm.DB, column string, gen func() (string, error)) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		v, err := gen()
		if err != nil {
			return "", err
		}
		var n int64
		if err := tx.Model(new(T)).Where(column+" = ?", v).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return v, nil
		}
	}
	return "", fmt.Errorf("no unique %s after %d attempts", column, maxIDAttempts)
}
