// Package query is the shared list/search/export engine for the admin
// resource families. A Family describes which columns are searchable,
// which request parameters filter exact columns and how rows render as CSV.
package query

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"Mala_Admin/internal/pkg"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// DateLayout used for every date column in exports.
	DateLayout = "2006-01-02 15:04:05"
)

// Filter maps a request parameter onto an exact-match column. When Allowed
// is non-empty any other value is rejected.
type Filter struct {
	Param   string
	Column  string
	Allowed []string
}

// Column is one CSV column.
type Column[T any] struct {
	Header string
	Value  func(*T) string
}

type Family[T any] struct {
	Name       string
	Searchable []string
	Filters    []Filter
	Columns    []Column[T]
}

type Params struct {
	Search  string
	Filters map[string]string
	Page    int
	Limit   int
}

type Result[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// Parse validates search, filter and paging parameters.
func (f Family[T]) Parse(values url.Values) (Params, error) {
	p := Params{
		Search:  strings.TrimSpace(values.Get("search")),
		Filters: make(map[string]string, len(f.Filters)),
		Page:    DefaultPage,
		Limit:   DefaultLimit,
	}
	for _, flt := range f.Filters {
		v := strings.TrimSpace(values.Get(flt.Param))
		if v == "" {
			continue
		}
		if len(flt.Allowed) > 0 && !slices.Contains(flt.Allowed, v) {
			return Params{}, pkg.NewValidationError(flt.Param, "must be one of %s", strings.Join(flt.Allowed, ", "))
		}
		p.Filters[flt.Param] = v
	}
	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Params{}, pkg.NewValidationError("page", "must be an integer >= 1")
		}
		p.Page = n
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxLimit {
			return Params{}, pkg.NewValidationError("limit", "must be an integer between 1 and %d", MaxLimit)
		}
		p.Limit = n
	}
	return p, nil
}

// escapeLike escapes LIKE metacharacters using '!' as the escape character.
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

func (f Family[T]) scope(db *gorm.DB, p Params) *gorm.DB {
	q := db.Model(new(T))
	if p.Search != "" && len(f.Searchable) > 0 {
		pattern := "%" + escapeLike(strings.ToLower(p.Search)) + "%"
		conds := make([]string, 0, len(f.Searchable))
		args := make([]any, 0, len(f.Searchable))
		for _, col := range f.Searchable {
			conds = append(conds, "LOWER("+col+") LIKE ? ESCAPE '!'")
			args = append(args, pattern)
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	for _, flt := range f.Filters {
		if v, ok := p.Filters[flt.Param]; ok {
			q = q.Where(flt.Column+" = ?", v)
		}
	}
	return q.Session(&gorm.Session{})
}

func newestFirst(q *gorm.DB) *gorm.DB {
	return q.Order("created_at DESC").Order("id DESC")
}

// List one page of the filtered set, newest first. Total is counted over the
// whole filtered set.
func List[T any](ctx context.Context, db *gorm.DB, f Family[T], p Params) (*Result[T], error) {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	q := f.scope(db.WithContext(ctx), p)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count %s: %w", f.Name, err)
	}
	items := make([]T, 0, p.Limit)
	if total > 0 {
		err := newestFirst(q).Offset((p.Page - 1) * p.Limit).Limit(p.Limit).Find(&items).Error
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", f.Name, err)
		}
	}
	return &Result[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}, nil
}

// TotalPages ceil(total/limit); 0 when there is nothing to page.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// All the whole filtered set without paging.
func All[T any](ctx context.Context, db *gorm.DB, f Family[T], p Params) ([]T, error) {
	items := make([]T, 0)
	if err := newestFirst(f.scope(db.WithContext(ctx), p)).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", f.Name, err)
	}
	return items, nil
}

// Export streams the filtered set as CSV and returns the number of data rows.
func Export[T any](ctx context.Context, db *gorm.DB, f Family[T], p Params, w io.Writer) (int, error) {
	cw := csv.NewWriter(w)
	header := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		header[i] = c.Header
	}
	if err := cw.Write(header); err != nil {
		return 0, err
	}

	rows, err := newestFirst(f.scope(db.WithContext(ctx), p)).Rows()
	if err != nil {
		return 0, fmt.Errorf("export %s: %w", f.Name, err)
	}
	defer rows.Close()

	n := 0
	record := make([]string, len(f.Columns))
	for rows.Next() {
		var item T
		if err := db.ScanRows(rows, &item); err != nil {
			return n, fmt.Errorf("export %s: %w", f.Name, err)
		}
		for i, c := range f.Columns {
			record[i] = c.Value(&item)
		}
		if err := cw.Write(record); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, fmt.Errorf("export %s: %w", f.Name, err)
	}
	cw.Flush()
	return n, cw.Error()
}

type bucket struct {
	Bucket string
	Total  int64
}

// CountBy grouped row counts keyed by the values of column.
func CountBy[T any](ctx context.Context, db *gorm.DB, column string) (map[string]int64, error) {
	var rows []bucket
	err := db.WithContext(ctx).Model(new(T)).
		Select(column + " AS bucket, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Bucket] = r.Total
	}
	return out, nil
}

// Sum of counts, the family total.
func Sum(counts map[string]int64) int64 {
	var n int64
	for _, v := range counts {
		n += v
	}
	return n
}

// FormatTime renders t in DateLayout, empty for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
