package store

import (
	"context"

	"bookstore/pkg/domain"
)

// CategoryAll is the sentinel filter value meaning no category filter. The
// match is an exact, case-sensitive literal.
const CategoryAll = "all"

// Catalog is the read-only book collection behind the query engine.
//
// List applies filter, sort and paging in that order; Count reports the
// filtered total independent of paging. Neither guarantees a stable order
// beyond the requested sort column: both implementations (Postgres ORDER BY
// and sort.Slice) leave ties in unspecified order.
type Catalog interface {
	Count(ctx context.Context, category string) (int64, error)
	List(ctx context.Context, category string, column SortColumn, direction SortDirection, skip, take int) ([]domain.Book, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id int) (domain.Book, bool, error)
}

func filtered(category string) bool {
	return category != "" && category != CategoryAll
}
