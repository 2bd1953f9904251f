package store

import (
	"context"
	"sort"
	"sync"

	"bookstore/pkg/domain"
)

// MemoryCatalog keeps the catalog in-process for dev mode and tests. It runs
// the same filter, count, sort, page pipeline as the SQL catalog.
type MemoryCatalog struct {
	mu    sync.RWMutex
	books []domain.Book
}

// NewMemoryCatalog initializes an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{}
}

// Add appends a book. Seeding only; the catalog is read-only afterwards.
func (m *MemoryCatalog) Add(book domain.Book) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books = append(m.books, book)
}

func (m *MemoryCatalog) matching(category string) []domain.Book {
	res := make([]domain.Book, 0, len(m.books))
	for _, b := range m.books {
		if filtered(category) && b.Category != category {
			continue
		}
		res = append(res, b)
	}
	return res
}

// Count reports the filtered total, independent of paging.
func (m *MemoryCatalog) Count(_ context.Context, category string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.matching(category))), nil
}

// List returns one page of the filtered, sorted collection.
func (m *MemoryCatalog) List(_ context.Context, category string, column SortColumn, direction SortDirection, skip, take int) ([]domain.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	books := m.matching(category)
	less := lessFunc(column)
	sort.Slice(books, func(i, j int) bool {
		if direction == SortAsc {
			return less(books[i], books[j])
		}
		return less(books[j], books[i])
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= len(books) || take <= 0 {
		return []domain.Book{}, nil
	}
	end := skip + take
	if end > len(books) {
		end = len(books)
	}
	return books[skip:end], nil
}

// Categories returns the distinct categories present, alphabetically.
func (m *MemoryCatalog) Categories(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{}, len(m.books))
	categories := make([]string, 0, len(m.books))
	for _, b := range m.books {
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		categories = append(categories, b.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// Get resolves a single book by ID.
func (m *MemoryCatalog) Get(_ context.Context, id int) (domain.Book, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.books {
		if b.ID == id {
			return b, true, nil
		}
	}
	return domain.Book{}, false, nil
}

func lessFunc(column SortColumn) func(a, b domain.Book) bool {
	switch column {
	case SortAuthor:
		return func(a, b domain.Book) bool { return a.Author < b.Author }
	case SortPublisher:
		return func(a, b domain.Book) bool { return a.Publisher < b.Publisher }
	case SortClassification:
		return func(a, b domain.Book) bool { return a.Classification < b.Classification }
	case SortCategory:
		return func(a, b domain.Book) bool { return a.Category < b.Category }
	case SortPageCount:
		return func(a, b domain.Book) bool { return a.PageCount < b.PageCount }
	case SortPrice:
		return func(a, b domain.Book) bool { return a.PriceCents < b.PriceCents }
	default:
		return func(a, b domain.Book) bool { return a.Title < b.Title }
	}
}
