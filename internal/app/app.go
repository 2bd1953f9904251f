package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bookstore/internal/cart"
	"bookstore/internal/store"
	"bookstore/internal/util"
	"bookstore/pkg/domain"
)

// DefaultPageSize matches the listing UI's page length.
const DefaultPageSize = 5

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration
	SeedFile      string

	// Injectable for tests; built from the fields above when nil.
	Catalog  store.Catalog
	Sessions cart.SessionStore
}

// App wires the catalog and the session cart store behind the API
// operations.
type App struct {
	catalog  store.Catalog
	sessions cart.SessionStore
}

// New constructs the application. Without a database URL the catalog lives
// in memory, and without a Redis address carts do too; both are meant for
// dev mode and tests only.
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	catalog := cfg.Catalog
	if catalog == nil {
		if cfg.DatabaseURL != "" {
			gc, err := NewSeededGormCatalog(cfg.DatabaseURL, cfg.SeedFile)
			if err != nil {
				return nil, err
			}
			catalog = gc
		} else {
			slog.Warn("no database URL configured, using in-memory catalog")
			mc := store.NewMemoryCatalog()
			if cfg.SeedFile != "" {
				books, err := store.ReadSeedFile(cfg.SeedFile)
				if err != nil {
					return nil, err
				}
				for _, b := range books {
					mc.Add(b)
				}
			}
			catalog = mc
		}
	}

	sessions := cfg.Sessions
	if sessions == nil {
		if cfg.RedisAddr != "" {
			sessions = cart.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL, catalog.Get)
		} else {
			slog.Warn("no Redis address configured, using in-memory session store")
			sessions = cart.NewMemorySessionStore(catalog.Get)
		}
	}

	return &App{catalog: catalog, sessions: sessions}, nil
}

// NewSeededGormCatalog opens the Postgres catalog and seeds it from seedFile
// when the table is empty and a path is set.
func NewSeededGormCatalog(dsn, seedFile string) (*store.GormCatalog, error) {
	gc, err := store.NewGormCatalog(dsn)
	if err != nil {
		return nil, fmt.Errorf("init postgres catalog: %w", err)
	}
	if seedFile != "" {
		if err := gc.SeedFromFile(context.Background(), seedFile); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}
	return gc, nil
}

// BookListing is the catalog listing response: one page of books plus the
// pagination info and the echoed sort/filter parameters.
type BookListing struct {
	Books            []domain.Book         `json:"books"`
	PaginationInfo   domain.PaginationInfo `json:"paginationInfo"`
	SortColumn       string                `json:"sortColumn"`
	SortDirection    string                `json:"sortDirection"`
	SelectedCategory string                `json:"selectedCategory,omitempty"`
}

// ListBooks runs the catalog query pipeline: filter, count, sort, page.
//
// sortColumn and sortDirection are normalized permissively (unknown column
// sorts by title, anything but "asc" sorts descending) and echoed back
// verbatim. The total always reflects the full filtered count, even when the
// requested page is past the end.
func (a *App) ListBooks(ctx context.Context, page, pageSize int, sortColumn, sortDirection, category string) (BookListing, error) {
	page = store.NormalizePage(page)
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	column := store.ParseSortColumn(sortColumn)
	direction := store.ParseSortDirection(sortDirection)

	total, err := a.catalog.Count(ctx, category)
	if err != nil {
		return BookListing{}, fmt.Errorf("count books: %w", err)
	}
	books, err := a.catalog.List(ctx, category, column, direction, store.Skip(page, pageSize), pageSize)
	if err != nil {
		return BookListing{}, fmt.Errorf("list books: %w", err)
	}

	return BookListing{
		Books:            books,
		PaginationInfo:   domain.NewPaginationInfo(page, pageSize, total),
		SortColumn:       sortColumn,
		SortDirection:    sortDirection,
		SelectedCategory: category,
	}, nil
}

// GetBook resolves one book by ID.
func (a *App) GetBook(ctx context.Context, id int) (domain.Book, error) {
	book, ok, err := a.catalog.Get(ctx, id)
	if err != nil {
		return domain.Book{}, fmt.Errorf("get book: %w", err)
	}
	if !ok {
		return domain.Book{}, ErrBookNotFound
	}
	return book, nil
}

// Categories lists the distinct categories present in the catalog.
func (a *App) Categories(ctx context.Context) ([]string, error) {
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CartItemView is a cart line as returned by the API.
type CartItemView struct {
	LineItemID     int          `json:"lineItemId"`
	BookID         int          `json:"bookId"`
	Book           *domain.Book `json:"book,omitempty"`
	Quantity       int          `json:"quantity"`
	UnitPriceCents int64        `json:"unitPriceCents"`
	LineTotalCents int64        `json:"lineTotalCents"`
}

// CartView is the cart as returned by the API.
type CartView struct {
	Items         []CartItemView `json:"items"`
	TotalCents    int64          `json:"totalCents"`
	TotalQuantity int            `json:"totalQuantity"`
}

func newCartView(c *domain.Cart) CartView {
	view := CartView{
		Items:         make([]CartItemView, 0, len(c.Items)),
		TotalCents:    c.TotalCents(),
		TotalQuantity: c.TotalQuantity(),
	}
	for _, item := range c.Items {
		view.Items = append(view.Items, CartItemView{
			LineItemID:     item.LineItemID,
			BookID:         item.BookID,
			Book:           item.Book,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents(),
		})
	}
	return view
}

// GetCart returns the session's current cart.
func (a *App) GetCart(ctx context.Context, sessionID string) (CartView, error) {
	c, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, fmt.Errorf("load cart: %w", err)
	}
	return newCartView(&c), nil
}

// AddToCart adds a book to the session's cart, merging into an existing line
// for the same book. The cart is left untouched when the book does not
// resolve.
func (a *App) AddToCart(ctx context.Context, sessionID string, bookID, quantity int) (CartView, error) {
	book, ok, err := a.catalog.Get(ctx, bookID)
	if err != nil {
		return CartView{}, fmt.Errorf("get book: %w", err)
	}
	if !ok {
		return CartView{}, ErrBookNotFound
	}
	return a.mutateCart(ctx, sessionID, "add", func(c *domain.Cart) {
		c.AddItem(book, quantity)
	})
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func (a *App) UpdateCartItem(ctx context.Context, sessionID string, bookID, quantity int) (CartView, error) {
	return a.mutateCart(ctx, sessionID, "update", func(c *domain.Cart) {
		c.UpdateQuantity(bookID, quantity)
	})
}

// RemoveFromCart drops a line from the session's cart.
func (a *App) RemoveFromCart(ctx context.Context, sessionID string, bookID int) (CartView, error) {
	return a.mutateCart(ctx, sessionID, "remove", func(c *domain.Cart) {
		c.RemoveItem(bookID)
	})
}

// ClearCart empties the session's cart.
func (a *App) ClearCart(ctx context.Context, sessionID string) (CartView, error) {
	return a.mutateCart(ctx, sessionID, "clear", func(c *domain.Cart) {
		c.Clear()
	})
}

// mutateCart is the load, mutate, save cycle behind every cart mutation.
// There is no lock around it: concurrent mutations on one session are
// last-write-wins on the blob, which the single-visitor session model
// accepts.
func (a *App) mutateCart(ctx context.Context, sessionID, op string, mutate func(*domain.Cart)) (CartView, error) {
	c, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, fmt.Errorf("load cart: %w", err)
	}
	mutate(&c)
	if err := a.sessions.Put(ctx, sessionID, &c); err != nil {
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}
	util.LoggerFromContext(ctx).Debug("cart mutated",
		"op", op,
		"session_id", sessionID,
		"items", len(c.Items),
		"total_cents", c.TotalCents(),
	)
	return newCartView(&c), nil
}
