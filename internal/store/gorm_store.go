package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bookstore/pkg/domain"
)

// GormCatalog implements Catalog on GORM + Postgres. Filtering, counting,
// sorting and paging all run in SQL.
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog opens the DB and runs auto-migration.
func NewGormCatalog(dsn string) (*GormCatalog, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&BookModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormCatalog{db: db}, nil
}

// Count reports the filtered total, independent of paging.
func (c *GormCatalog) Count(ctx context.Context, category string) (int64, error) {
	q := c.db.WithContext(ctx).Model(&BookModel{})
	if filtered(category) {
		q = q.Where("category = ?", category)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

// List returns one page of the filtered, sorted collection.
func (c *GormCatalog) List(ctx context.Context, category string, column SortColumn, direction SortDirection, skip, take int) ([]domain.Book, error) {
	q := c.db.WithContext(ctx).Model(&BookModel{})
	if filtered(category) {
		q = q.Where("category = ?", category)
	}
	// Column and direction come from closed enums, safe to interpolate.
	q = q.Order(fmt.Sprintf("%s %s", sortColumnSQL(column), direction))
	if skip > 0 {
		q = q.Offset(skip)
	}
	var models []BookModel
	if err := q.Limit(take).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	books := make([]domain.Book, 0, len(models))
	for _, m := range models {
		books = append(books, m.toDomain())
	}
	return books, nil
}

// Categories returns the distinct categories present, alphabetically.
func (c *GormCatalog) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.db.WithContext(ctx).
		Model(&BookModel{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get resolves a single book by ID.
func (c *GormCatalog) Get(ctx context.Context, id int) (domain.Book, bool, error) {
	var m BookModel
	err := c.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Book{}, false, nil
	}
	if err != nil {
		return domain.Book{}, false, fmt.Errorf("get book: %w", err)
	}
	return m.toDomain(), true, nil
}

// SeedFromFile loads books from a JSON array file when the table is empty.
// The catalog stays read-only at runtime; this is the only write path.
func (c *GormCatalog) SeedFromFile(ctx context.Context, path string) error {
	var total int64
	if err := c.db.WithContext(ctx).Model(&BookModel{}).Count(&total).Error; err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if total > 0 {
		return nil
	}
	books, err := ReadSeedFile(path)
	if err != nil {
		return err
	}
	models := make([]BookModel, 0, len(books))
	for _, b := range books {
		models = append(models, fromDomain(b))
	}
	if len(models) == 0 {
		return nil
	}
	if err := c.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("seed books: %w", err)
	}
	return nil
}

// ReadSeedFile parses a JSON array of books.
func ReadSeedFile(path string) ([]domain.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return books, nil
}

func sortColumnSQL(column SortColumn) string {
	switch column {
	case SortAuthor:
		return "author"
	case SortPublisher:
		return "publisher"
	case SortClassification:
		return "classification"
	case SortCategory:
		return "category"
	case SortPageCount:
		return "page_count"
	case SortPrice:
		return "price_cents"
	default:
		return "title"
	}
}
