package store

import "bookstore/pkg/domain"

// BookModel is the GORM model for catalog rows.
type BookModel struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	Title          string `gorm:"not null;index" json:"title"`
	Author         string `gorm:"not null" json:"author"`
	Publisher      string `gorm:"not null" json:"publisher"`
	ISBN           string `gorm:"column:isbn" json:"isbn"`
	Classification string `json:"classification"`
	Category       string `gorm:"index" json:"category"`
	PageCount      int    `json:"pageCount"`
	PriceCents     int64  `gorm:"not null" json:"priceCents"`
}

func (m BookModel) toDomain() domain.Book {
	return domain.Book{
		ID:             m.ID,
		Title:          m.Title,
		Author:         m.Author,
		Publisher:      m.Publisher,
		ISBN:           m.ISBN,
		Classification: m.Classification,
		Category:       m.Category,
		PageCount:      m.PageCount,
		PriceCents:     m.PriceCents,
	}
}

func fromDomain(b domain.Book) BookModel {
	return BookModel{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Publisher:      b.Publisher,
		ISBN:           b.ISBN,
		Classification: b.Classification,
		Category:       b.Category,
		PageCount:      b.PageCount,
		PriceCents:     b.PriceCents,
	}
}
