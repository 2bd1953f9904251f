package domain

// Book is a catalog record. The catalog owns these; the cart and query
// layers treat them as read-only snapshots.
type Book struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Publisher      string `json:"publisher"`
	ISBN           string `json:"isbn"`
	Classification string `json:"classification"`
	Category       string `json:"category"`
	PageCount      int    `json:"pageCount"`
	PriceCents     int64  `json:"priceCents"`
}

// CartItem is one cart line for a distinct book.
//
// Book is the resolved catalog snapshot and is nil after deserialization
// until reconciliation re-resolves it. UnitPriceCents is the price captured
// when the item was added and prices the line when Book cannot be resolved.
type CartItem struct {
	LineItemID     int   `json:"lineItemId"`
	BookID         int   `json:"bookId"`
	Book           *Book `json:"book,omitempty"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unitPriceCents"`
}

// LineTotalCents prices the line from the resolved book when available,
// falling back to the captured unit price otherwise.
func (i CartItem) LineTotalCents() int64 {
	if i.Book != nil {
		return i.Book.PriceCents * int64(i.Quantity)
	}
	return i.UnitPriceCents * int64(i.Quantity)
}

// PaginationInfo describes one page window over a filtered result set.
type PaginationInfo struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
}

// NewPaginationInfo computes the derived page count. TotalPages is zero when
// nothing matched.
func NewPaginationInfo(currentPage, itemsPerPage int, totalItems int64) PaginationInfo {
	info := PaginationInfo{
		CurrentPage:  currentPage,
		ItemsPerPage: itemsPerPage,
		TotalItems:   totalItems,
	}
	if totalItems > 0 && itemsPerPage > 0 {
		info.TotalPages = int((totalItems + int64(itemsPerPage) - 1) / int64(itemsPerPage))
	}
	return info
}
