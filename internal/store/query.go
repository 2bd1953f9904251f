package store

import "strings"

// SortColumn enumerates the sortable book columns.
type SortColumn string

const (
	SortTitle          SortColumn = "title"
	SortAuthor         SortColumn = "author"
	SortPublisher      SortColumn = "publisher"
	SortClassification SortColumn = "classification"
	SortCategory       SortColumn = "category"
	SortPageCount      SortColumn = "pagecount"
	SortPrice          SortColumn = "price"
)

// SortDirection is the sort order for a catalog query.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortColumn matches case-insensitively against the column whitelist.
// The token must match exactly; padded or otherwise unrecognized input falls
// back to title rather than failing, so callers never see an invalid column.
func ParseSortColumn(value string) SortColumn {
	switch strings.ToLower(value) {
	case string(SortAuthor):
		return SortAuthor
	case string(SortPublisher):
		return SortPublisher
	case string(SortClassification):
		return SortClassification
	case string(SortCategory):
		return SortCategory
	case string(SortPageCount):
		return SortPageCount
	case string(SortPrice):
		return SortPrice
	default:
		return SortTitle
	}
}

// ParseSortDirection returns ascending only for an exact case-insensitive
// "asc"; every other value, typos and padding included, sorts descending.
func ParseSortDirection(value string) SortDirection {
	if strings.EqualFold(value, string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// NormalizePage clamps non-positive page numbers to the first page, so the
// skip formula never goes negative.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Skip computes the row offset for a page window: (page-1) * pageSize after
// clamping the page number.
func Skip(page, pageSize int) int {
	return (NormalizePage(page) - 1) * pageSize
}
