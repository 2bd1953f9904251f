package store

import "testing"

func TestParseSortColumn(t *testing.T) {
	tests := []struct {
		in   string
		want SortColumn
	}{
		{"title", SortTitle},
		{"Title", SortTitle},
		{"AUTHOR", SortAuthor},
		{"publisher", SortPublisher},
		{"classification", SortClassification},
		{"category", SortCategory},
		{"PageCount", SortPageCount},
		{"price", SortPrice},
		// Anything off the whitelist falls back to title; a padded token is
		// not a whitelist member.
		{" price ", SortTitle},
		{"isbn", SortTitle},
		{"", SortTitle},
		{"rating", SortTitle},
	}
	for _, tc := range tests {
		if got := ParseSortColumn(tc.in); got != tc.want {
			t.Fatalf("ParseSortColumn(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseSortDirectionOnlyExactAscIsAscending(t *testing.T) {
	tests := []struct {
		in   string
		want SortDirection
	}{
		{"asc", SortAsc},
		{"ASC", SortAsc},
		{"Asc", SortAsc},
		{"desc", SortDesc},
		{"descending", SortDesc},
		{"ascending", SortDesc},
		{"acs", SortDesc},
		// Padding breaks the exact match, so these sort descending too.
		{" asc ", SortDesc},
		{"asc\t", SortDesc},
		{"", SortDesc},
	}
	for _, tc := range tests {
		if got := ParseSortDirection(tc.in); got != tc.want {
			t.Fatalf("ParseSortDirection(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSkip(t *testing.T) {
	if got := Skip(1, 5); got != 0 {
		t.Fatalf("page 1 skip = %d, want 0", got)
	}
	if got := Skip(3, 5); got != 10 {
		t.Fatalf("page 3 skip = %d, want 10", got)
	}
	// Non-positive pages clamp to page 1.
	if got := Skip(0, 5); got != 0 {
		t.Fatalf("page 0 skip = %d, want 0", got)
	}
	if got := Skip(-2, 5); got != 0 {
		t.Fatalf("page -2 skip = %d, want 0", got)
	}
}
