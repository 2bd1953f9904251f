// Package cart reconciles session-persisted carts with live catalog data.
//
// Carts are persisted as a compact JSON projection of their line items. On
// load the projection is re-linked to catalog records; items whose book no
// longer resolves stay in the cart priced by their captured unit price. A
// blob that cannot be parsed is treated as an empty cart: losing a broken
// cart beats failing the request.
package cart

import (
	"context"
	"encoding/json"

	"bookstore/internal/util"
	"bookstore/pkg/domain"
)

// ResolveFunc looks up a live catalog record by book ID.
type ResolveFunc func(ctx context.Context, bookID int) (domain.Book, bool, error)

// persistedItem is the projection stored per line. The resolved book is
// never persisted; it is re-derived on load. encoding/json matches field
// names case-insensitively, so older blobs with different casing decode.
type persistedItem struct {
	LineItemID     int   `json:"lineItemId"`
	BookID         int   `json:"bookId"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unitPriceCents"`
}

type persistedCart struct {
	Items []persistedItem `json:"items"`
}

// Load rebuilds a cart from its persisted blob.
//
// A nil/empty blob or one that fails to parse yields an empty cart. Each
// surviving item is re-resolved against the catalog; resolution failures
// leave the item with a nil Book and its unit-price fallback. Items missing
// a line item ID get maxSeen+1 upwards, in item order, so assignment is
// deterministic. A non-positive or repeated ID counts as missing, so a
// hand-edited blob cannot smuggle a duplicate through.
func Load(ctx context.Context, blob []byte, resolve ResolveFunc) (domain.Cart, error) {
	var cart domain.Cart
	if len(blob) == 0 {
		return cart, nil
	}

	var persisted persistedCart
	if err := json.Unmarshal(blob, &persisted); err != nil {
		util.LoggerFromContext(ctx).Warn("discarding malformed cart blob", "err", err)
		return domain.Cart{}, nil
	}

	maxID := 0
	seen := make(map[int]bool, len(persisted.Items))
	for _, p := range persisted.Items {
		if p.Quantity <= 0 {
			continue
		}
		item := domain.CartItem{
			LineItemID:     p.LineItemID,
			BookID:         p.BookID,
			Quantity:       p.Quantity,
			UnitPriceCents: p.UnitPriceCents,
		}
		if item.LineItemID <= 0 || seen[item.LineItemID] {
			item.LineItemID = 0
		} else {
			seen[item.LineItemID] = true
			if item.LineItemID > maxID {
				maxID = item.LineItemID
			}
		}
		if p.BookID > 0 && resolve != nil {
			book, ok, err := resolve(ctx, p.BookID)
			if err != nil {
				return domain.Cart{}, err
			}
			if ok {
				item.Book = &book
			}
		}
		cart.Items = append(cart.Items, item)
	}

	for i := range cart.Items {
		if cart.Items[i].LineItemID == 0 {
			maxID++
			cart.Items[i].LineItemID = maxID
		}
	}
	return cart, nil
}

// Save projects the cart to its persisted form.
//
// Unit prices are refreshed from the resolved book where one is attached;
// stale items keep their prior snapshot. Any line still without an ID gets
// the lowest positive integer not already in use, and the assignment is
// written back to the cart so repeated saves are idempotent.
func Save(cart *domain.Cart) ([]byte, error) {
	used := make(map[int]bool, len(cart.Items))
	for _, item := range cart.Items {
		if item.LineItemID != 0 {
			used[item.LineItemID] = true
		}
	}
	for i := range cart.Items {
		if cart.Items[i].LineItemID != 0 {
			continue
		}
		id := 1
		for used[id] {
			id++
		}
		used[id] = true
		cart.Items[i].LineItemID = id
	}

	persisted := persistedCart{Items: make([]persistedItem, 0, len(cart.Items))}
	for _, item := range cart.Items {
		unitPrice := item.UnitPriceCents
		if item.Book != nil {
			unitPrice = item.Book.PriceCents
		}
		persisted.Items = append(persisted.Items, persistedItem{
			LineItemID:     item.LineItemID,
			BookID:         item.BookID,
			Quantity:       item.Quantity,
			UnitPriceCents: unitPrice,
		})
	}
	return json.Marshal(persisted)
}
