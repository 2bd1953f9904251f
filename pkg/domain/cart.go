package domain

// Cart is an ordered list of line items, one per distinct book. Order is
// insertion order and only matters for display.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) find(bookID int) *CartItem {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem merges by book: an existing line for the same book gets its
// quantity incremented, otherwise a new line is appended with the book's
// current price captured as the unit price. The line item ID is left unset
// until the reconciliation layer assigns one. A quantity of zero or less is
// a no-op.
func (c *Cart) AddItem(book Book, quantity int) {
	if quantity <= 0 {
		return
	}
	if item := c.find(book.ID); item != nil {
		item.Quantity += quantity
		return
	}
	c.Items = append(c.Items, CartItem{
		BookID:         book.ID,
		Book:           &book,
		Quantity:       quantity,
		UnitPriceCents: book.PriceCents,
	})
}

// RemoveItem drops the line for bookID if present.
func (c *Cart) RemoveItem(bookID int) {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity for bookID. A quantity of zero or less
// removes the line. Unknown bookIDs are ignored.
func (c *Cart) UpdateQuantity(bookID, quantity int) {
	item := c.find(bookID)
	if item == nil {
		return
	}
	if quantity <= 0 {
		c.RemoveItem(bookID)
		return
	}
	item.Quantity = quantity
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalCents sums all line totals.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotalCents()
	}
	return total
}

// TotalQuantity sums all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
