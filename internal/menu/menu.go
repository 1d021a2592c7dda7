package menu

import (
	"fmt"
	"sort"
)

// Item is a single orderable pizza. Price is in cents.
type Item struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Catalog is the fixed, read-only menu. There is no admin surface for
// editing it; changing the menu means shipping a new build.
type Catalog struct {
	items map[int]Item
}

// Default returns the menu the shop actually sells.
func Default() *Catalog {
	return NewCatalog(
		Item{ID: 0, Name: "Margherita", Price: 899},
		Item{ID: 1, Name: "Pepperoni", Price: 1099},
		Item{ID: 2, Name: "Quattro Formaggi", Price: 1199},
		Item{ID: 3, Name: "Capricciosa", Price: 1149},
		Item{ID: 4, Name: "Hawaii", Price: 999},
		Item{ID: 5, Name: "Vegetariana", Price: 949},
	)
}

// NewCatalog builds a catalog from explicit items, mostly for tests.
func NewCatalog(items ...Item) *Catalog {
	m := make(map[int]Item, len(items))
	for _, item := range items {
		m[item.ID] = item
	}
	return &Catalog{items: m}
}

// Lookup returns the item and whether it exists.
func (c *Catalog) Lookup(id int) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns the menu sorted by id for stable rendering.
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Total prices the given parallel item/amount arrays in cents. Unknown
// items and mismatched arrays are errors, never a silent zero.
func (c *Catalog) Total(pizzas, amounts []int) (int, error) {
	if len(pizzas) != len(amounts) {
		return 0, fmt.Errorf("pizzas and amounts length mismatch: %d vs %d", len(pizzas), len(amounts))
	}

	total := 0
	for i, id := range pizzas {
		item, ok := c.items[id]
		if !ok {
			return 0, fmt.Errorf("unknown menu item %d", id)
		}
		if amounts[i] <= 0 {
			return 0, fmt.Errorf("amount for item %d must be greater than zero", id)
		}
		total += item.Price * amounts[i]
	}
	return total, nil
}
