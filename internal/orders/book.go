// Package orders keeps the in-memory order book and maps orders to and from
// GalacticBuf objects.
package orders

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/galacticbuf/errs"
)

// Order is a resting order for one delivery window.
type Order struct {
	ID            string
	Price         int64
	Quantity      int64
	DeliveryStart int64
	DeliveryEnd   int64
}

// Book is a set of orders keyed by ID. It is safe for concurrent use.
type Book struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewBook() *Book {
	return &Book{orders: make(map[string]Order)}
}

// Add inserts o, failing with errs.ErrOrderExists on a duplicate ID.
func (b *Book) Add(o Order) error {
	if o.ID == "" {
		return fmt.Errorf("%w: order_id", errs.ErrMissingField)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.orders[o.ID]; ok {
		return fmt.Errorf("%w: %q", errs.ErrOrderExists, o.ID)
	}
	b.orders[o.ID] = o

	return nil
}

// Remove deletes the order with the given ID.
func (b *Book) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.orders[id]; !ok {
		return fmt.Errorf("%w: %q", errs.ErrOrderNotFound, id)
	}
	delete(b.orders, id)

	return nil
}

// ByWindow returns the orders whose delivery window equals [start, end]
// exactly, cheapest first. Equal prices are ordered by ID.
func (b *Book) ByWindow(start, end int64) []Order {
	b.mu.RLock()
	matches := make([]Order, 0)
	for _, o := range b.orders {
		if o.DeliveryStart == start && o.DeliveryEnd == end {
			matches = append(matches, o)
		}
	}
	b.mu.RUnlock()

	slices.SortFunc(matches, func(a, b Order) int {
		if c := cmp.Compare(a.Price, b.Price); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return matches
}

func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.orders)
}
