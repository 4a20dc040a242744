package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/skbags/storefront/internal/catalog"
	"github.com/skbags/storefront/pkg/types"
)

// Item is one cart line: a product snapshot plus the quantity chosen. The
// snapshot keeps the price the shopper saw even if the catalog refreshes
// underneath them.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Store holds one shopper's cart. At most one line per product id; lines keep
// insertion order. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items []Item
}

func NewStore() *Store {
	return &Store{}
}

// Add puts a product in the cart. A product already present gets its quantity
// incremented by one instead of a second line.
func (s *Store) Add(product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity++
			return
		}
	}
	s.items = append(s.items, Item{Product: product, Quantity: 1})
}

// UpdateQuantity sets the quantity for a product already in the cart. A
// quantity of zero or below removes the line. Unknown ids are ignored.
func (s *Store) UpdateQuantity(id types.FlexID, quantity int) {
	if quantity <= 0 {
		s.Remove(id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Product.ID == id {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// Remove drops a product's line. Removing an absent id is a no-op.
func (s *Store) Remove(id types.FlexID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a snapshot of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the total number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Total is the sum of price times quantity over all lines. Empty carts
// total zero.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

// Deposit is the upfront amount shown at checkout, half of the total.
func (s *Store) Deposit() decimal.Decimal {
	return s.Total().Div(decimal.NewFromInt(2))
}
