package internal

import (
	"log/slog"
	"sync"
)

// ===== Store =====

// Store holds the catalog, the cart and the favorites list. It performs no
// input validation; callers check quantities against stock before adding.
type Store struct {
	mu        sync.RWMutex
	products  []Product
	cart      []CartLine
	favorites []Product
	log       *slog.Logger
}

// NewStore seeds a store with a copy of the given products.
func NewStore(seed []Product, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	products := make([]Product, len(seed))
	copy(products, seed)
	return &Store{products: products, log: log}
}

func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Product(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (s *Store) Cart() []CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

func (s *Store) Favorites() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// CartLine returns the first cart line for id.
func (s *Store) CartLine(id string) (CartLine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findLine(s.cart, id)
}

func (s *Store) InFavorites(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.favorites {
		if p.ID == id {
			return true
		}
	}
	return false
}

// AddToCart appends the line. Lines for the same product are not merged.
func (s *Store) AddToCart(line CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append(s.cart, line)
}

// RemoveFromCart drops every line for id.
func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cart[:0:0]
	for _, l := range s.cart {
		if l.Product.ID != id {
			kept = append(kept, l)
		}
	}
	s.cart = kept
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// UpdateCartQuantity sets the quantity of every line for id to qty clamped
// to [1, line stock].
func (s *Store) UpdateCartQuantity(id string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.cart {
		if l.Product.ID == id {
			s.cart[i].Quantity = max(1, min(qty, l.Product.Stock))
		}
	}
}

func (s *Store) AddToFavorites(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = append(s.favorites, p)
}

func (s *Store) RemoveFromFavorites(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.favorites[:0:0]
	for _, p := range s.favorites {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.favorites = kept
}

// UpdateStock decrements each product's stock by the quantity of its first
// cart line. Products with no line are left alone. Stock never drops below
// zero.
func (s *Store) UpdateStock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateStockLocked()
}

// CheckoutCart takes the cart off stock and empties it in one step, returning
// the lines that were charged. Cart changes from other goroutines land either
// before the call, and are charged, or after it, and stay in the new cart.
func (s *Store) CheckoutCart() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.cart
	s.updateStockLocked()
	s.cart = nil
	return lines
}

func (s *Store) updateStockLocked() {
	for i, p := range s.products {
		line, ok := findLine(s.cart, p.ID)
		if !ok {
			continue
		}
		next := max(0, p.Stock-line.Quantity)
		s.log.Info("stock updated",
			slog.String("product", p.Name),
			slog.Int("old_stock", p.Stock),
			slog.Int("new_stock", next))
		s.products[i].Stock = next
	}
}

func findLine(cart []CartLine, id string) (CartLine, bool) {
	for _, l := range cart {
		if l.Product.ID == id {
			return l, true
		}
	}
	return CartLine{}, false
}
