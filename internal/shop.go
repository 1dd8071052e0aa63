package internal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Shop runs the shopper-facing flows on top of a Store: catalog browsing,
// validated add-to-cart with duplicate prompts, quantity steps and the mock
// checkout.
type Shop struct {
	store    *Store
	verifier *CodeVerifier
	receipts ReceiptSink
	currency string
	log      *slog.Logger

	checkoutMu sync.Mutex
	now        func() time.Time
}

type ShopOptions struct {
	Currency string
	Verifier *CodeVerifier
	Receipts ReceiptSink
	Logger   *slog.Logger
}

func NewShop(store *Store, opts ShopOptions) *Shop {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Receipts == nil {
		opts.Receipts = NewMemoryReceipts(DefaultConfig().Receipts.Keep)
	}
	return &Shop{
		store:    store,
		verifier: opts.Verifier,
		receipts: opts.Receipts,
		currency: opts.Currency,
		log:      opts.Logger,
		now:      time.Now,
	}
}

// CatalogItem is a product together with its availability label.
type CatalogItem struct {
	Product
	StockLabel string `json:"stock_label"`
}

type CartView struct {
	Lines []CartLine `json:"lines"`
	Total Money      `json:"total"`
}

type CheckoutResult struct {
	Order Order  `json:"order"`
	Next  string `json:"next"`
}

func (s *Shop) Catalog() []CatalogItem {
	products := s.store.Products()
	items := make([]CatalogItem, len(products))
	for i, p := range products {
		items[i] = CatalogItem{Product: p, StockLabel: StockLabel(p.Stock)}
	}
	return items
}

func (s *Shop) Detail(id string) (CatalogItem, error) {
	p, ok := s.store.Product(id)
	if !ok {
		return CatalogItem{}, ErrProductNotFound
	}
	return CatalogItem{Product: p, StockLabel: StockLabel(p.Stock)}, nil
}

// AddToCart validates rawQty against the product's live stock and adds a line.
// If the product is already in the cart the call fails with ErrAlreadyInCart
// unless confirm is set, in which case the old lines are replaced.
func (s *Shop) AddToCart(id, rawQty string, confirm bool) (CartLine, error) {
	p, ok := s.store.Product(id)
	if !ok {
		return CartLine{}, ErrProductNotFound
	}
	qty, err := ParseQuantity(rawQty)
	if err != nil {
		return CartLine{}, err
	}
	if qty > p.Stock {
		return CartLine{}, &StockLimitError{Max: p.Stock}
	}
	line := CartLine{Product: p, Quantity: qty}
	if _, exists := s.store.CartLine(id); exists {
		if !confirm {
			return CartLine{}, &duplicateError{sentinel: ErrAlreadyInCart, name: p.Name, where: "the cart"}
		}
		s.store.RemoveFromCart(id)
	}
	s.store.AddToCart(line)
	s.log.Debug("added to cart", slog.String("product", p.Name), slog.Int("quantity", qty))
	return line, nil
}

func (s *Shop) RemoveFromCart(id string) { s.store.RemoveFromCart(id) }

func (s *Shop) ClearCart() { s.store.ClearCart() }

func (s *Shop) Cart() CartView {
	lines := s.store.Cart()
	return CartView{Lines: lines, Total: Total(lines, s.currency)}
}

// SetQuantity clamps qty to the line's stock.
func (s *Shop) SetQuantity(id string, qty int) (CartLine, error) {
	if _, ok := s.store.CartLine(id); !ok {
		return CartLine{}, ErrNotInCart
	}
	s.store.UpdateCartQuantity(id, qty)
	line, _ := s.store.CartLine(id)
	return line, nil
}

func (s *Shop) IncreaseQuantity(id string) (CartLine, error) {
	line, ok := s.store.CartLine(id)
	if !ok {
		return CartLine{}, ErrNotInCart
	}
	return s.SetQuantity(id, line.Quantity+1)
}

// DecreaseQuantity steps the quantity down, never below one.
func (s *Shop) DecreaseQuantity(id string) (CartLine, error) {
	line, ok := s.store.CartLine(id)
	if !ok {
		return CartLine{}, ErrNotInCart
	}
	if line.Quantity <= 1 {
		return line, nil
	}
	return s.SetQuantity(id, line.Quantity-1)
}

func (s *Shop) Favorites() []Product { return s.store.Favorites() }

// AddToFavorites follows the same prompt rules as AddToCart.
func (s *Shop) AddToFavorites(id string, confirm bool) (Product, error) {
	p, ok := s.store.Product(id)
	if !ok {
		return Product{}, ErrProductNotFound
	}
	if s.store.InFavorites(id) {
		if !confirm {
			return Product{}, &duplicateError{sentinel: ErrAlreadyInFavorites, name: p.Name, where: "favorites"}
		}
		s.store.RemoveFromFavorites(id)
	}
	s.store.AddToFavorites(p)
	return p, nil
}

func (s *Shop) RemoveFromFavorites(id string) { s.store.RemoveFromFavorites(id) }

// Checkout completes the mock payment. A wrong code leaves everything as it
// was. A right one takes the cart quantities off stock, empties the cart and
// records the order; the shopper is sent back to the catalog. Paying for an
// empty cart succeeds with an empty order that is not recorded.
func (s *Shop) Checkout(ctx context.Context, code string) (CheckoutResult, error) {
	ctx, span := tracer().Start(ctx, "shop.checkout")
	defer span.End()

	s.checkoutMu.Lock()
	defer s.checkoutMu.Unlock()

	if s.verifier == nil || !s.verifier.Verify(code) {
		s.log.Warn("checkout rejected", slog.String("reason", "invalid verification code"))
		span.SetStatus(codes.Error, "invalid verification code")
		return CheckoutResult{}, ErrInvalidVerificationCode
	}
	lines := s.store.CheckoutCart()
	if len(lines) == 0 {
		s.log.Info("checkout completed with an empty cart")
		return CheckoutResult{Order: Order{Total: Money{Currency: s.currency}}, Next: "catalog"}, nil
	}

	order := Order{
		ID:       "o--" + uuid.New().String(),
		Lines:    lines,
		Total:    Total(lines, s.currency),
		PlacedAt: s.now().UTC(),
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Int("order.lines", len(lines)),
		attribute.Int64("order.total_minor", order.Total.Minor),
	)
	if err := s.receipts.Record(ctx, order); err != nil {
		// Stock and cart are already committed at this point.
		s.log.Error("record receipt", slog.String("order", order.ID), slog.Any("err", err))
		span.RecordError(err)
	}
	s.log.Info("checkout completed",
		slog.String("order", order.ID),
		slog.String("total", order.Total.String()),
		slog.String("currency", order.Total.Currency))
	return CheckoutResult{Order: order, Next: "catalog"}, nil
}

func (s *Shop) RecentOrders(ctx context.Context, n int) ([]Order, error) {
	return s.receipts.Recent(ctx, n)
}
