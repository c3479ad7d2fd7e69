package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/shophub/internal/calculator"
	"github.com/mmynk/shophub/internal/metrics"
	"github.com/mmynk/shophub/internal/models"
	"github.com/mmynk/shophub/internal/storage"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidPrice = errors.New("price must not be negative")
)

// CartService holds the ordered cart line items.
//
// Every mutation recomputes the derived fields and writes the full line-item
// collection through to storage before returning. When the write fails the
// in-memory cart keeps the mutation and the error is returned alongside it.
type CartService struct {
	mu      sync.Mutex
	items   []models.LineItem
	store   storage.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCartService creates an empty cart manager. Call RestoreCart to load the
// persisted cart.
func NewCartService(store storage.Store, logger *slog.Logger, m *metrics.Metrics) *CartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartService{
		items:   []models.LineItem{},
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// Cart returns a snapshot of the current cart.
func (s *CartService) Cart() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// AddToCart increments the quantity of an existing line for p.ID, or appends a
// new line with quantity 1.
func (s *CartService) AddToCart(ctx context.Context, p models.Product) (models.Cart, error) {
	if p.Price < 0 {
		return s.Cart(), ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.cloneItems()
	if i := indexOf(items, p.ID); i >= 0 {
		items[i].Quantity++
	} else {
		items = append(items, models.LineItem{
			ProductID:   p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
			Quantity:    1,
		})
	}

	return s.commit(ctx, "add", items)
}

// RemoveFromCart deletes the line for productID. An absent product is a no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, productID int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, "remove", without(s.items, productID))
}

// UpdateQuantity sets the line's quantity to exactly quantity.
// A quantity below 1 removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, productID, quantity int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return s.commit(ctx, "remove", without(s.items, productID))
	}

	items := s.cloneItems()
	if i := indexOf(items, productID); i >= 0 {
		items[i].Quantity = quantity
	}
	return s.commit(ctx, "update", items)
}

// IncrementQuantity adds one to an existing line. An absent product is a no-op.
func (s *CartService) IncrementQuantity(ctx context.Context, productID int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.cloneItems()
	if i := indexOf(items, productID); i >= 0 {
		items[i].Quantity++
	}
	return s.commit(ctx, "increment", items)
}

// DecrementQuantity subtracts one while the quantity is above 1.
// It never removes a line.
func (s *CartService) DecrementQuantity(ctx context.Context, productID int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.cloneItems()
	if i := indexOf(items, productID); i >= 0 && items[i].Quantity > 1 {
		items[i].Quantity--
	}
	return s.commit(ctx, "decrement", items)
}

// ClearCart empties the cart and persists the empty collection.
func (s *CartService) ClearCart(ctx context.Context) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, "clear", []models.LineItem{})
}

// GetProductQuantity returns the quantity for productID, or 0 when absent.
func (s *CartService) GetProductQuantity(productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.items, productID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// RestoreCart installs the persisted cart at process start.
// A corrupt value is removed from storage and the cart starts empty.
func (s *CartService) RestoreCart(ctx context.Context) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.LineItem
	state, err := storage.LoadJSON(ctx, s.store, s.logger, storage.KeyCart, &items, validateItems)
	if err != nil {
		s.logger.Warn("Failed to load persisted cart", "error", err)
	}
	if state == storage.Discarded {
		s.metrics.Corrupt(storage.KeyCart)
	}
	if state != storage.Loaded || items == nil {
		items = []models.LineItem{}
	}

	s.items = items
	cart := s.snapshot()
	s.logger.Info("Cart restored", "lines", len(cart.Items), "count", cart.Count, "total", cart.TotalPrice)
	return cart
}

// Checkout confirms the order for the current cart and clears it.
// No payment is taken. Returns ErrEmptyCart when there is nothing to order.
func (s *CartService) Checkout(ctx context.Context) (models.OrderSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return models.OrderSummary{}, ErrEmptyCart
	}

	summary := calculator.Summarize(s.snapshot())
	if _, err := s.commit(ctx, "checkout", []models.LineItem{}); err != nil {
		return summary, err
	}

	s.logger.Info("Order confirmed", "count", summary.Count, "total", summary.Total)
	return summary, nil
}

// commit installs items, persists them and returns the new snapshot.
// Callers must hold s.mu.
func (s *CartService) commit(ctx context.Context, op string, items []models.LineItem) (models.Cart, error) {
	s.items = items
	cart := s.snapshot()
	s.metrics.CartChanged(op, cart.Count, cart.TotalPrice)

	if err := storage.SaveJSON(ctx, s.store, storage.KeyCart, items); err != nil {
		s.logger.Error("Failed to persist cart", "op", op, "error", err)
		return cart, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.logger.Debug("Cart updated", "op", op, "count", cart.Count, "total", cart.TotalPrice)
	return cart, nil
}

func (s *CartService) snapshot() models.Cart {
	return calculator.NewCart(s.cloneItems())
}

func (s *CartService) cloneItems() []models.LineItem {
	items := make([]models.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func indexOf(items []models.LineItem, productID int) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func without(items []models.LineItem, productID int) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// validateItems rejects a persisted cart that breaks the line-item invariants.
func validateItems(items *[]models.LineItem) error {
	seen := make(map[int]bool, len(*items))
	for _, item := range *items {
		if item.Quantity < 1 {
			return fmt.Errorf("product %d has quantity %d", item.ProductID, item.Quantity)
		}
		if item.Price < 0 {
			return fmt.Errorf("product %d has negative price", item.ProductID)
		}
		if seen[item.ProductID] {
			return fmt.Errorf("product %d appears twice", item.ProductID)
		}
		seen[item.ProductID] = true
	}
	return nil
}
