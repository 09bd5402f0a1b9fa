// Package cart is the client-persisted shopping cart. Entries are keyed by
// (productId, variantId); every mutation rewrites the whole cart document in
// durable session storage, and the store rehydrates from it at construction.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/maisonbelle/storefront/internal/clientstore"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// ProductSnapshot is the denormalized display copy carried with a cart item,
// so the cart renders without refetching the catalog.
type ProductSnapshot struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	VariantName string  `json:"variantName,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Price       float64 `json:"price"`
}

// Item is one cart line.
type Item struct {
	ProductID string          `json:"productId"`
	VariantID string          `json:"variantId"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
	AddedAt   time.Time       `json:"addedAt"`
}

// Store owns one session's cart. Single writer, injected where needed.
type Store struct {
	storage   *clientstore.Store
	sessionID string
	logger    *logging.Logger
	now       func() time.Time

	mu    sync.RWMutex
	items []Item // insertion-ordered
}

// NewStore creates a cart store and rehydrates it from session storage. A
// corrupt or missing document starts the cart empty.
func NewStore(ctx context.Context, storage *clientstore.Store, sessionID string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Store{
		storage:   storage,
		sessionID: sessionID,
		logger:    logger.Component("cart"),
		now:       time.Now,
	}

	data, ok, err := storage.Get(ctx, sessionID, clientstore.FieldCart)
	if err != nil {
		s.logger.Warn("cart rehydrate failed, starting empty", "error", err)
		return s
	}
	if ok {
		if err := json.Unmarshal(data, &s.items); err != nil {
			s.logger.Warn("cart document corrupt, starting empty", "error", err)
			s.items = nil
		}
	}
	return s
}

// Add puts quantity units of a product variant in the cart, merging with an
// existing line for the same (productId, variantId).
func (s *Store) Add(ctx context.Context, productID, variantID string, quantity int, product ProductSnapshot) error {
	if quantity <= 0 {
		return fmt.Errorf("cart: add quantity must be positive, got %d", quantity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID && s.items[i].VariantID == variantID {
			s.items[i].Quantity += quantity
			s.items[i].Product = product
			return s.persist(ctx)
		}
	}
	s.items = append(s.items, Item{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		Product:   product,
		AddedAt:   s.now(),
	})
	return s.persist(ctx)
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID, variantID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID && s.items[i].VariantID == variantID {
			if quantity <= 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			} else {
				s.items[i].Quantity = quantity
			}
			return s.persist(ctx)
		}
	}
	return nil
}

// Remove deletes a line.
func (s *Store) Remove(ctx context.Context, productID, variantID string) error {
	return s.UpdateQuantity(ctx, productID, variantID, 0)
}

// Clear empties the cart, e.g. after a completed order.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist(ctx)
}

// Items returns the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the total number of units across all lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Subtotal returns the display subtotal from the denormalized prices.
func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, it := range s.items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}

// persist writes the whole cart document. Callers hold the write lock.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("cart: marshal: %w", err)
	}
	if s.items == nil {
		data = []byte("[]")
	}
	if err := s.storage.Set(ctx, s.sessionID, clientstore.FieldCart, data); err != nil {
		return fmt.Errorf("cart: persist: %w", err)
	}
	return nil
}
