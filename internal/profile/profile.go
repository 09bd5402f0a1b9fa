// Package profile backs the account area: identity display, past bookings,
// retail orders and the wishlist.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/maisonbelle/storefront/internal/clientstore"
	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// ErrNotAuthenticated means the session carries no auth token.
var ErrNotAuthenticated = errors.New("profile: not authenticated")

// Identity is what the account header displays. The token is parsed without
// signature verification: the backend verifies on every authenticated call,
// the storefront only needs display hints.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

// WishlistItem is one saved product.
type WishlistItem struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// Source is the slice of the salon API the profile needs.
type Source interface {
	MyAppointments(ctx context.Context, token string) ([]salonapi.Appointment, error)
	MyOrders(ctx context.Context, token string) ([]salonapi.Order, error)
}

// Service backs the profile tabs for one deployment.
type Service struct {
	api     Source
	storage *clientstore.Store
	logger  *logging.Logger
}

// NewService constructs a profile service.
func NewService(api Source, storage *clientstore.Store, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{api: api, storage: storage, logger: logger.Component("profile")}
}

// Token reads the session's stored auth token.
func (s *Service) Token(ctx context.Context, sessionID string) (string, error) {
	data, ok, err := s.storage.Get(ctx, sessionID, clientstore.FieldAuthToken)
	if err != nil {
		return "", fmt.Errorf("profile: read token: %w", err)
	}
	if !ok || len(data) == 0 {
		return "", ErrNotAuthenticated
	}
	var token string
	if err := json.Unmarshal(data, &token); err != nil || token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

// SetToken stores the auth token handed over at sign-in.
func (s *Service) SetToken(ctx context.Context, sessionID, token string) error {
	data, _ := json.Marshal(token)
	return s.storage.Set(ctx, sessionID, clientstore.FieldAuthToken, data)
}

// ClearToken signs the session out.
func (s *Service) ClearToken(ctx context.Context, sessionID string) error {
	return s.storage.Delete(ctx, sessionID, clientstore.FieldAuthToken)
}

// Identity extracts display hints from the session's token claims.
func (s *Service) Identity(ctx context.Context, sessionID string) (*Identity, error) {
	token, err := s.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("profile: parse token: %w", err)
	}

	id := &Identity{}
	if sub, err := claims.GetSubject(); err == nil {
		id.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	}
	return id, nil
}

// Appointments lists the signed-in user's bookings.
func (s *Service) Appointments(ctx context.Context, sessionID string) ([]salonapi.Appointment, error) {
	token, err := s.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.MyAppointments(ctx, token)
}

// Orders lists the signed-in user's retail orders.
func (s *Service) Orders(ctx context.Context, sessionID string) ([]salonapi.Order, error) {
	token, err := s.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.MyOrders(ctx, token)
}

// Wishlist lists the session's saved products.
func (s *Service) Wishlist(ctx context.Context, sessionID string) ([]WishlistItem, error) {
	data, ok, err := s.storage.Get(ctx, sessionID, clientstore.FieldWishlist)
	if err != nil {
		return nil, fmt.Errorf("profile: read wishlist: %w", err)
	}
	if !ok {
		return []WishlistItem{}, nil
	}
	var items []WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("wishlist document corrupt, resetting", "error", err)
		return []WishlistItem{}, nil
	}
	return items, nil
}

// AddToWishlist saves a product, deduplicating by (productId, variantId).
func (s *Service) AddToWishlist(ctx context.Context, sessionID string, item WishlistItem) error {
	items, err := s.Wishlist(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.ProductID == item.ProductID && existing.VariantID == item.VariantID {
			return nil
		}
	}
	items = append(items, item)
	return s.saveWishlist(ctx, sessionID, items)
}

// RemoveFromWishlist drops a saved product.
func (s *Service) RemoveFromWishlist(ctx context.Context, sessionID, productID, variantID string) error {
	items, err := s.Wishlist(ctx, sessionID)
	if err != nil {
		return err
	}
	out := items[:0]
	for _, it := range items {
		if it.ProductID == productID && it.VariantID == variantID {
			continue
		}
		out = append(out, it)
	}
	return s.saveWishlist(ctx, sessionID, out)
}

func (s *Service) saveWishlist(ctx context.Context, sessionID string, items []WishlistItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("profile: marshal wishlist: %w", err)
	}
	return s.storage.Set(ctx, sessionID, clientstore.FieldWishlist, data)
}
