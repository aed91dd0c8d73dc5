package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	apperrors "github.com/osamaqaseem39/stationary-gbs/pkg/errors"
)

// CartItem is one line in a cart. Items are distinguished by the combination
// of product, variation, size, and color; the same product in a different
// size is a separate line.
type CartItem struct {
	ProductID   string  `json:"productId" validate:"required"`
	VariationID string  `json:"variationId,omitempty"`
	Size        string  `json:"size,omitempty"`
	Color       string  `json:"color,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image,omitempty"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
}

func (i CartItem) key() string {
	return fmt.Sprintf("%s-%s-%s-%s", i.ProductID, i.VariationID, i.Size, i.Color)
}

// Cart is the persisted cart state plus the transient user message set by
// the last mutation. The message's lifetime is owned by the caller; the
// store only records it.
type Cart struct {
	Items   []CartItem `json:"items"`
	Message string     `json:"message,omitempty"`
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Contains reports whether a line matching the given identity exists.
func (c *Cart) Contains(productID, variationID, size, color string) bool {
	probe := CartItem{ProductID: productID, VariationID: variationID, Size: size, Color: color}
	for _, item := range c.Items {
		if item.key() == probe.key() {
			return true
		}
	}
	return false
}

// CartSubscriber receives the cart after every mutation.
type CartSubscriber func(cartID string, cart Cart)

// CartStore manages carts keyed by session or customer ID, writing every
// mutation through the persistence port and notifying subscribers.
type CartStore struct {
	port   Port
	logger *slog.Logger

	mu      sync.Mutex
	subs    map[int]CartSubscriber
	nextSub int
}

// NewCartStore creates a cart store over the given port.
func NewCartStore(port Port, logger *slog.Logger) *CartStore {
	return &CartStore{
		port:   port,
		logger: logger,
		subs:   make(map[int]CartSubscriber),
	}
}

// Get loads the cart for cartID; a missing cart is an empty one.
func (s *CartStore) Get(ctx context.Context, cartID string) (Cart, error) {
	data, err := s.port.Load(ctx, cartKey(cartID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return Cart{Items: []CartItem{}}, nil
		}
		return Cart{}, err
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return Cart{}, fmt.Errorf("unmarshal cart %s: %w", cartID, err)
	}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	return cart, nil
}

// Add inserts an item or, when a line with the same identity exists, merges
// the quantities into it.
func (s *CartStore) Add(ctx context.Context, cartID string, item CartItem) (Cart, error) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].key() == item.key() {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}

	if merged {
		cart.Message = fmt.Sprintf("%s quantity updated in cart", item.Name)
	} else {
		cart.Items = append(cart.Items, item)
		cart.Message = fmt.Sprintf("%s added to cart", item.Name)
	}

	return s.save(ctx, cartID, cart)
}

// UpdateQuantity sets the quantity of the matching lines. A quantity of
// zero or less removes them. With an empty variationID every line for the
// product matches.
func (s *CartStore) UpdateQuantity(ctx context.Context, cartID, productID, variationID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return s.Remove(ctx, cartID, productID, variationID)
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID != productID {
			continue
		}
		if variationID != "" && cart.Items[i].VariationID != variationID {
			continue
		}
		cart.Items[i].Quantity = quantity
	}
	cart.Message = ""

	return s.save(ctx, cartID, cart)
}

// Remove deletes the matching lines. With an empty variationID every line
// for the product is removed.
func (s *CartStore) Remove(ctx context.Context, cartID, productID, variationID string) (Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID == productID && (variationID == "" || item.VariationID == variationID) {
			continue
		}
		kept = append(kept, item)
	}
	cart.Items = kept
	cart.Message = "Item removed from cart"

	return s.save(ctx, cartID, cart)
}

// Clear empties the cart and removes it from the port.
func (s *CartStore) Clear(ctx context.Context, cartID string) error {
	if err := s.port.Clear(ctx, cartKey(cartID)); err != nil {
		return err
	}
	s.notify(cartID, Cart{Items: []CartItem{}})
	return nil
}

// Subscribe registers fn for mutation notifications and returns an
// unsubscribe function.
func (s *CartStore) Subscribe(fn CartSubscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *CartStore) save(ctx context.Context, cartID string, cart Cart) (Cart, error) {
	data, err := json.Marshal(cart)
	if err != nil {
		return Cart{}, fmt.Errorf("marshal cart %s: %w", cartID, err)
	}
	if err := s.port.Save(ctx, cartKey(cartID), data); err != nil {
		return Cart{}, err
	}

	s.notify(cartID, cart)
	return cart, nil
}

func (s *CartStore) notify(cartID string, cart Cart) {
	s.mu.Lock()
	subs := make([]CartSubscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(cartID, cart)
	}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}
