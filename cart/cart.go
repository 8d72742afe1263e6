package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LineItem is one entry in the cart: a product variant with a quantity.
// Display fields (name, brand, price, image) are a snapshot taken when the
// item was first added and are not refreshed on re-add.
type LineItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	PriceCents int64  `json:"priceCents"`
	Image      string `json:"image"`
	Color      string `json:"color,omitempty"`
	Size       string `json:"size,omitempty"`
	Quantity   int    `json:"quantity"`
}

// LineInput describes an item to add to the cart. Quantity is implicit:
// every AddItem call adds exactly one unit.
type LineInput struct {
	ID         string
	Name       string
	Brand      string
	PriceCents int64
	Image      string
	Color      string
	Size       string
}

// LineID builds the identity of a cart line from a product id and the
// selected variant attributes. Distinct color/size combinations get distinct
// line ids so their quantities never merge.
func LineID(productID, color, size string) string {
	parts := []string{productID}
	if color != "" {
		parts = append(parts, color)
	}
	if size != "" {
		parts = append(parts, size)
	}
	return strings.Join(parts, ":")
}

// Store is the single source of truth for one shopping cart. It is bound to
// an owner (user id or anonymous session id) and writes its state through the
// injected Persistence after every mutation. Persistence is best-effort: a
// failed save is logged and the in-memory state stays authoritative for the
// rest of the session.
type Store struct {
	ownerID     string
	persistence Persistence
	log         logrus.FieldLogger

	mu          sync.RWMutex
	items       []LineItem
	subscribers []func(State)
}

// NewStore creates a cart store for ownerID, rehydrating from persistence if
// a record exists. A load failure or an unknown record version starts the
// cart empty rather than failing.
func NewStore(ctx context.Context, ownerID string, persistence Persistence, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{
		ownerID:     ownerID,
		persistence: persistence,
		log:         log,
	}

	state, err := persistence.Load(ctx, ownerID)
	if err != nil {
		log.WithError(err).WithField("owner", ownerID).Warn("cart: failed to load persisted cart, starting empty")
		return s
	}
	if state == nil {
		return s
	}
	if state.Version != StateVersion {
		log.WithFields(logrus.Fields{"owner": ownerID, "version": state.Version}).
			Warn("cart: unknown persisted cart version, starting empty")
		return s
	}
	s.items = append(s.items, state.Items...)
	return s
}

// OwnerID returns the owner this cart is bound to.
func (s *Store) OwnerID() string {
	return s.ownerID
}

// AddItem adds one unit of the given item. If a line with the same id already
// exists its quantity is incremented by 1 and the stored display fields are
// kept as first added. Otherwise a new line with quantity 1 is appended, so
// insertion order is display order.
func (s *Store) AddItem(ctx context.Context, in LineInput) {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == in.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, LineItem{
			ID:         in.ID,
			Name:       in.Name,
			Brand:      in.Brand,
			PriceCents: in.PriceCents,
			Image:      in.Image,
			Color:      in.Color,
			Size:       in.Size,
			Quantity:   1,
		})
	}
	s.mu.Unlock()

	s.persist(ctx)
	s.notify()
}

// UpdateQuantity sets the quantity of the line with the given id to exactly
// quantity. A quantity of zero or less removes the line. An unknown id is a
// no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, id)
		return
	}

	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	s.persist(ctx)
	s.notify()
}

// RemoveItem removes the line with the given id. An unknown id is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	s.persist(ctx)
	s.notify()
}

// Clear empties the cart and deletes the persisted record. Clearing an
// already-empty cart is a valid no-op that still succeeds.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if err := s.persistence.Delete(ctx, s.ownerID); err != nil {
		s.log.WithError(err).WithField("owner", s.ownerID).Warn("cart: failed to delete persisted cart")
	}
	s.notify()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalCents recomputes the cart total from the current lines on every call.
func (s *Store) TotalCents() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, it := range s.items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}

// ItemCount is the sum of all line quantities, used for UI badges.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// Subscribe registers fn to be called synchronously with a state snapshot
// after every mutation.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return State{Version: StateVersion, Items: items}
}

func (s *Store) persist(ctx context.Context) {
	state := s.snapshot()
	if err := s.persistence.Save(ctx, s.ownerID, &state); err != nil {
		s.log.WithError(err).WithField("owner", s.ownerID).Warn("cart: failed to persist cart")
	}
}

func (s *Store) notify() {
	state := s.snapshot()

	s.mu.RLock()
	subs := make([]func(State), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}
