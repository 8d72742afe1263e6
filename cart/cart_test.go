package cart

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(context.Background(), "owner-1", NewMemoryStore(), testLogger())
}

func sneaker(id string, priceCents int64) LineInput {
	return LineInput{
		ID:         id,
		Name:       "Air Max Revolution",
		Brand:      "SportTech",
		PriceCents: priceCents,
		Image:      "https://cdn.example.com/sneaker-1.jpg",
		Size:       "42",
	}
}

func TestAddItemMergesByID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddItem(ctx, sneaker("A", 10000))
	s.AddItem(ctx, sneaker("A", 10000))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(20000), s.TotalCents())
}

func TestAddItemKeepsFirstSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddItem(ctx, sneaker("A", 10000))

	// Re-adding with different display fields must not overwrite the
	// original snapshot, only bump the quantity.
	changed := sneaker("A", 99999)
	changed.Name = "Renamed"
	s.AddItem(ctx, changed)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Air Max Revolution", items[0].Name)
	assert.Equal(t, int64(10000), items[0].PriceCents)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddItem(ctx, sneaker("A", 5000))
	s.AddItem(ctx, sneaker("B", 3000))
	s.AddItem(ctx, sneaker("A", 5000))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].ID)
	assert.Equal(t, "B", items[1].ID)
	assert.Equal(t, int64(13000), s.TotalCents())
	assert.Equal(t, 3, s.ItemCount())
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddItem(ctx, sneaker("A", 5000))
	s.UpdateQuantity(ctx, "A", 5)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, int64(25000), s.TotalCents())
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	ctx := context.Background()

	for _, qty := range []int{0, -1} {
		s := newTestStore(t)
		s.AddItem(ctx, sneaker("A", 5000))
		s.UpdateQuantity(ctx, "A", qty)

		assert.Empty(t, s.Items())
		assert.Zero(t, s.TotalCents())
		assert.Zero(t, s.ItemCount())
	}
}

func TestUpdateQuantityZeroEqualsRemoveItem(t *testing.T) {
	ctx := context.Background()

	a := newTestStore(t)
	b := NewStore(ctx, "owner-2", NewMemoryStore(), testLogger())
	for _, s := range []*Store{a, b} {
		s.AddItem(ctx, sneaker("A", 5000))
		s.AddItem(ctx, sneaker("B", 3000))
	}

	a.UpdateQuantity(ctx, "A", 0)
	b.RemoveItem(ctx, "A")

	assert.Equal(t, b.Items(), a.Items())
	assert.Equal(t, b.TotalCents(), a.TotalCents())
}

func TestUpdateQuantityUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddItem(ctx, sneaker("A", 5000))
	s.UpdateQuantity(ctx, "nonexistent", 3)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItemUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddItem(ctx, sneaker("A", 5000))
	s.RemoveItem(ctx, "nonexistent")

	assert.Len(t, s.Items(), 1)
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddItem(ctx, sneaker("A", 5000))
	s.AddItem(ctx, sneaker("B", 3000))

	s.Clear(ctx)
	assert.Empty(t, s.Items())

	s.Clear(ctx)
	assert.Empty(t, s.Items())
	assert.Zero(t, s.TotalCents())
	assert.Zero(t, s.ItemCount())
}

func TestDerivedTotalsProperty(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		s := NewStore(ctx, "owner-prop", NewMemoryStore(), testLogger())

		type entry struct {
			price int64
			qty   int
		}
		expected := map[string]*entry{}
		order := []string{}

		for i := 0; i < 1+rng.Intn(20); i++ {
			id := string(rune('A' + rng.Intn(6)))
			price := int64(rng.Intn(100000))

			if e, ok := expected[id]; ok {
				s.AddItem(ctx, sneaker(id, price))
				e.qty++
			} else {
				s.AddItem(ctx, sneaker(id, price))
				expected[id] = &entry{price: price, qty: 1}
				order = append(order, id)
			}
		}

		var wantTotal int64
		wantCount := 0
		for _, id := range order {
			wantTotal += expected[id].price * int64(expected[id].qty)
			wantCount += expected[id].qty
		}

		require.Equal(t, wantTotal, s.TotalCents(), "run %d", run)
		require.Equal(t, wantCount, s.ItemCount(), "run %d", run)

		seen := map[string]bool{}
		for _, it := range s.Items() {
			require.False(t, seen[it.ID], "duplicate line id %s in run %d", it.ID, run)
			seen[it.ID] = true
		}
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	persistence := NewMemoryStore()

	s := NewStore(ctx, "owner-rt", persistence, testLogger())
	s.AddItem(ctx, sneaker("A", 29999))
	s.AddItem(ctx, sneaker("B", 18999))
	s.UpdateQuantity(ctx, "A", 3)

	// Discard the in-memory store and rehydrate from the persisted record.
	rehydrated := NewStore(ctx, "owner-rt", persistence, testLogger())

	assert.Equal(t, s.Items(), rehydrated.Items())
	assert.Equal(t, s.TotalCents(), rehydrated.TotalCents())
	assert.Equal(t, s.ItemCount(), rehydrated.ItemCount())
}

func TestRehydrationIgnoresUnknownVersion(t *testing.T) {
	ctx := context.Background()
	persistence := NewMemoryStore()

	require.NoError(t, persistence.Save(ctx, "owner-v", &State{
		Version: 99,
		Items:   []LineItem{{ID: "A", Quantity: 2, PriceCents: 100}},
	}))

	s := NewStore(ctx, "owner-v", persistence, testLogger())
	assert.Empty(t, s.Items())
}

func TestClearDeletesPersistedRecord(t *testing.T) {
	ctx := context.Background()
	persistence := NewMemoryStore()

	s := NewStore(ctx, "owner-del", persistence, testLogger())
	s.AddItem(ctx, sneaker("A", 100))
	s.Clear(ctx)

	state, err := persistence.Load(ctx, "owner-del")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSubscribersNotifiedOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var states []State
	s.Subscribe(func(st State) { states = append(states, st) })

	s.AddItem(ctx, sneaker("A", 100))
	s.UpdateQuantity(ctx, "A", 4)
	s.RemoveItem(ctx, "A")
	s.Clear(ctx)

	require.Len(t, states, 4)
	assert.Equal(t, 1, states[0].Items[0].Quantity)
	assert.Equal(t, 4, states[1].Items[0].Quantity)
	assert.Empty(t, states[2].Items)
	assert.Empty(t, states[3].Items)
}

type failingPersistence struct{}

func (failingPersistence) Load(ctx context.Context, ownerID string) (*State, error) {
	return nil, errors.New("storage unavailable")
}
func (failingPersistence) Save(ctx context.Context, ownerID string, state *State) error {
	return errors.New("storage unavailable")
}
func (failingPersistence) Delete(ctx context.Context, ownerID string) error {
	return errors.New("storage unavailable")
}

func TestPersistenceFailuresDoNotBlockMutations(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "owner-f", failingPersistence{}, testLogger())

	s.AddItem(ctx, sneaker("A", 29999))
	s.AddItem(ctx, sneaker("A", 29999))
	s.UpdateQuantity(ctx, "A", 5)

	assert.Equal(t, int64(149995), s.TotalCents())
	assert.Equal(t, 5, s.ItemCount())

	s.Clear(ctx)
	assert.Empty(t, s.Items())
}

func TestLineIDDistinguishesVariants(t *testing.T) {
	assert.Equal(t, "p1", LineID("p1", "", ""))
	assert.Equal(t, "p1:preto:42", LineID("p1", "preto", "42"))
	assert.Equal(t, "p1:42", LineID("p1", "", "42"))
	assert.NotEqual(t, LineID("p1", "preto", "42"), LineID("p1", "branco", "42"))
}

func TestVariantsDoNotMerge(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	black := sneaker(LineID("p1", "preto", "42"), 10000)
	white := sneaker(LineID("p1", "branco", "42"), 10000)
	s.AddItem(ctx, black)
	s.AddItem(ctx, white)

	assert.Len(t, s.Items(), 2)
	assert.Equal(t, 2, s.ItemCount())
}
