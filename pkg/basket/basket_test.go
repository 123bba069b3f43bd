package basket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/artprint-il/artprint/pkg/errors"
	"github.com/artprint-il/artprint/pkg/storage"
)

func testConfig() ItemConfig {
	return ItemConfig{
		Image:         ImageRef{Name: "sunset.jpg", Width: 3000, Height: 2000, AspectRatio: 1.5},
		CanvasSize:    CanvasSize{Width: 100, Height: 100},
		CanvasOptions: CanvasOptions{SideColor: "#FFFFFF"},
		BasePrice:     390,
		TotalPrice:    390,
	}
}

func newTestStore(t *testing.T, st storage.Store, opts Options) *Store {
	t.Helper()
	if st == nil {
		st = storage.NewMemoryStore()
	}
	return New(context.Background(), st, opts)
}

func TestAddAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, Options{})

	item, err := s.Add(ctx, testConfig())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if !strings.HasPrefix(item.ID, "basket_item_") {
		t.Errorf("ID = %q, want basket_item_ prefix", item.ID)
	}
	if item.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", item.Quantity)
	}
	if item.AddedAt.IsZero() {
		t.Error("AddedAt is zero, want a timestamp")
	}

	got, ok := s.Get(item.ID)
	if !ok {
		t.Fatal("Get after Add: item not found")
	}
	if got.ID != item.ID {
		t.Errorf("Get ID = %q, want %q", got.ID, item.ID)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, Options{})

	var ids []string
	for i := 0; i < 5; i++ {
		item, err := s.Add(ctx, testConfig())
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		ids = append(ids, item.ID)
	}

	items := s.Items()
	if len(items) != 5 {
		t.Fatalf("len(Items) = %d, want 5", len(items))
	}
	for i, it := range items {
		if it.ID != ids[i] {
			t.Errorf("Items[%d].ID = %q, want %q (insertion order)", i, it.ID, ids[i])
		}
	}
}

func TestAddRejectsWhenFull(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, Options{})

	for i := 0; i < MaxItems; i++ {
		if _, err := s.Add(ctx, testConfig()); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	if !s.IsFull() {
		t.Error("IsFull = false after filling the basket")
	}

	_, err := s.Add(ctx, testConfig())
	if err == nil {
		t.Fatal("Add beyond capacity error = nil, want BASKET_FULL")
	}
	if !apperrors.Is(err, apperrors.ErrCodeBasketFull) {
		t.Errorf("Add beyond capacity error = %v, want code BASKET_FULL", err)
	}
	if got := s.Summary().ItemCount; got != MaxItems {
		t.Errorf("ItemCount after rejected add = %d, want %d", got, MaxItems)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, Options{})

	item, _ := s.Add(ctx, testConfig())

	s.Remove(ctx, item.ID)
	if _, ok := s.Get(item.ID); ok {
		t.Error("item still present after Remove")
	}

	// Second remove and unknown ids are silent no-ops.
	s.Remove(ctx, item.ID)
	s.Remove(ctx, "no_such_id")

	if got := s.Summary().ItemCount; got != 0 {
		t.Errorf("ItemCount = %d, want 0", got)
	}
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, Options{})

	item, _ := s.Add(ctx, testConfig())

	s.UpdateQuantity(ctx, item.ID, 5)
	if got, _ := s.Get(item.ID); got.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", got.Quantity)
	}
	if got := s.Summary().TotalItems; got != 5 {
		t.Errorf("TotalItems = %d, want 5", got)
	}

	// Above the per-item maximum: silently ignored.
	s.UpdateQuantity(ctx, item.ID, MaxItemQuantity+1)
	if got, _ := s.Get(item.ID); got.Quantity != 5 {
		t.Errorf("Quantity after over-max update = %d, want 5", got.Quantity)
	}

	// Unknown id: silently ignored.
	s.UpdateQuantity(ctx, "no_such_id", 3)

	// Zero or negative removes the item.
	s.UpdateQuantity(ctx, item.ID, 0)
	if _, ok := s.Get(item.ID); ok {
		t.Error("item still present after UpdateQuantity(id, 0)")
	}
}

func TestUpdateConfiguration(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, Options{})

	item, _ := s.Add(ctx, testConfig())
	s.UpdateQuantity(ctx, item.ID, 3)

	newSize := CanvasSize{Width: 150, Height: 150}
	newBase := 570
	newTotal := 620
	newOpts := CanvasOptions{SideColor: "#000000", ColorUpcharge: 50}
	s.UpdateConfiguration(ctx, item.ID, ItemUpdate{
		CanvasSize:    &newSize,
		CanvasOptions: &newOpts,
		BasePrice:     &newBase,
		TotalPrice:    &newTotal,
	})

	got, _ := s.Get(item.ID)
	if got.CanvasSize != newSize {
		t.Errorf("CanvasSize = %+v, want %+v", got.CanvasSize, newSize)
	}
	if got.CanvasOptions != newOpts {
		t.Errorf("CanvasOptions = %+v, want %+v", got.CanvasOptions, newOpts)
	}
	if got.BasePrice != newBase || got.TotalPrice != newTotal {
		t.Errorf("prices = (%d, %d), want (%d, %d)", got.BasePrice, got.TotalPrice, newBase, newTotal)
	}

	// Unsupplied fields stay untouched; id and quantity never change.
	if got.Image != item.Image {
		t.Errorf("Image = %+v, want untouched %+v", got.Image, item.Image)
	}
	if got.ID != item.ID || got.Quantity != 3 {
		t.Errorf("(ID, Quantity) = (%q, %d), want (%q, 3)", got.ID, got.Quantity, item.ID)
	}

	// Unknown id: no-op.
	s.UpdateConfiguration(ctx, "no_such_id", ItemUpdate{BasePrice: &newBase})
}

func TestSummaryRecomputed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, Options{})

	first, _ := s.Add(ctx, testConfig())

	cfg := testConfig()
	cfg.TotalPrice = 425
	second, _ := s.Add(ctx, cfg)

	s.UpdateQuantity(ctx, first.ID, 2)

	got := s.Summary()
	want := Summary{ItemCount: 2, TotalItems: 3, Subtotal: 2*390 + 425, TotalPrice: 2*390 + 425}
	if got != want {
		t.Errorf("Summary = %+v, want %+v", got, want)
	}

	s.Remove(ctx, second.ID)
	if got := s.Summary().TotalItems; got != 2 {
		t.Errorf("TotalItems after remove = %d, want 2", got)
	}
}

func TestClearErasesPersistedState(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := newTestStore(t, mem, Options{})

	s.Add(ctx, testConfig())
	if mem.Len() != 1 {
		t.Fatalf("stored entries after add = %d, want 1", mem.Len())
	}

	s.Clear(ctx)
	if got := s.Summary().ItemCount; got != 0 {
		t.Errorf("ItemCount after Clear = %d, want 0", got)
	}
	if mem.Len() != 0 {
		t.Errorf("stored entries after Clear = %d, want 0", mem.Len())
	}
}

func TestEmptyBasketIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := newTestStore(t, mem, Options{})

	item, _ := s.Add(ctx, testConfig())
	s.Remove(ctx, item.ID)

	if mem.Len() != 0 {
		t.Errorf("stored entries after removing last item = %d, want 0 (empty baskets are erased)", mem.Len())
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, Options{})

	var snaps []State
	cancel := s.Subscribe(func(st State) { snaps = append(snaps, st) })

	item, _ := s.Add(ctx, testConfig())
	s.UpdateQuantity(ctx, item.ID, 4)

	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}
	if got := snaps[1].Summary().TotalItems; got != 4 {
		t.Errorf("last snapshot TotalItems = %d, want 4", got)
	}

	// Snapshots do not alias store state.
	snaps[1].Items[0].Quantity = 99
	if got, _ := s.Get(item.ID); got.Quantity != 4 {
		t.Errorf("mutating a snapshot changed store state: quantity = %d", got.Quantity)
	}

	cancel()
	s.Remove(ctx, item.ID)
	if len(snaps) != 2 {
		t.Errorf("snapshots after cancel = %d, want still 2", len(snaps))
	}
}

// failingStore simulates an unavailable storage backend.
type failingStore struct{}

func (failingStore) Save(context.Context, string, []byte) error { return errors.New("quota exceeded") }
func (failingStore) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("storage unavailable")
}
func (failingStore) Remove(context.Context, string) error { return errors.New("storage unavailable") }
func (failingStore) Close() error                         { return nil }

func TestStorageFailuresDoNotAffectMemoryState(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, failingStore{}, Options{})

	item, err := s.Add(ctx, testConfig())
	if err != nil {
		t.Fatalf("Add with failing storage: %v", err)
	}
	if got := s.Summary().ItemCount; got != 1 {
		t.Errorf("ItemCount = %d, want 1 (in-memory state stays authoritative)", got)
	}

	s.UpdateQuantity(ctx, item.ID, 7)
	if got, _ := s.Get(item.ID); got.Quantity != 7 {
		t.Errorf("Quantity = %d, want 7", got.Quantity)
	}

	s.Clear(ctx)
	if got := s.Summary().ItemCount; got != 0 {
		t.Errorf("ItemCount after Clear = %d, want 0", got)
	}
}

func TestPersistedStateUsesRFC3339Timestamps(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := newTestStore(t, mem, Options{})

	s.Add(ctx, testConfig())

	data, ok, err := mem.Load(ctx, StorageKey)
	if err != nil || !ok {
		t.Fatalf("Load persisted state = (%v, %v), want stored entry", ok, err)
	}

	var raw struct {
		LastUpdated string `json:"last_updated"`
		Items       []struct {
			AddedAt string `json:"added_at"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("persisted state is not JSON: %v", err)
	}
	if _, err := time.Parse(time.RFC3339Nano, raw.LastUpdated); err != nil {
		t.Errorf("last_updated %q is not RFC 3339: %v", raw.LastUpdated, err)
	}
	if len(raw.Items) != 1 {
		t.Fatalf("persisted items = %d, want 1", len(raw.Items))
	}
	if _, err := time.Parse(time.RFC3339Nano, raw.Items[0].AddedAt); err != nil {
		t.Errorf("added_at %q is not RFC 3339: %v", raw.Items[0].AddedAt, err)
	}
}

func TestAddRejectsConfigLoaderWouldDrop(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(*ItemConfig)
		wantCode apperrors.Code
	}{
		{"missing image", func(c *ItemConfig) { c.Image = ImageRef{} }, apperrors.ErrCodeInvalidInput},
		{"zero width", func(c *ItemConfig) { c.CanvasSize.Width = 0 }, apperrors.ErrCodeInvalidSize},
		{"zero height", func(c *ItemConfig) { c.CanvasSize.Height = 0 }, apperrors.ErrCodeInvalidSize},
		{"empty side color", func(c *ItemConfig) { c.CanvasOptions.SideColor = "" }, apperrors.ErrCodeInvalidColor},
		{"negative base price", func(c *ItemConfig) { c.BasePrice = -1 }, apperrors.ErrCodeInvalidInput},
		{"negative total price", func(c *ItemConfig) { c.TotalPrice = -1 }, apperrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, nil, Options{})
			cfg := testConfig()
			tt.mutate(&cfg)

			_, err := s.Add(ctx, cfg)
			if got := apperrors.GetCode(err); got != tt.wantCode {
				t.Fatalf("Add error code = %v, want %v", got, tt.wantCode)
			}
			if got := s.TotalItemCount(); got != 0 {
				t.Errorf("TotalItemCount() after rejected Add = %d, want 0", got)
			}
		})
	}
}

func TestAcceptedItemsSurviveReload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := newTestStore(t, mem, Options{})

	// Sparsest config Add accepts: prices default to zero, preview absent.
	item, err := s.Add(ctx, ItemConfig{
		Image:         ImageRef{Name: "minimal.jpg"},
		CanvasSize:    CanvasSize{Width: 30, Height: 30},
		CanvasOptions: CanvasOptions{SideColor: "#FFFFFF"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	reloaded := newTestStore(t, mem, Options{})
	if _, ok := reloaded.Get(item.ID); !ok {
		t.Fatalf("item %s accepted by Add is missing after reload", item.ID)
	}
	if got := reloaded.TotalItemCount(); got != 1 {
		t.Errorf("TotalItemCount() after reload = %d, want 1", got)
	}
}
