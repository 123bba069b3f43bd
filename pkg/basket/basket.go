package basket

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/artprint-il/artprint/pkg/errors"
	"github.com/artprint-il/artprint/pkg/observability"
	"github.com/artprint-il/artprint/pkg/storage"
)

// Options configures a Store. The zero value takes the reference defaults.
type Options struct {
	// MaxItems caps the number of distinct items.
	MaxItems int

	// MaxQuantity caps the quantity of a single item.
	MaxQuantity int

	// StaleAfter is the persisted-state age beyond which a load discards it.
	StaleAfter time.Duration

	// StorageKey is the key the basket persists under.
	StorageKey string

	// Logger receives persistence warnings. Defaults to log.Default().
	Logger *log.Logger

	// Clock supplies timestamps; tests override it.
	Clock func() time.Time
}

func (o *Options) setDefaults() {
	if o.MaxItems <= 0 {
		o.MaxItems = MaxItems
	}
	if o.MaxQuantity <= 0 {
		o.MaxQuantity = MaxItemQuantity
	}
	if o.StaleAfter <= 0 {
		o.StaleAfter = StaleAfter
	}
	if o.StorageKey == "" {
		o.StorageKey = StorageKey
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
}

// Store owns the basket state. All operations are synchronous; mutations
// persist through the storage adapter best-effort and notify subscribers
// with an immutable snapshot. The in-memory state stays authoritative even
// when persistence fails.
type Store struct {
	mu          sync.Mutex
	items       []Item
	lastUpdated time.Time
	subs        map[int]func(State)
	nextSub     int

	opts    Options
	storage storage.Store
}

// New creates a basket store backed by st and reloads previously persisted
// state: an unparsable blob counts as no basket, state older than StaleAfter
// is discarded, and individual items that violate the basket invariants are
// dropped.
func New(ctx context.Context, st storage.Store, opts Options) *Store {
	opts.setDefaults()
	s := &Store{
		opts:    opts,
		storage: st,
		subs:    make(map[int]func(State)),
	}
	s.load(ctx)
	return s
}

// load restores persisted state into the store. Never fails: every problem
// degrades to starting empty.
func (s *Store) load(ctx context.Context) {
	key := s.opts.StorageKey

	data, ok, err := s.storage.Load(ctx, key)
	if err != nil {
		s.opts.Logger.Warn("failed to load persisted basket, starting empty", "key", key, "err", err)
		observability.Storage().OnLoad(ctx, key, false, 0, err)
		return
	}
	if !ok {
		observability.Storage().OnLoad(ctx, key, false, 0, nil)
		return
	}

	state, err := decodeState(data)
	if err != nil {
		// Corrupt entry: treated as no basket. The entry is replaced on
		// the next successful save or clear.
		s.opts.Logger.Warn("persisted basket is corrupt, starting empty", "key", key, "err", err)
		observability.Storage().OnLoad(ctx, key, false, 0, err)
		return
	}

	if state.stale(s.opts.StaleAfter, s.opts.Clock()) {
		s.opts.Logger.Info("discarding stale basket", "key", key, "last_updated", state.LastUpdated)
		if err := s.storage.Remove(ctx, key); err != nil {
			s.opts.Logger.Warn("failed to remove stale basket", "key", key, "err", err)
		}
		observability.Storage().OnLoad(ctx, key, false, 0, nil)
		return
	}

	valid, dropped := filterItems(state.Items, s.opts.MaxQuantity)
	if dropped > 0 {
		s.opts.Logger.Warn("dropped invalid basket items on load", "key", key, "dropped", dropped)
	}

	s.items = valid
	s.lastUpdated = state.LastUpdated
	observability.Storage().OnLoad(ctx, key, true, dropped, nil)
}

// Add appends a new item configured from cfg. It fails with a BASKET_FULL
// error when the basket is at capacity and rejects configs the reload
// integrity filter would drop; on success the item gets a fresh id,
// quantity 1, and the current timestamp, and is appended at the end of the
// display order.
func (s *Store) Add(ctx context.Context, cfg ItemConfig) (Item, error) {
	if err := cfg.validate(); err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	if len(s.items) >= s.opts.MaxItems {
		count := len(s.items)
		s.mu.Unlock()
		observability.Basket().OnAdd(ctx, count, true)
		return Item{}, errors.New(errors.ErrCodeBasketFull, "basket holds at most %d items", s.opts.MaxItems)
	}

	now := s.opts.Clock()
	item := Item{
		ID:            newItemID(now),
		Image:         cfg.Image,
		CanvasSize:    cfg.CanvasSize,
		CanvasOptions: cfg.CanvasOptions,
		BasePrice:     cfg.BasePrice,
		TotalPrice:    cfg.TotalPrice,
		Quantity:      1,
		AddedAt:       now,
	}
	s.items = append(s.items, item)
	snap := s.commitLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
	s.notify(snap)
	observability.Basket().OnAdd(ctx, len(snap.Items), false)
	return item, nil
}

// Remove deletes the item with the given id. Removing an absent id is a
// no-op, not an error.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.items = slices.Delete(s.items, idx, idx+1)
	snap := s.commitLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
	s.notify(snap)
	observability.Basket().OnRemove(ctx, len(snap.Items))
}

// UpdateQuantity sets the quantity of an item. A quantity of zero or less
// removes the item. Quantities above the per-item maximum, like unknown ids,
// are silently ignored: they are reachable only through malformed UI or
// storage input.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, id)
		return
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 || quantity > s.opts.MaxQuantity {
		s.mu.Unlock()
		return
	}

	s.items[idx].Quantity = quantity
	snap := s.commitLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
	s.notify(snap)
	observability.Basket().OnQuantityChange(ctx, quantity)
}

// UpdateConfiguration replaces the supplied subset of an item's
// configuration. Nil fields stay untouched; the id and quantity never change
// through this call. Updating an absent id is a no-op.
func (s *Store) UpdateConfiguration(ctx context.Context, id string, upd ItemUpdate) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	it := &s.items[idx]
	if upd.Image != nil {
		it.Image = *upd.Image
	}
	if upd.CanvasSize != nil {
		it.CanvasSize = *upd.CanvasSize
	}
	if upd.CanvasOptions != nil {
		it.CanvasOptions = *upd.CanvasOptions
	}
	if upd.BasePrice != nil {
		it.BasePrice = *upd.BasePrice
	}
	if upd.TotalPrice != nil {
		it.TotalPrice = *upd.TotalPrice
	}
	snap := s.commitLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
	s.notify(snap)
}

// Clear empties the basket and erases the persisted entry.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	snap := s.commitLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
	s.notify(snap)
	observability.Basket().OnClear(ctx)
}

// Get returns a copy of the item with the given id.
func (s *Store) Get(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Item{}, false
	}
	return s.items[idx], true
}

// Items returns a copy of the item sequence in display order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Summary recomputes the derived totals from the current items.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.items)
}

// IsFull reports whether the basket is at capacity.
func (s *Store) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) >= s.opts.MaxItems
}

// TotalItemCount returns the sum of all quantities.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// MaxItems returns the basket capacity.
func (s *Store) MaxItems() int {
	return s.opts.MaxItems
}

// State returns an immutable snapshot of the current basket.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a state snapshot after every mutation.
// The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
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

// indexLocked returns the position of an item by id, or -1.
func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
}

// commitLocked stamps the mutation time and snapshots the new state.
func (s *Store) commitLocked() State {
	s.lastUpdated = s.opts.Clock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	return State{
		Items:       slices.Clone(s.items),
		MaxItems:    s.opts.MaxItems,
		LastUpdated: s.lastUpdated,
	}
}

// persist writes the snapshot through the storage adapter: the full state
// when the basket is non-empty, an erase when empty. Failures are logged and
// absorbed; the in-memory state remains authoritative.
func (s *Store) persist(ctx context.Context, snap State) {
	key := s.opts.StorageKey
	start := time.Now()

	if len(snap.Items) == 0 {
		err := s.storage.Remove(ctx, key)
		if err != nil {
			s.opts.Logger.Warn("failed to erase persisted basket", "key", key, "err", err)
		}
		observability.Storage().OnSave(ctx, key, 0, time.Since(start), err)
		return
	}

	data, err := encodeState(snap)
	if err == nil {
		err = s.storage.Save(ctx, key, data)
	}
	if err != nil {
		s.opts.Logger.Warn("basket persistence unavailable for this session", "key", key, "err", err)
	}
	observability.Storage().OnSave(ctx, key, len(data), time.Since(start), err)
}

// notify delivers the snapshot to all subscribers.
func (s *Store) notify(snap State) {
	s.mu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
