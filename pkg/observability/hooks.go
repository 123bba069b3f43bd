// Package observability provides hooks for instrumenting basket and storage
// operations.
//
// The core packages stay free of metrics-backend dependencies; a frontend
// registers hook implementations at startup and receives events about basket
// mutations and persistence outcomes. Defaults are no-ops.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBasketHooks(&myBasketHooks{})
//	    observability.SetStorageHooks(&myStorageHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// BasketHooks receives events from basket store mutations.
type BasketHooks interface {
	// OnAdd records an add attempt. rejected is true when the basket was full.
	OnAdd(ctx context.Context, itemCount int, rejected bool)

	// OnRemove records an item removal.
	OnRemove(ctx context.Context, itemCount int)

	// OnQuantityChange records a quantity update.
	OnQuantityChange(ctx context.Context, quantity int)

	// OnClear records the basket being emptied.
	OnClear(ctx context.Context)

	// OnCheckout records an order assembly from the basket.
	OnCheckout(ctx context.Context, itemCount, totalPrice int)
}

// StorageHooks receives events from persistence operations.
type StorageHooks interface {
	// OnSave records a state save. err is nil on success.
	OnSave(ctx context.Context, key string, bytes int, duration time.Duration, err error)

	// OnLoad records a state load. found is false when no state existed.
	OnLoad(ctx context.Context, key string, found bool, droppedItems int, err error)
}

// noopBasketHooks is the default no-op implementation.
type noopBasketHooks struct{}

func (noopBasketHooks) OnAdd(context.Context, int, bool)      {}
func (noopBasketHooks) OnRemove(context.Context, int)         {}
func (noopBasketHooks) OnQuantityChange(context.Context, int) {}
func (noopBasketHooks) OnClear(context.Context)               {}
func (noopBasketHooks) OnCheckout(context.Context, int, int)  {}

// noopStorageHooks is the default no-op implementation.
type noopStorageHooks struct{}

func (noopStorageHooks) OnSave(context.Context, string, int, time.Duration, error) {}
func (noopStorageHooks) OnLoad(context.Context, string, bool, int, error)          {}

var (
	mu           sync.RWMutex
	basketHooks  BasketHooks  = noopBasketHooks{}
	storageHooks StorageHooks = noopStorageHooks{}
)

// SetBasketHooks registers basket hooks. Pass nil to restore the no-op default.
func SetBasketHooks(h BasketHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		basketHooks = noopBasketHooks{}
		return
	}
	basketHooks = h
}

// SetStorageHooks registers storage hooks. Pass nil to restore the no-op default.
func SetStorageHooks(h StorageHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		storageHooks = noopStorageHooks{}
		return
	}
	storageHooks = h
}

// Basket returns the registered basket hooks.
func Basket() BasketHooks {
	mu.RLock()
	defer mu.RUnlock()
	return basketHooks
}

// Storage returns the registered storage hooks.
func Storage() StorageHooks {
	mu.RLock()
	defer mu.RUnlock()
	return storageHooks
}
