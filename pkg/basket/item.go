// Package basket implements the persisted shopping basket for configured
// canvas prints.
//
// The Store owns a bounded, insertion-ordered collection of items. All
// mutation goes through its operations; callers never receive aliases into
// store-owned data. Every mutation is persisted through a storage.Store, and
// the store reloads (with staleness expiry and per-item integrity filtering)
// on construction.
package basket

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/artprint-il/artprint/pkg/errors"
)

// Reference basket limits.
const (
	// MaxItems is the default basket capacity (distinct items, not quantities).
	MaxItems = 100

	// MaxItemQuantity is the largest quantity a single item may hold.
	MaxItemQuantity = 99

	// StorageKey is the namespaced key the basket persists under.
	StorageKey = "artprint_basket"

	// StaleAfter is the age beyond which persisted state is discarded on load.
	StaleAfter = 30 * 24 * time.Hour
)

// ImageRef is an opaque reference to an uploaded (and possibly cropped)
// image. The basket never touches pixels; it carries just enough for
// display and for re-deriving print sizes from the aspect ratio.
type ImageRef struct {
	Name        string  `json:"name"`
	Preview     string  `json:"preview,omitempty"`
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	AspectRatio float64 `json:"aspect_ratio,omitempty"`
}

// present reports whether the reference points at anything.
func (r ImageRef) present() bool {
	return r.Name != "" || r.Preview != ""
}

// CanvasSize is a print size in centimeters.
type CanvasSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CanvasOptions holds the side-color configuration of a print.
// ColorUpcharge is derived from the side color and base price by the pricing
// engine; it is stored alongside so the basket can replay totals without
// recomputing.
type CanvasOptions struct {
	SideColor     string `json:"side_color"`
	ColorUpcharge int    `json:"color_upcharge"`
}

// Item is one configured, quantified print order line.
// Identity is the ID; every other field changes only through explicit store
// operations.
type Item struct {
	ID            string        `json:"id"`
	Image         ImageRef      `json:"image"`
	CanvasSize    CanvasSize    `json:"canvas_size"`
	CanvasOptions CanvasOptions `json:"canvas_options"`
	BasePrice     int           `json:"base_price"`
	TotalPrice    int           `json:"total_price"`
	Quantity      int           `json:"quantity"`
	AddedAt       time.Time     `json:"added_at"`
}

// ItemConfig is the payload for adding an item. The store assigns the id,
// quantity, and timestamp.
type ItemConfig struct {
	Image         ImageRef
	CanvasSize    CanvasSize
	CanvasOptions CanvasOptions
	BasePrice     int
	TotalPrice    int
}

// validate checks the fields the loader's integrity filter will later
// require, so the store never accepts an item it would drop on reload.
func (cfg ItemConfig) validate() error {
	if !cfg.Image.present() {
		return errors.New(errors.ErrCodeInvalidInput, "item needs an image reference")
	}
	if cfg.CanvasSize.Width <= 0 || cfg.CanvasSize.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidSize, "item needs a positive canvas size, got %dx%d", cfg.CanvasSize.Width, cfg.CanvasSize.Height)
	}
	if cfg.CanvasOptions.SideColor == "" {
		return errors.New(errors.ErrCodeInvalidColor, "item needs a side color")
	}
	if cfg.BasePrice < 0 || cfg.TotalPrice < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "item prices cannot be negative")
	}
	return nil
}

// ItemUpdate is a partial reconfiguration of an existing item. Nil fields
// are left untouched; id and quantity are never altered by an update.
type ItemUpdate struct {
	Image         *ImageRef
	CanvasSize    *CanvasSize
	CanvasOptions *CanvasOptions
	BasePrice     *int
	TotalPrice    *int
}

// valid reports whether a (possibly rehydrated) item satisfies the basket
// invariants. Items loaded from storage that fail this check are dropped
// individually rather than rejecting the whole load.
func (it Item) valid(maxQuantity int) bool {
	return it.ID != "" &&
		it.Quantity >= 1 && it.Quantity <= maxQuantity &&
		it.BasePrice >= 0 && it.TotalPrice >= 0 &&
		it.Image.present() &&
		it.CanvasSize.Width > 0 && it.CanvasSize.Height > 0 &&
		it.CanvasOptions.SideColor != "" &&
		!it.AddedAt.IsZero()
}

// idAlphabet is the base36 alphabet used for id suffixes.
const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newItemID generates a basket item id: a millisecond timestamp plus a short
// random base36 suffix. Uniqueness is probabilistic, which is acceptable for
// a single basket bounded at MaxItems.
func newItemID(now time.Time) string {
	suffix := make([]byte, 9)
	rand.Read(suffix)
	for i, b := range suffix {
		suffix[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return fmt.Sprintf("basket_item_%d_%s", now.UnixMilli(), suffix)
}
