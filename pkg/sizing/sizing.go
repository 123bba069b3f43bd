// Package sizing validates canvas print dimensions and derives sizes that
// preserve an image's aspect ratio.
//
// All dimensions are whole centimeters. Validation accumulates every
// violation instead of stopping at the first, so callers can show the user
// all problems at once.
package sizing

import (
	"fmt"
	"math"
)

// Constraints bounds the valid print dimensions.
type Constraints struct {
	MinWidth  int `json:"min_width" toml:"min_width"`
	MinHeight int `json:"min_height" toml:"min_height"`
	MaxWidth  int `json:"max_width" toml:"max_width"`
	MaxHeight int `json:"max_height" toml:"max_height"`

	// DefaultLargeSide is the length assigned to the larger side when
	// deriving a default size from an aspect ratio.
	DefaultLargeSide int `json:"default_large_side" toml:"default_large_side"`
}

// DefaultConstraints returns the reference size constraints (30-300 cm wide,
// 30-140 cm tall, 100 cm default large side).
func DefaultConstraints() Constraints {
	return Constraints{
		MinWidth:         30,
		MinHeight:        30,
		MaxWidth:         300,
		MaxHeight:        140,
		DefaultLargeSide: 100,
	}
}

// Result reports the outcome of a size validation. Errors holds one
// user-facing message per violated bound, in a stable order.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate checks width and height independently against the constraints.
// Multiple violations accumulate; a 10x500 request reports both the minimum
// height and maximum width problems.
func (c Constraints) Validate(width, height int) Result {
	var errs []string

	if width < c.MinWidth {
		errs = append(errs, fmt.Sprintf("width must be at least %d cm", c.MinWidth))
	}
	if height < c.MinHeight {
		errs = append(errs, fmt.Sprintf("height must be at least %d cm", c.MinHeight))
	}
	if width > c.MaxWidth {
		errs = append(errs, fmt.Sprintf("width must be at most %d cm", c.MaxWidth))
	}
	if height > c.MaxHeight {
		errs = append(errs, fmt.Sprintf("height must be at most %d cm", c.MaxHeight))
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// DefaultSize derives an initial print size from an image aspect ratio
// (width / height). The larger side is anchored to DefaultLargeSide and the
// other side is derived from the ratio, rounded to the nearest centimeter.
func (c Constraints) DefaultSize(aspectRatio float64) (width, height int) {
	larger := c.DefaultLargeSide

	if aspectRatio >= 1 {
		return larger, roundCm(float64(larger) / aspectRatio)
	}
	return roundCm(float64(larger) * aspectRatio), larger
}

// Constrain clamps each dimension independently into its valid range.
//
// Clamping does not re-derive the other side afterward, so a pair that hits
// a bound comes back with a different aspect ratio than it went in with.
func (c Constraints) Constrain(width, height int) (int, int) {
	w := max(c.MinWidth, min(width, c.MaxWidth))
	h := max(c.MinHeight, min(height, c.MaxHeight))
	return w, h
}

// OtherDimension derives the missing dimension from the known one while
// preserving the aspect ratio (width / height), rounded to the nearest
// centimeter. knownIsWidth selects which dimension was supplied.
//
// Because of rounding, toggling a pair back and forth through this function
// can drift the ratio by a centimeter; that drift is accepted.
func OtherDimension(known int, aspectRatio float64, knownIsWidth bool) int {
	if knownIsWidth {
		return roundCm(float64(known) / aspectRatio)
	}
	return roundCm(float64(known) * aspectRatio)
}

func roundCm(v float64) int {
	return int(math.Round(v))
}
