// Package pricing implements the tiered price-interpolation engine for
// canvas prints.
//
// Prices are indexed by total size (height + width, in centimeters), not
// area. The engine scans an ordered tier table, interpolates linearly inside
// the matched tier, applies a large-format surcharge when the narrower side
// exceeds a minimum dimension, and rounds the result to a "clean" display
// price (multiples of 5 below 520, multiples of 10 at or above).
//
// All calculations are pure and deterministic: the same inputs always
// produce the same breakdown, with no side effects or I/O.
package pricing

import "math"

// Breakdown is the result of a price quote. All amounts are non-negative
// integers after display rounding.
type Breakdown struct {
	BasePrice     int `json:"base_price"`
	ColorUpcharge int `json:"color_upcharge"`
	TotalPrice    int `json:"total_price"`
}

// Calculator computes print prices from a tier table.
// The zero value is not usable; construct with New or Default.
type Calculator struct {
	tiers []Tier
}

// Default returns a calculator using the reference tier table.
func Default() *Calculator {
	return New(DefaultTiers())
}

// New creates a calculator from a tier table.
// Tiers must be ordered by ascending MaxSize; the table is not copied.
func New(tiers []Tier) *Calculator {
	return &Calculator{tiers: tiers}
}

// Tiers returns the calculator's tier table.
func (c *Calculator) Tiers() []Tier {
	return c.tiers
}

// BasePrice computes the display-rounded base price for a print of the given
// dimensions in centimeters.
//
// Total sizes below MinSizeThreshold price at 0. Total sizes above the
// largest tier price at DefaultMaxPrice. A total size exactly on a shared
// tier boundary binds to the lower tier (first match in ascending order).
func (c *Calculator) BasePrice(width, height int) int {
	totalSize := height + width
	minDimension := min(height, width)

	if totalSize < MinSizeThreshold {
		return 0
	}

	for _, tier := range c.tiers {
		if totalSize <= tier.MaxSize {
			extra := 0
			if tier.ExtraPercentage > 0 && minDimension > MinDimensionForExtra {
				extra = tier.ExtraPercentage
			}
			return roundToDisplay(interpolate(totalSize, tier, extra))
		}
	}

	return roundToDisplay(DefaultMaxPrice)
}

// ColorUpcharge computes the side-color upcharge for a base price:
// UpchargePercentage of the base, capped at MaxUpcharge.
func (c *Calculator) ColorUpcharge(basePrice int) int {
	upcharge := int(math.Round(float64(basePrice) * float64(UpchargePercentage) / 100))
	return min(upcharge, MaxUpcharge)
}

// Quote computes the full price breakdown for a print.
// The color upcharge applies only when hasColorUpgrade is true; the total is
// display-rounded after adding the upcharge.
func (c *Calculator) Quote(width, height int, hasColorUpgrade bool) Breakdown {
	basePrice := c.BasePrice(width, height)

	colorUpcharge := 0
	if hasColorUpgrade {
		colorUpcharge = c.ColorUpcharge(basePrice)
	}

	return Breakdown{
		BasePrice:     basePrice,
		ColorUpcharge: colorUpcharge,
		TotalPrice:    roundToDisplay(basePrice + colorUpcharge),
	}
}

// interpolate computes the raw tier price at the given total size, adding
// extra percent on top, rounded to the nearest integer.
func interpolate(totalSize int, tier Tier, extra int) int {
	raw := float64(tier.BasePrice) +
		float64(tier.NextPrice-tier.BasePrice)*
			float64(totalSize-tier.BaseSize)/float64(tier.NextSize-tier.BaseSize)

	if extra > 0 {
		raw += raw * float64(extra) / 100
	}

	return int(math.Round(raw))
}

// roundToDisplay rounds a price down to the nearest multiple of 5 below the
// rounding breakpoint, and to the nearest multiple of 10 at or above it.
func roundToDisplay(price int) int {
	if price < RoundingBreakpoint {
		return price - price%5
	}
	return price - price%10
}
