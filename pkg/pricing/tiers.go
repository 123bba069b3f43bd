package pricing

// Tier defines one contiguous range of total size (height + width) with its
// own linear price interpolation and optional large-format surcharge.
//
// A tier covers total sizes up to and including MaxSize. Within the tier the
// price is interpolated linearly between (BaseSize, BasePrice) and
// (NextSize, NextPrice). ExtraPercentage, when non-zero, is added on top of
// the interpolated price for prints whose narrower side exceeds the
// large-format minimum dimension.
type Tier struct {
	MaxSize         int `json:"max_size" toml:"max_size"`
	BasePrice       int `json:"base_price" toml:"base_price"`
	NextPrice       int `json:"next_price" toml:"next_price"`
	BaseSize        int `json:"base_size" toml:"base_size"`
	NextSize        int `json:"next_size" toml:"next_size"`
	ExtraPercentage int `json:"extra_percentage,omitempty" toml:"extra_percentage"`
}

// Reference pricing constants.
const (
	// MinSizeThreshold is the total size below which a print has no price.
	// Callers are expected to reject such sizes during validation; the zero
	// price is a defensive floor, not a customer-facing offer.
	MinSizeThreshold = 60

	// MinDimensionForExtra is the narrower-side length above which a tier's
	// surcharge percentage applies.
	MinDimensionForExtra = 100

	// DefaultMaxPrice is the flat price for total sizes above the largest tier.
	DefaultMaxPrice = 850

	// RoundingBreakpoint splits the display rounding rule: prices below it
	// round down to a multiple of 5, prices at or above it to a multiple of 10.
	RoundingBreakpoint = 520

	// UpchargePercentage is the side-color upcharge as a percentage of the
	// base price.
	UpchargePercentage = 10

	// MaxUpcharge caps the side-color upcharge.
	MaxUpcharge = 50
)

// DefaultTiers is the reference tier table, ordered by ascending MaxSize.
// Adjacent tiers share boundary values; the scan in BasePrice binds a total
// size on a shared boundary to the lower tier.
func DefaultTiers() []Tier {
	return []Tier{
		{MaxSize: 70, BasePrice: 90, NextPrice: 110, BaseSize: 60, NextSize: 70},
		{MaxSize: 90, BasePrice: 110, NextPrice: 135, BaseSize: 70, NextSize: 90},
		{MaxSize: 100, BasePrice: 135, NextPrice: 155, BaseSize: 90, NextSize: 100},
		{MaxSize: 120, BasePrice: 155, NextPrice: 195, BaseSize: 100, NextSize: 120},
		{MaxSize: 140, BasePrice: 195, NextPrice: 240, BaseSize: 120, NextSize: 140},
		{MaxSize: 170, BasePrice: 240, NextPrice: 315, BaseSize: 140, NextSize: 170},
		{MaxSize: 200, BasePrice: 315, NextPrice: 390, BaseSize: 170, NextSize: 200, ExtraPercentage: 5},
		{MaxSize: 250, BasePrice: 390, NextPrice: 475, BaseSize: 200, NextSize: 250, ExtraPercentage: 5},
		{MaxSize: 280, BasePrice: 475, NextPrice: 510, BaseSize: 250, NextSize: 280, ExtraPercentage: 5},
		{MaxSize: 300, BasePrice: 510, NextPrice: 550, BaseSize: 280, NextSize: 300, ExtraPercentage: 5},
		{MaxSize: 320, BasePrice: 550, NextPrice: 575, BaseSize: 300, NextSize: 320, ExtraPercentage: 5},
		{MaxSize: 340, BasePrice: 575, NextPrice: 600, BaseSize: 320, NextSize: 340, ExtraPercentage: 5},
		{MaxSize: 380, BasePrice: 600, NextPrice: 650, BaseSize: 340, NextSize: 380, ExtraPercentage: 10},
		{MaxSize: 420, BasePrice: 650, NextPrice: 740, BaseSize: 380, NextSize: 420, ExtraPercentage: 10},
		{MaxSize: 460, BasePrice: 740, NextPrice: 850, BaseSize: 420, NextSize: 460, ExtraPercentage: 10},
	}
}
