// Package config loads the storefront configuration.
//
// Configuration is TOML with embedded defaults matching the reference shop:
// the pricing tier table, size constraints, basket limits, the side-color
// palette, and the HTTP server address. A missing config file is not an
// error; the defaults apply.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/artprint-il/artprint/pkg/errors"
	"github.com/artprint-il/artprint/pkg/pricing"
	"github.com/artprint-il/artprint/pkg/sizing"
)

// Config is the full application configuration.
type Config struct {
	Pricing PricingConfig      `toml:"pricing"`
	Sizing  sizing.Constraints `toml:"sizing"`
	Basket  BasketConfig       `toml:"basket"`
	Colors  ColorsConfig       `toml:"colors"`
	Server  ServerConfig       `toml:"server"`
}

// PricingConfig holds the tier table.
type PricingConfig struct {
	Tiers []pricing.Tier `toml:"tiers"`
}

// BasketConfig bounds the basket.
type BasketConfig struct {
	MaxItems       int `toml:"max_items"`
	MaxQuantity    int `toml:"max_quantity"`
	StaleAfterDays int `toml:"stale_after_days"`
}

// StaleAfter returns the staleness cutoff as a duration.
func (b BasketConfig) StaleAfter() time.Duration {
	return time.Duration(b.StaleAfterDays) * 24 * time.Hour
}

// Color is one palette entry.
type Color struct {
	Hex  string `toml:"hex"`
	Name string `toml:"name"`
}

// ColorsConfig holds the side-color feature flag and palette.
type ColorsConfig struct {
	// Enabled toggles the side-color selection feature.
	Enabled bool `toml:"enabled"`

	// Default is the no-upcharge color.
	Default string `toml:"default"`

	Palette []Color `toml:"palette"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Pricing: PricingConfig{Tiers: pricing.DefaultTiers()},
		Sizing:  sizing.DefaultConstraints(),
		Basket: BasketConfig{
			MaxItems:       100,
			MaxQuantity:    99,
			StaleAfterDays: 30,
		},
		Colors: ColorsConfig{
			Enabled: true,
			Default: "#FFFFFF",
			Palette: []Color{
				{Hex: "#FFFFFF", Name: "white"},
				{Hex: "#000000", Name: "black"},
				{Hex: "#8B4513", Name: "brown"},
				{Hex: "#D2B48C", Name: "beige"},
				{Hex: "#708090", Name: "gray"},
				{Hex: "#2F4F4F", Name: "dark gray"},
				{Hex: "#8FBC8F", Name: "light green"},
				{Hex: "#4682B4", Name: "blue"},
			},
		},
		Server: ServerConfig{Addr: "localhost:8480"},
	}
}

// Load reads a TOML config file on top of the defaults.
// An empty path or a missing file returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if len(c.Pricing.Tiers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pricing.tiers cannot be empty")
	}
	prev := 0
	for i, t := range c.Pricing.Tiers {
		if t.MaxSize <= prev {
			return errors.New(errors.ErrCodeInvalidConfig, "pricing.tiers[%d].max_size must ascend (got %d after %d)", i, t.MaxSize, prev)
		}
		if t.NextSize <= t.BaseSize {
			return errors.New(errors.ErrCodeInvalidConfig, "pricing.tiers[%d] has an empty interpolation range", i)
		}
		if t.ExtraPercentage < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "pricing.tiers[%d].extra_percentage cannot be negative", i)
		}
		prev = t.MaxSize
	}

	if c.Sizing.MinWidth <= 0 || c.Sizing.MinHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "sizing minimums must be positive")
	}
	if c.Sizing.MaxWidth < c.Sizing.MinWidth || c.Sizing.MaxHeight < c.Sizing.MinHeight {
		return errors.New(errors.ErrCodeInvalidConfig, "sizing maximums must not be below the minimums")
	}

	if c.Basket.MaxItems <= 0 || c.Basket.MaxQuantity <= 0 || c.Basket.StaleAfterDays <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "basket limits must be positive")
	}

	if err := errors.ValidateHexColor(c.Colors.Default); err != nil {
		return err
	}
	for _, color := range c.Colors.Palette {
		if err := errors.ValidateHexColor(color.Hex); err != nil {
			return err
		}
	}

	return nil
}

// HasColor reports whether hex is in the palette.
func (c ColorsConfig) HasColor(hex string) bool {
	for _, color := range c.Palette {
		if color.Hex == hex {
			return true
		}
	}
	return false
}

// IsUpgrade reports whether selecting hex costs an upcharge: any valid
// palette color other than the default.
func (c ColorsConfig) IsUpgrade(hex string) bool {
	return hex != "" && hex != c.Default
}
