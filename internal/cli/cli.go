// Package cli implements the artprint command-line interface.
//
// This package provides commands for quoting canvas prices, validating print
// sizes, managing the persisted basket, assembling checkout orders, and
// serving the HTTP API. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/artprint-il/artprint/pkg/basket"
	"github.com/artprint-il/artprint/pkg/buildinfo"
	"github.com/artprint-il/artprint/pkg/config"
	apperrors "github.com/artprint-il/artprint/pkg/errors"
	"github.com/artprint-il/artprint/pkg/pricing"
	"github.com/artprint-il/artprint/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "artprint"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs; commands read it directly.
	Config config.Config

	// ConfigPath overrides the default config location when set by flag.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Artprint prices and orders custom canvas prints",
		Long:         `Artprint is the storefront engine for custom canvas prints: it quotes prices from the tiered size table, validates print dimensions, keeps a persisted shopping basket, and assembles checkout orders.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "path to config file (default ~/.config/artprint/config.toml)")

	// Register all subcommands
	root.AddCommand(c.priceCommand())
	root.AddCommand(c.sizeCommand())
	root.AddCommand(c.basketCommand())
	root.AddCommand(c.checkoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves and loads the TOML config into c.Config.
func (c *CLI) loadConfig() error {
	path := c.ConfigPath
	if path == "" {
		dir, err := configDir()
		if err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// calculator builds the pricing calculator from the loaded config.
func (c *CLI) calculator() *pricing.Calculator {
	return pricing.New(c.Config.Pricing.Tiers)
}

// =============================================================================
// Basket Factory
// =============================================================================

// openBasket opens the persisted basket store. The returned close function
// releases the underlying file store.
func (c *CLI) openBasket(ctx context.Context) (*basket.Store, func(), error) {
	st, err := storage.NewFileStore(dataDir())
	if err != nil {
		return nil, nil, fmt.Errorf("open basket storage: %w", err)
	}
	bs := basket.New(ctx, st, basket.Options{
		MaxItems:    c.Config.Basket.MaxItems,
		MaxQuantity: c.Config.Basket.MaxQuantity,
		StaleAfter:  c.Config.Basket.StaleAfter(),
		Logger:      c.Logger,
	})
	return bs, func() { _ = st.Close() }, nil
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the data directory override, or empty to let the file
// store apply the XDG default (~/.local/share/artprint/).
func dataDir() string {
	return os.Getenv("ARTPRINT_DATA_DIR")
}

// configDir returns the config directory using XDG standard (~/.config/artprint/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Argument Parsing
// =============================================================================

// parseSize parses a WxH dimension argument like "100x70".
func parseSize(s string) (width, height int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, apperrors.New(apperrors.ErrCodeInvalidInput, "size must look like WIDTHxHEIGHT (e.g. 100x70), got %q", s)
	}
	width, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid width %q", parts[0])
	}
	height, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid height %q", parts[1])
	}
	return width, height, nil
}
