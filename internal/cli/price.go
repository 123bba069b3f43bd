package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/artprint-il/artprint/pkg/errors"
	"github.com/artprint-il/artprint/pkg/pricing"
)

// priceCommand creates the price command with subcommands.
func (c *CLI) priceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Quote canvas prices from the tiered size table",
	}

	cmd.AddCommand(c.priceQuoteCommand())
	cmd.AddCommand(c.priceFindCommand())

	return cmd
}

// priceQuoteCommand creates the quote subcommand.
func (c *CLI) priceQuoteCommand() *cobra.Command {
	var sideColor string

	cmd := &cobra.Command{
		Use:   "quote WIDTHxHEIGHT",
		Short: "Quote the price for a print size",
		Long: `Quote the price for a canvas print of the given size in centimeters.

The price is interpolated from the tiered size table over the total size
(width + height). Selecting a non-default side color with --color adds
the color upcharge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, height, err := parseSize(args[0])
			if err != nil {
				return err
			}

			if result := c.Config.Sizing.Validate(width, height); !result.Valid {
				for _, msg := range result.Errors {
					printWarning("%s", msg)
				}
			}

			upgrade := false
			if sideColor != "" {
				if err := apperrors.ValidateHexColor(sideColor); err != nil {
					return err
				}
				if !c.Config.Colors.HasColor(sideColor) {
					return apperrors.New(apperrors.ErrCodeInvalidColor, "color %s is not in the palette", sideColor)
				}
				upgrade = c.Config.Colors.Enabled && c.Config.Colors.IsUpgrade(sideColor)
			}

			q := c.calculator().Quote(width, height, upgrade)

			printKeyValue("size", args[0]+" cm")
			printPriceLine("base", pricing.FormatPrice(q.BasePrice))
			if q.ColorUpcharge > 0 {
				printPriceLine("color", pricing.FormatPrice(q.ColorUpcharge))
			}
			printPriceLine("total", pricing.FormatPrice(q.TotalPrice))
			printNewline()
			printNextStep("Add it to the basket", "artprint basket add "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&sideColor, "color", "", "side color hex (e.g. #000000)")
	return cmd
}

// priceFindCommand creates the find subcommand.
func (c *CLI) priceFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find TARGET",
		Short: "Find the print size closest to a target price",
		Long: `Search the production size range for the print whose base price is
closest to the target, in shekels.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.Atoi(args[0])
			if err != nil || target <= 0 {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "target must be a positive integer, got %q", args[0])
			}

			calc := c.calculator()
			width, height := calc.SizeForPrice(target)
			price := calc.BasePrice(width, height)

			printKeyValue("target", pricing.FormatPrice(target))
			printKeyValue("size", sizeLabel(width, height))
			printPriceLine("price", pricing.FormatPrice(price))
			if price != target {
				printDetail("no exact match; closest available price shown")
			}
			return nil
		},
	}
}

// sizeLabel formats a dimension pair for display.
func sizeLabel(width, height int) string {
	return strconv.Itoa(width) + "x" + strconv.Itoa(height) + " cm"
}
