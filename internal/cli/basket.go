package cli

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/artprint-il/artprint/pkg/basket"
	apperrors "github.com/artprint-il/artprint/pkg/errors"
	"github.com/artprint-il/artprint/pkg/pricing"
)

// basketCommand creates the basket command with subcommands.
func (c *CLI) basketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "basket",
		Short: "Manage the persisted shopping basket",
		Long: `Manage the shopping basket. The basket is persisted under
~/.local/share/artprint/ and survives restarts; state older than the
staleness cutoff is discarded on load.`,
	}

	cmd.AddCommand(c.basketAddCommand())
	cmd.AddCommand(c.basketListCommand())
	cmd.AddCommand(c.basketQtyCommand())
	cmd.AddCommand(c.basketRemoveCommand())
	cmd.AddCommand(c.basketClearCommand())
	cmd.AddCommand(c.basketBrowseCommand())

	return cmd
}

// basketAddCommand creates the add subcommand.
func (c *CLI) basketAddCommand() *cobra.Command {
	var (
		imageName string
		sideColor string
	)

	cmd := &cobra.Command{
		Use:   "add WIDTHxHEIGHT",
		Short: "Add a configured print to the basket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, height, err := parseSize(args[0])
			if err != nil {
				return err
			}
			if result := c.Config.Sizing.Validate(width, height); !result.Valid {
				return apperrors.New(apperrors.ErrCodeInvalidSize, "%s", result.Errors[0])
			}

			color := sideColor
			if color == "" {
				color = c.Config.Colors.Default
			}
			if err := apperrors.ValidateHexColor(color); err != nil {
				return err
			}
			if !c.Config.Colors.HasColor(color) {
				return apperrors.New(apperrors.ErrCodeInvalidColor, "color %s is not in the palette", color)
			}

			q := c.calculator().Quote(width, height, c.Config.Colors.Enabled && c.Config.Colors.IsUpgrade(color))

			bs, closeStore, err := c.openBasket(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			item, err := bs.Add(cmd.Context(), basket.ItemConfig{
				Image:      basket.ImageRef{Name: imageName},
				CanvasSize: basket.CanvasSize{Width: width, Height: height},
				CanvasOptions: basket.CanvasOptions{
					SideColor:     color,
					ColorUpcharge: q.ColorUpcharge,
				},
				BasePrice:  q.BasePrice,
				TotalPrice: q.TotalPrice,
			})
			if err != nil {
				return err
			}

			printSuccess("Added %s at %s", args[0], pricing.FormatPrice(item.TotalPrice))
			printDetail("id: %s", item.ID)

			summary := bs.Summary()
			printDetail("%d items, %s total", summary.TotalItems, pricing.FormatPrice(summary.TotalPrice))
			return nil
		},
	}

	cmd.Flags().StringVar(&imageName, "image", "custom print", "image name for the basket line")
	cmd.Flags().StringVar(&sideColor, "color", "", "side color hex (default is the no-upcharge color)")
	return cmd
}

// basketListCommand creates the list subcommand.
func (c *CLI) basketListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the basket contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, closeStore, err := c.openBasket(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			items := bs.Items()
			if len(items) == 0 {
				printInfo("The basket is empty")
				printNextStep("Add a print", "artprint basket add 100x70")
				return nil
			}

			for _, it := range items {
				printKeyValue(it.Image.Name, sizeLabel(it.CanvasSize.Width, it.CanvasSize.Height))
				printDetail("id: %s", it.ID)
				printDetail("qty %d · %s each", it.Quantity, pricing.FormatPrice(it.TotalPrice))
			}

			summary := bs.Summary()
			printNewline()
			printPriceLine("total", pricing.FormatPrice(summary.TotalPrice))
			printDetail("%d lines, %d prints", summary.ItemCount, summary.TotalItems)
			return nil
		},
	}
}

// basketQtyCommand creates the qty subcommand.
func (c *CLI) basketQtyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "qty ID QUANTITY",
		Short: "Set the quantity of a basket item",
		Long: `Set the quantity of a basket item. A quantity of zero removes the
item; quantities above the per-item limit are ignored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return apperrors.New(apperrors.ErrCodeInvalidQuantity, "quantity must be an integer, got %q", args[1])
			}

			bs, closeStore, err := c.openBasket(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			id := args[0]
			if _, ok := bs.Get(id); !ok {
				return apperrors.New(apperrors.ErrCodeNotFound, "no basket item with id %s", id)
			}

			bs.UpdateQuantity(cmd.Context(), id, quantity)
			if quantity <= 0 {
				printSuccess("Removed %s", id)
				return nil
			}
			if it, ok := bs.Get(id); ok {
				printSuccess("Quantity set to %d", it.Quantity)
			}
			return nil
		},
	}
}

// basketRemoveCommand creates the remove subcommand.
func (c *CLI) basketRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an item from the basket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, closeStore, err := c.openBasket(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			id := args[0]
			if _, ok := bs.Get(id); !ok {
				return apperrors.New(apperrors.ErrCodeNotFound, "no basket item with id %s", id)
			}
			bs.Remove(cmd.Context(), id)
			printSuccess("Removed %s", id)
			return nil
		},
	}
}

// basketClearCommand creates the clear subcommand.
func (c *CLI) basketClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the basket",
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, closeStore, err := c.openBasket(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			bs.Clear(cmd.Context())
			printSuccess("Basket cleared")
			return nil
		},
	}
}

// basketBrowseCommand creates the browse subcommand.
func (c *CLI) basketBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the basket interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, closeStore, err := c.openBasket(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			items := bs.Items()
			if len(items) == 0 {
				printInfo("The basket is empty")
				return nil
			}

			model := NewBasketListModel(items, c.Config.Basket.MaxQuantity)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}

			m, ok := final.(BasketListModel)
			if !ok {
				return nil
			}
			for id, qty := range m.Quantities {
				bs.UpdateQuantity(cmd.Context(), id, qty)
			}
			for _, id := range m.Removed {
				bs.Remove(cmd.Context(), id)
			}
			if len(m.Quantities) > 0 || len(m.Removed) > 0 {
				printSuccess("Applied %d change(s)", len(m.Quantities)+len(m.Removed))
			}
			return nil
		},
	}
}
