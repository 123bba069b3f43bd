package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/artprint-il/artprint/pkg/observability"
	"github.com/artprint-il/artprint/pkg/order"
	"github.com/artprint-il/artprint/pkg/pricing"
)

// checkoutCommand creates the checkout command.
func (c *CLI) checkoutCommand() *cobra.Command {
	var (
		contact order.ContactInfo
		output  string
		keep    bool
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Assemble an order from the basket",
		Long: `Assemble a checkout order from the current basket contents.

The order snapshots the basket items and totals, validates the contact
details, and writes the order record as JSON. On success the basket is
emptied unless --keep is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, closeStore, err := c.openBasket(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			p := newProgress(c.Logger)

			o, err := order.Assemble(bs.Items(), contact)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = filepath.Join(os.TempDir(), "order-"+o.ID+".json")
			}
			if err := order.WriteJSONFile(o, path); err != nil {
				return err
			}

			if !keep {
				bs.Clear(cmd.Context())
			}
			observability.Basket().OnCheckout(cmd.Context(), len(o.BasketItems), o.TotalPrice)

			p.done("Order assembled")
			printSuccess("Order %s", o.ID)
			printPriceLine("total", pricing.FormatPrice(o.TotalPrice))
			printDetail("%d line(s) for %s", len(o.BasketItems), contact.FullName)
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&contact.FullName, "name", "", "customer full name (required)")
	cmd.Flags().StringVar(&contact.Phone, "phone", "", "customer phone number (required)")
	cmd.Flags().StringVar(&contact.Email, "email", "", "customer email address (required)")
	cmd.Flags().StringVar(&contact.Address, "address", "", "delivery address")
	cmd.Flags().StringVar(&contact.Notes, "notes", "", "order notes")
	cmd.Flags().StringVarP(&output, "output", "o", "", "order JSON output path")
	cmd.Flags().BoolVar(&keep, "keep", false, "keep the basket contents after checkout")

	return cmd
}
