package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/artprint-il/artprint/pkg/errors"
)

// sizeCommand creates the size command with subcommands.
func (c *CLI) sizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Validate and suggest print sizes",
	}

	cmd.AddCommand(c.sizeCheckCommand())
	cmd.AddCommand(c.sizeSuggestCommand())

	return cmd
}

// sizeCheckCommand creates the check subcommand.
func (c *CLI) sizeCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check WIDTHxHEIGHT",
		Short: "Check a print size against the production limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, height, err := parseSize(args[0])
			if err != nil {
				return err
			}

			result := c.Config.Sizing.Validate(width, height)
			if result.Valid {
				printSuccess("%s is printable", args[0])
				return nil
			}

			for _, msg := range result.Errors {
				printError("%s", msg)
			}
			cw, ch := c.Config.Sizing.Constrain(width, height)
			printDetail("nearest printable size: %s", sizeLabel(cw, ch))
			return apperrors.New(apperrors.ErrCodeInvalidSize, "%dx%d is outside the production limits", width, height)
		},
	}
}

// sizeSuggestCommand creates the suggest subcommand.
func (c *CLI) sizeSuggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest RATIO",
		Short: "Suggest a default print size for an image aspect ratio",
		Long: `Suggest the default print size for an image with the given aspect ratio
(width divided by height, e.g. 1.5 for a 3:2 photo). The longer side is
set to the configured default and the other side follows the ratio.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratio, err := strconv.ParseFloat(args[0], 64)
			if err != nil || ratio <= 0 {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "ratio must be a positive number, got %q", args[0])
			}

			width, height := c.Config.Sizing.DefaultSize(ratio)
			printKeyValue("ratio", args[0])
			printKeyValue("size", sizeLabel(width, height))
			printNextStep("Quote it", "artprint price quote "+strconv.Itoa(width)+"x"+strconv.Itoa(height))
			return nil
		},
	}
}
