package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/patience/internal/layout"
	"github.com/arcanaland/patience/internal/render"
	"github.com/arcanaland/patience/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a board layout file",
	Long: `Validate checks that a layout file describes a legal board: all 52 cards
exactly once, foundations built up from the Ace of their category, a face-down
stock, a face-up waste and no face-down card above a face-up one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		// Check if path exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("layout file not found: %s", path)
		}

		b, err := layout.Load(path)
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		results := validator.NewValidator(b).Validate()

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("%s Layout '%s' is a valid board.\n", colorize.GreenString("✅"), path)
			fmt.Println(render.Summary(b))
		} else {
			fmt.Printf("%s Layout '%s' has %d validation errors:\n", colorize.RedString("❌"), path, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Println(colorize.YellowString("\nWarnings:"))
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
