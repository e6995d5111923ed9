package cmd

import (
	"fmt"
	"math/rand"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/patience/internal/deck"
	"github.com/arcanaland/patience/internal/layout"
	"github.com/arcanaland/patience/internal/render"
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Deal a board and print it",
	Long: `Deal shuffles a deck, lays out the seven tableaus and prints the board.
The same seed always produces the same deal. With --out the board is also
saved as a layout that play, serve and validate accept.

Examples:
  patience deal
  patience deal --seed 42
  patience deal --seed 42 --out game.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		seed := cfg.Game.Seed
		if cmd.Flags().Changed("seed") {
			seed, _ = cmd.Flags().GetInt64("seed")
		}
		if seed == 0 {
			seed = rand.Int63()
		}

		useColor := cfg.Display.Color
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			useColor = false
		}

		b := deck.Deal(deck.NewRand(seed))

		fmt.Println(colorize.CyanString("Seed: ") + colorize.HiWhiteString("%d", seed))
		fmt.Println()
		render.NewPrinter(useColor).Board(os.Stdout, b)

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := layout.Save(out, b); err != nil {
				return err
			}
			fmt.Println("Layout saved to:", out)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dealCmd)

	dealCmd.Flags().Int64("seed", 0, "Shuffle seed, 0 for a random deal")
	dealCmd.Flags().StringP("out", "o", "", "Save the deal as a layout file (.toml, .yaml)")
	dealCmd.Flags().Bool("no-color", false, "Print without colours")
}
