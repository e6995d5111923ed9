package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/arcanaland/patience/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Play opens the interactive game screen. Move between piles with the arrow
keys, pick up and drop cards with enter, draw with d and send a card to its
foundation with a. Press ? for every key.

Examples:
  patience play
  patience play --seed 42
  patience play --layout saved.toml --log-file patience.log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		feed := tui.NewFeed()
		opts := gameOptions(cmd, cfg)
		opts.OnChange = feed.Push

		game, err := startGame(cmd, opts)
		if err != nil {
			return err
		}
		defer feed.Close()
		defer game.Close()

		model := tui.New(game, feed, cfg.Display.Hints)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	RootCmd.AddCommand(playCmd)
	addGameFlags(playCmd)
}
