package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/arcanaland/patience/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a game over HTTP",
	Long: `Serve runs one game session behind a JSON API until interrupted.

Endpoints:
  GET  /api/game            current board
  POST /api/game/new        deal a new game
  POST /api/game/draw       draw from the stock
  POST /api/game/move       {"card":"Python-9","from":"tableau:2","to":"t4"}
  POST /api/game/promote    {"card":"Java-A"}
  POST /api/game/surrender  give up
  GET  /healthz`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		game, err := startGame(cmd, gameOptions(cmd, cfg))
		if err != nil {
			return err
		}
		defer game.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(game, logger).Serve(ctx, addr)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
	addGameFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides the config)")
}
