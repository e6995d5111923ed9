package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arcanaland/patience/internal/config"
	"github.com/arcanaland/patience/internal/engine"
	"github.com/arcanaland/patience/internal/layout"
)

var (
	configFile string
	logFile    string
	verbose    bool

	logger = zap.NewNop()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "patience",
	Short: "Klondike solitaire with programming-language suits",
	Long: `Patience is a Klondike solitaire engine whose four suits are Java, Python,
JavaScript and C++. Play it in the terminal, serve it over HTTP, or deal and
validate board layouts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The game screen owns the terminal, so play only logs to a file
		if cmd.Name() == "play" && logFile == "" {
			return nil
		}

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if logFile != "" {
			cfg.OutputPaths = []string{logFile}
			cfg.ErrorOutputPaths = []string{logFile}
		}

		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/patience/config.toml)")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func configPath() string {
	if configFile != "" {
		return configFile
	}
	return config.GetConfigFilePath()
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfigFrom(configPath())
}

// addGameFlags registers the flags shared by the commands that run a game
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 0, "Shuffle seed, 0 for a random deal (overrides the config)")
	cmd.Flags().String("layout", "", "Start from a saved layout (.toml, .yaml) instead of a fresh deal")
}

// gameOptions builds engine options from the config and the command flags
func gameOptions(cmd *cobra.Command, cfg *config.Config) engine.Options {
	opts := engine.Options{
		Logger:           logger,
		Seed:             cfg.Game.Seed,
		LossCheckDelay:   cfg.LossCheckDelay(),
		TickInterval:     cfg.TickInterval(),
		StrictInvariants: cfg.Game.StrictInvariants,
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	return opts
}

// startGame deals a new game, or loads the one named by --layout
func startGame(cmd *cobra.Command, opts engine.Options) (*engine.Game, error) {
	path, _ := cmd.Flags().GetString("layout")
	if path == "" {
		return engine.New(opts), nil
	}

	b, err := layout.Load(path)
	if err != nil {
		return nil, err
	}
	return engine.NewFromBoard(b, opts)
}
