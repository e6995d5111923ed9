package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Game    GameConfig    `toml:"game"`
	Display DisplayConfig `toml:"display"`
	Server  ServerConfig  `toml:"server"`
}

// GameConfig holds the engine settings
type GameConfig struct {
	LossCheckDelayMS int   `toml:"loss_check_delay_ms"`
	TickIntervalMS   int   `toml:"tick_interval_ms"`
	Seed             int64 `toml:"seed"`
	StrictInvariants bool  `toml:"strict_invariants"`
}

// DisplayConfig holds the terminal output settings
type DisplayConfig struct {
	Color bool `toml:"color"`
	Hints bool `toml:"hints"`
}

// ServerConfig holds the HTTP host settings
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration written on first use
func Default() *Config {
	return &Config{
		Game: GameConfig{
			LossCheckDelayMS: 500,
			TickIntervalMS:   1000,
		},
		Display: DisplayConfig{
			Color: true,
			Hints: true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// LossCheckDelay returns the configured delay as a duration
func (c *Config) LossCheckDelay() time.Duration {
	return time.Duration(c.Game.LossCheckDelayMS) * time.Millisecond
}

// TickInterval returns the configured clock cadence as a duration
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Game.TickIntervalMS) * time.Millisecond
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "patience", "config.toml")
}

// LoadConfig loads the config file from its default location
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(GetConfigFilePath())
}

// LoadConfigFrom loads the config file at path, creating it with defaults
// when it doesn't exist. Keys missing from the file keep their defaults.
func LoadConfigFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefaultConfig(path)
	}

	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) (*Config, error) {
	config := Default()
	if err := Save(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes config to path, creating the directory when needed
func Save(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// Keys lists the settable keys in file order
func Keys() []string {
	return []string{
		"game.loss_check_delay_ms",
		"game.tick_interval_ms",
		"game.seed",
		"game.strict_invariants",
		"display.color",
		"display.hints",
		"server.addr",
	}
}

// Get returns the value of a dotted key such as "game.seed"
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "game.loss_check_delay_ms":
		return strconv.Itoa(c.Game.LossCheckDelayMS), nil
	case "game.tick_interval_ms":
		return strconv.Itoa(c.Game.TickIntervalMS), nil
	case "game.seed":
		return strconv.FormatInt(c.Game.Seed, 10), nil
	case "game.strict_invariants":
		return strconv.FormatBool(c.Game.StrictInvariants), nil
	case "display.color":
		return strconv.FormatBool(c.Display.Color), nil
	case "display.hints":
		return strconv.FormatBool(c.Display.Hints), nil
	case "server.addr":
		return c.Server.Addr, nil
	}
	return "", fmt.Errorf("unknown config key: %s", key)
}

// Set updates a dotted key from its string form. A rejected value leaves
// the config unchanged.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	next := *c
	var err error
	switch key {
	case "game.loss_check_delay_ms":
		next.Game.LossCheckDelayMS, err = positive(value)
	case "game.tick_interval_ms":
		next.Game.TickIntervalMS, err = positive(value)
	case "game.seed":
		next.Game.Seed, err = strconv.ParseInt(value, 10, 64)
	case "game.strict_invariants":
		next.Game.StrictInvariants, err = strconv.ParseBool(value)
	case "display.color":
		next.Display.Color, err = strconv.ParseBool(value)
	case "display.hints":
		next.Display.Hints, err = strconv.ParseBool(value)
	case "server.addr":
		if value == "" {
			err = fmt.Errorf("address must not be empty")
		}
		next.Server.Addr = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*c = next
	return nil
}

func positive(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

// SetValue loads the config at path, updates one key and writes it back
func SetValue(path, key, value string) error {
	config, err := LoadConfigFrom(path)
	if err != nil {
		return err
	}

	if err := config.Set(key, value); err != nil {
		return err
	}

	return Save(path, config)
}
