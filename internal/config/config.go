// Package config provides YAML-based configuration for the overworld with
// environment variable overrides.
package config

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-overworld/internal/overworld"
)

//go:embed defaults/overworld.yaml
var defaultYAML []byte

// Config contains all configuration for the overworld.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Player  PlayerConfig  `yaml:"player"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig defines the session parameters.
type GameConfig struct {
	TickRate  int    `yaml:"tick_rate" env:"OVERWORLD_TICK_RATE"`
	StartRoom string `yaml:"start_room" env:"OVERWORLD_START_ROOM"`
	AssetsDir string `yaml:"assets_dir" env:"OVERWORLD_ASSETS_DIR"` // Empty means embedded assets
}

// PlayerConfig defines movement parameters.
type PlayerConfig struct {
	Speed      float64       `yaml:"speed" env:"OVERWORLD_PLAYER_SPEED"` // Tiles per second
	WalkWindow time.Duration `yaml:"walk_window" env:"OVERWORLD_WALK_WINDOW"`
}

// StorageConfig defines where the journal and save slots live.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"OVERWORLD_DB"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level" env:"OVERWORLD_LOG_LEVEL"`
	File  string `yaml:"file" env:"OVERWORLD_LOG_FILE"`
}

// Default returns the hard-coded configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			TickRate:  30,
			StartRoom: "home",
		},
		Player: PlayerConfig{
			Speed:      8,
			WalkWindow: 150 * time.Millisecond,
		},
		Storage: StorageConfig{
			DBPath: "~/.overworld/overworld.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.overworld/overworld.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Game.TickRate <= 0 || c.Game.TickRate > 240 {
		return fmt.Errorf("config: tick_rate %d out of range 1..240", c.Game.TickRate)
	}
	if c.Game.StartRoom == "" {
		return fmt.Errorf("config: start_room is empty")
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("config: player speed must be positive, got %v", c.Player.Speed)
	}
	if c.Player.WalkWindow <= 0 {
		return fmt.Errorf("config: walk_window must be positive, got %v", c.Player.WalkWindow)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	return nil
}

// TickInterval returns the frame interval for the tick rate.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Game.TickRate)
}

// Movement converts the player section for the overworld.
func (c Config) Movement() overworld.PlayerConfig {
	return overworld.PlayerConfig{Speed: c.Player.Speed, WalkWindow: c.Player.WalkWindow}
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
