package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/milk9111/dreamless/analytics"
	"github.com/milk9111/dreamless/levels"
)

// EnvPrefix prefixes environment overrides, for example
// DREAMLESS_GAME_START_LEVEL=3.
const EnvPrefix = "DREAMLESS"

var ErrInvalid = errors.New("config: invalid value")

// Config is the game configuration.
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Game      GameConfig      `mapstructure:"game"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Audio     AudioConfig     `mapstructure:"audio"`
}

type WindowConfig struct {
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	Title       string `mapstructure:"title"`
	Fullscreen  bool   `mapstructure:"fullscreen"`
	BaseMonitor bool   `mapstructure:"base_monitor"`
}

type GameConfig struct {
	StartLevel int  `mapstructure:"start_level"`
	Debug      bool `mapstructure:"debug"`
	// Watch reloads the current level when its file changes on disk.
	Watch    bool   `mapstructure:"watch"`
	LevelDir string `mapstructure:"level_dir"`
}

// AnalyticsConfig controls play-session reporting. It is off unless
// enabled explicitly.
type AnalyticsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

type AudioConfig struct {
	// Volume is the master gain in decibels.
	Volume float32 `mapstructure:"volume"`
	Mute   bool    `mapstructure:"mute"`
	Music  bool    `mapstructure:"music"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Dreamless")
	v.SetDefault("window.fullscreen", false)
	v.SetDefault("window.base_monitor", false)

	v.SetDefault("game.start_level", 1)
	v.SetDefault("game.debug", false)
	v.SetDefault("game.watch", false)
	v.SetDefault("game.level_dir", levels.DefaultDir)

	v.SetDefault("analytics.enabled", false)
	v.SetDefault("analytics.endpoint", analytics.DefaultEndpoint)

	v.SetDefault("audio.volume", 0)
	v.SetDefault("audio.mute", false)
	v.SetDefault("audio.music", true)
}

// Load reads the configuration from defaults, the optional file at path and
// DREAMLESS_* environment variables, in increasing priority.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the values can be used to start the game.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Game.StartLevel < 1 {
		errs = append(errs, fmt.Errorf("%w: start level %d", ErrInvalid, c.Game.StartLevel))
	}
	if c.Analytics.Enabled && c.Analytics.Endpoint == "" {
		errs = append(errs, fmt.Errorf("%w: analytics enabled without an endpoint", ErrInvalid))
	}
	return errors.Join(errs...)
}
