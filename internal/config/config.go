package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"folio/internal/eventbus"
	"folio/internal/turn"
)

// Config represents the application configuration
type Config struct {
	Version    int          `toml:"version"`
	LibraryDir string       `toml:"library_dir"`
	UISettings UISettings   `toml:"ui"`
	Turn       TurnSettings `toml:"turn"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowPageNumbers bool `toml:"show_page_numbers"`
	TapZones        bool `toml:"tap_zones"`
}

// TurnSettings holds the page-turn controller tuning knobs. Durations are
// milliseconds so the TOML file stays plain integers.
type TurnSettings struct {
	IdleGapMs         int     `toml:"idle_gap_ms"`
	CooldownMs        int     `toml:"cooldown_ms"`
	FadeDelayMs       int     `toml:"fade_delay_ms"`
	WheelThreshold    float64 `toml:"wheel_threshold"`
	TrackpadThreshold float64 `toml:"trackpad_threshold"`
	WheelScale        float64 `toml:"wheel_scale"`
	TrackpadScale     float64 `toml:"trackpad_scale"`
	WheelCap          float64 `toml:"wheel_cap"`
	TrackpadCap       float64 `toml:"trackpad_cap"`
	SwipeThreshold    float64 `toml:"swipe_threshold"`
}

// ToTurnConfig converts the persisted settings into a controller config.
// Zero values stay zero; the controller substitutes its own defaults.
func (ts TurnSettings) ToTurnConfig() turn.Config {
	return turn.Config{
		IdleGap:           time.Duration(ts.IdleGapMs) * time.Millisecond,
		Cooldown:          time.Duration(ts.CooldownMs) * time.Millisecond,
		FadeDelay:         time.Duration(ts.FadeDelayMs) * time.Millisecond,
		WheelThreshold:    ts.WheelThreshold,
		TrackpadThreshold: ts.TrackpadThreshold,
		WheelScale:        ts.WheelScale,
		TrackpadScale:     ts.TrackpadScale,
		WheelCap:          ts.WheelCap,
		TrackpadCap:       ts.TrackpadCap,
		SwipeThreshold:    ts.SwipeThreshold,
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	// Create folio config directory
	folioDir := filepath.Join(configDir, "folio")
	os.MkdirAll(folioDir, 0755)

	return &configService{
		filePath: filepath.Join(folioDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg := DefaultConfig()

		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{LibraryDir: cfg.LibraryDir})
		}

		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{LibraryDir: cfg.LibraryDir})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	// The working directory is the default scan root; scanning a whole
	// home directory unasked would be slow and noisy.
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	def := turn.DefaultConfig()
	return &Config{
		Version:    1,
		LibraryDir: workDir,
		UISettings: UISettings{
			ShowPageNumbers: true,
			TapZones:        true,
		},
		Turn: TurnSettings{
			IdleGapMs:         int(def.IdleGap / time.Millisecond),
			CooldownMs:        int(def.Cooldown / time.Millisecond),
			FadeDelayMs:       int(def.FadeDelay / time.Millisecond),
			WheelThreshold:    def.WheelThreshold,
			TrackpadThreshold: def.TrackpadThreshold,
			WheelScale:        def.WheelScale,
			TrackpadScale:     def.TrackpadScale,
			WheelCap:          def.WheelCap,
			TrackpadCap:       def.TrackpadCap,
			SwipeThreshold:    def.SwipeThreshold,
		},
	}
}
