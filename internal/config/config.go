package config

import (
	"fmt"
	"os"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Gallery     GalleryConfig     `mapstructure:"gallery"`
	Annotations AnnotationsConfig `mapstructure:"annotations"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr               string `mapstructure:"addr"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec"`
	ReadTimeoutSec     int    `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec    int    `mapstructure:"write_timeout_sec"`
}

type GalleryConfig struct {
	ImagesDir        string   `mapstructure:"images_dir"`
	IconSize         int      `mapstructure:"icon_size"`
	MinIconSize      int      `mapstructure:"min_icon_size"`
	MaxIconSize      int      `mapstructure:"max_icon_size"`
	CacheCapacity    int      `mapstructure:"cache_capacity"`
	Workers          int      `mapstructure:"workers"`
	ViewportBufferPx int      `mapstructure:"viewport_buffer_px"`
	BorderWidth      int      `mapstructure:"border_width"`
	DeferDelayMs     int      `mapstructure:"defer_delay_ms"`
	DrawLabels       bool     `mapstructure:"draw_labels"`
	SupportedFormats []string `mapstructure:"supported_formats"`
}

type AnnotationsConfig struct {
	// Dir is the alternate annotation directory searched after the
	// image's own directory. Empty means same-directory only.
	Dir string `mapstructure:"dir"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func Load(path string) (*Config, error) {
	cfg := config.New()

	configPath := path
	if configPath == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			configPath = "config.yaml"
		} else if _, err := os.Stat("/app/config.yaml"); err == nil {
			configPath = "/app/config.yaml"
		} else {
			return nil, fmt.Errorf("config.yaml not found")
		}
	}

	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = ""
	}

	if err := cfg.Load(configPath, envPath, "APP"); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	appConfig := &Config{}
	if err := cfg.Unmarshal(appConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(appConfig)

	if err := validateConfig(appConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	zlog.Logger.Info().
		Str("images_dir", appConfig.Gallery.ImagesDir).
		Int("icon_size", appConfig.Gallery.IconSize).
		Int("cache_capacity", appConfig.Gallery.CacheCapacity).
		Int("workers", appConfig.Gallery.Workers).
		Str("annotations_dir", appConfig.Annotations.Dir).
		Msg("Config loaded successfully")

	return appConfig, nil
}

func applyDefaults(cfg *Config) {
	g := &cfg.Gallery
	if g.IconSize == 0 {
		g.IconSize = 100
	}
	if g.MinIconSize == 0 {
		g.MinIconSize = 40
	}
	if g.MaxIconSize == 0 {
		g.MaxIconSize = 300
	}
	if g.CacheCapacity == 0 {
		g.CacheCapacity = 300
	}
	if g.Workers == 0 {
		g.Workers = 4
	}
	if g.ViewportBufferPx == 0 {
		g.ViewportBufferPx = 200
	}
	if g.BorderWidth == 0 {
		g.BorderWidth = 4
	}
	if g.DeferDelayMs == 0 {
		g.DeferDelayMs = 10
	}
	if len(g.SupportedFormats) == 0 {
		g.SupportedFormats = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp"}
	}
}

func validateConfig(cfg *Config) error {
	// Server
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if cfg.Server.ShutdownTimeoutSec <= 0 {
		return fmt.Errorf("server.shutdown_timeout_sec must be positive")
	}
	if cfg.Server.ReadTimeoutSec <= 0 {
		return fmt.Errorf("server.read_timeout_sec must be positive")
	}
	if cfg.Server.WriteTimeoutSec <= 0 {
		return fmt.Errorf("server.write_timeout_sec must be positive")
	}

	// Gallery
	g := cfg.Gallery
	if g.ImagesDir == "" {
		return fmt.Errorf("gallery.images_dir is required")
	}
	if g.MinIconSize <= 0 || g.MaxIconSize < g.MinIconSize {
		return fmt.Errorf("gallery.min_icon_size/max_icon_size bounds are invalid")
	}
	if g.IconSize < g.MinIconSize || g.IconSize > g.MaxIconSize {
		return fmt.Errorf("gallery.icon_size must be within [%d, %d]", g.MinIconSize, g.MaxIconSize)
	}
	if g.CacheCapacity <= 0 {
		return fmt.Errorf("gallery.cache_capacity must be positive")
	}
	if g.Workers <= 0 {
		return fmt.Errorf("gallery.workers must be positive")
	}
	if g.ViewportBufferPx < 0 {
		return fmt.Errorf("gallery.viewport_buffer_px must be non-negative")
	}
	if g.BorderWidth < 0 {
		return fmt.Errorf("gallery.border_width must be non-negative")
	}
	if g.DeferDelayMs < 0 {
		return fmt.Errorf("gallery.defer_delay_ms must be non-negative")
	}
	if len(g.SupportedFormats) == 0 {
		return fmt.Errorf("gallery.supported_formats must contain at least one extension")
	}

	if cfg.Logging.Level == "" {
		return fmt.Errorf("logging.level is required")
	}

	return nil
}
