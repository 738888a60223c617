package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	PodcastIndex PodcastIndexConfig `mapstructure:"podcast_index"`
	Sync         SyncConfig         `mapstructure:"sync"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains local store settings
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// PodcastIndexConfig contains Podcast Index API settings
type PodcastIndexConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	APISecret string        `mapstructure:"api_secret"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	UserAgent string        `mapstructure:"user_agent"`
}

// SyncConfig contains periodic refresh settings
type SyncConfig struct {
	// Schedule is a cron expression for the periodic refresh of all
	// subscribed podcasts. Empty disables the scheduler.
	Schedule     string `mapstructure:"schedule"`
	EpisodeLimit int    `mapstructure:"episode_limit"`
}
