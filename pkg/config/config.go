package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/booruscope/pkg/booru"
	"github.com/umputun/booruscope/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Booru    BooruConfig    `yaml:"booru" json:"booru" jsonschema:"description=Board API access and fetch loop"`
	Feed     FeedConfig     `yaml:"feed" json:"feed" jsonschema:"description=Feed filters and ranking"`
	Profile  ProfileConfig  `yaml:"profile" json:"profile" jsonschema:"description=Preference profile storage and scoring"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen     string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL    string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds"`
	SessionTTL time.Duration `yaml:"session_ttl" json:"session_ttl" jsonschema:"default=2h,description=Idle time after which a browsing session is dropped"`
}

// DatabaseConfig holds ledger database settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:booruscope.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// BooruConfig holds board API and fetch loop settings
type BooruConfig struct {
	Kind              string        `yaml:"kind" json:"kind" jsonschema:"default=danbooru,enum=danbooru,enum=gelbooru,enum=moebooru,description=Board engine"`
	BaseURL           string        `yaml:"base_url" json:"base_url" jsonschema:"description=Board API base URL, defaults to the public instance of the engine"`
	Login             string        `yaml:"login" json:"login" jsonschema:"description=Board account login (optional)"`
	APIKey            string        `yaml:"api_key" json:"api_key" jsonschema:"description=Board API key (can use environment variable)"`
	UserAgent         string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=booruscope,description=User agent for board requests"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	PageLimit         int           `yaml:"page_limit" json:"page_limit" jsonschema:"default=20,minimum=1,description=Posts requested per page"`
	MaxPages          int           `yaml:"max_pages" json:"max_pages" jsonschema:"default=100,minimum=1,description=Pages walked per fetch before giving up"`
	Delay             time.Duration `yaml:"delay" json:"delay" jsonschema:"default=500ms,description=Courtesy delay between search requests"`
	MaxQueryBlacklist int           `yaml:"max_query_blacklist" json:"max_query_blacklist" jsonschema:"default=2,description=Blacklisted tags sent upstream as negated tags"`
	BreakerFailures   uint32        `yaml:"breaker_failures" json:"breaker_failures" jsonschema:"default=5,description=Consecutive failures opening the circuit breaker"`
	BreakerCooldown   time.Duration `yaml:"breaker_cooldown" json:"breaker_cooldown" jsonschema:"default=1m,description=Time the circuit breaker stays open"`
}

// FeedConfig holds default filters and ranking settings
type FeedConfig struct {
	Rating          string        `yaml:"rating" json:"rating" jsonschema:"default=general-sensitive,description=Default rating filter (key or label)"`
	Media           string        `yaml:"media" json:"media" jsonschema:"default=both,description=Default media filter (key or label)"`
	Blacklist       []string      `yaml:"blacklist" json:"blacklist" jsonschema:"description=Tags never shown"`
	Ranked          bool          `yaml:"ranked" json:"ranked" jsonschema:"default=false,description=Order candidates by predicted likelihood"`
	MinLikelihood   float64       `yaml:"min_likelihood" json:"min_likelihood" jsonschema:"default=0,minimum=0,maximum=1,description=Skip candidates predicted below this value (0 disables)"`
	MinLikesForGate int           `yaml:"min_likes_for_gate" json:"min_likes_for_gate" jsonschema:"default=10,description=Liked posts needed before the likelihood gate applies"`
	MinPostScore    int           `yaml:"min_post_score" json:"min_post_score" jsonschema:"default=0,description=Skip posts with lower board score"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout" jsonschema:"default=30m,description=Inactivity after which page cursors restart from the first page"`
}

// ProfileConfig holds preference profile settings
type ProfileConfig struct {
	Path         string  `yaml:"path" json:"path" jsonschema:"default=profile.json,description=Profile snapshot file"`
	TagWeight    float64 `yaml:"tag_weight" json:"tag_weight" jsonschema:"default=0.7,minimum=0,description=Weight of the tag score"`
	RatingWeight float64 `yaml:"rating_weight" json:"rating_weight" jsonschema:"default=0.3,minimum=0,description=Weight of the rating score"`
	Steepness    float64 `yaml:"steepness" json:"steepness" jsonschema:"default=5,description=Sigmoid steepness"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults applied, used when no config file given
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	if c.Server.SessionTTL == 0 {
		c.Server.SessionTTL = 2 * time.Hour
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:booruscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// booru
	if kind, err := booru.ParseKind(c.Booru.Kind); err == nil {
		c.Booru.Kind = string(kind) // unknown kind is left for validate to report
	}
	if c.Booru.BaseURL == "" {
		c.Booru.BaseURL = booru.DefaultURL(booru.Kind(c.Booru.Kind))
	}
	if c.Booru.UserAgent == "" {
		c.Booru.UserAgent = "booruscope"
	}
	if c.Booru.Timeout == 0 {
		c.Booru.Timeout = 30 * time.Second
	}
	if c.Booru.PageLimit == 0 {
		c.Booru.PageLimit = 20
	}
	if c.Booru.MaxPages == 0 {
		c.Booru.MaxPages = 100
	}
	if c.Booru.Delay == 0 {
		c.Booru.Delay = 500 * time.Millisecond
	}
	if c.Booru.MaxQueryBlacklist == 0 {
		c.Booru.MaxQueryBlacklist = 2
	}
	if c.Booru.BreakerFailures == 0 {
		c.Booru.BreakerFailures = 5
	}
	if c.Booru.BreakerCooldown == 0 {
		c.Booru.BreakerCooldown = time.Minute
	}

	// feed
	if c.Feed.Rating == "" {
		c.Feed.Rating = domain.DefaultFilters().Rating.Key()
	}
	if c.Feed.Media == "" {
		c.Feed.Media = domain.DefaultFilters().Media.Key()
	}
	if c.Feed.MinLikesForGate == 0 {
		c.Feed.MinLikesForGate = 10
	}
	if c.Feed.IdleTimeout == 0 {
		c.Feed.IdleTimeout = 30 * time.Minute
	}

	// profile
	if c.Profile.Path == "" {
		c.Profile.Path = "profile.json"
	}
	if c.Profile.TagWeight == 0 && c.Profile.RatingWeight == 0 {
		c.Profile.TagWeight, c.Profile.RatingWeight = 0.7, 0.3
	}
	if c.Profile.Steepness == 0 {
		c.Profile.Steepness = 5
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if cfg.Server.SessionTTL < time.Minute {
		return errors.New("server session_ttl must be at least 1 minute")
	}

	kind, err := booru.ParseKind(cfg.Booru.Kind)
	if err != nil {
		return fmt.Errorf("booru.kind: %w", err)
	}
	cfg.Booru.Kind = string(kind)
	if cfg.Booru.PageLimit < 1 || cfg.Booru.PageLimit > 200 {
		return errors.New("booru.page_limit must be between 1 and 200")
	}
	if cfg.Booru.MaxPages < 1 {
		return errors.New("booru.max_pages must be at least 1")
	}
	if cfg.Booru.Delay < 0 {
		return errors.New("booru.delay must be non-negative")
	}
	if cfg.Booru.MaxQueryBlacklist < 0 {
		return errors.New("booru.max_query_blacklist must be non-negative")
	}

	if _, err := cfg.Filters(); err != nil {
		return err
	}
	if cfg.Feed.MinLikelihood < 0 || cfg.Feed.MinLikelihood >= 1 {
		return errors.New("feed.min_likelihood must be in [0, 1)")
	}
	if cfg.Feed.MinLikesForGate < 0 {
		return errors.New("feed.min_likes_for_gate must be non-negative")
	}
	if cfg.Feed.IdleTimeout < time.Second {
		return errors.New("feed.idle_timeout must be at least 1 second")
	}

	if cfg.Profile.TagWeight < 0 || cfg.Profile.RatingWeight < 0 {
		return errors.New("profile weights must be non-negative")
	}
	if cfg.Profile.Steepness <= 0 {
		return errors.New("profile.steepness must be positive")
	}
	return nil
}

// Filters returns default feed filters for new sessions
func (c *Config) Filters() (domain.Filters, error) {
	r, err := domain.ParseRatingFilter(c.Feed.Rating)
	if err != nil {
		return domain.Filters{}, fmt.Errorf("feed.rating: %w", err)
	}
	m, err := domain.ParseMediaFilter(c.Feed.Media)
	if err != nil {
		return domain.Filters{}, fmt.Errorf("feed.media: %w", err)
	}
	return domain.Filters{Rating: r, Media: m, Blacklist: c.Feed.Blacklist}, nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
