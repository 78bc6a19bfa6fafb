package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bilgisen/feedharvest/internal/extract"
	"github.com/bilgisen/feedharvest/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultUserAgent is sent on every outgoing request.
const DefaultUserAgent = "Mozilla/5.0 (compatible; MyRSSReader/1.0)"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// Outgoing HTTP
	HTTPTimeout    time.Duration `json:"http_timeout" validate:"gt=0"`
	HTTPRetryCount int           `json:"http_retry_count" validate:"min=0,max=10"`
	UserAgent      string        `json:"user_agent" validate:"required"`
	MaxConcurrency int           `json:"max_concurrency" validate:"min=1,max=64"`

	// Probe cache; an empty RedisURL selects the in-memory cache
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl"`

	// Images
	ImageStoragePath   string `json:"image_storage_path" validate:"required"`
	ImagePublicURL     string `json:"image_public_url" validate:"omitempty,url"`
	MinImageWidth      int    `json:"min_image_width" validate:"min=0"`
	AcceptUnknownWidth bool   `json:"accept_unknown_width"`

	// Content selectors
	SelectorsFile         string              `json:"selectors_file"`
	DomainSelectorPolicy  string              `json:"domain_selector_policy" validate:"oneof=union first"`
	DefaultSelectorPolicy string              `json:"default_selector_policy" validate:"oneof=union first"`
	DomainSelectors       map[string][]string `json:"domain_selectors" validate:"dive,min=1,dive,required"`
	DefaultSelector       []string            `json:"default_selector" validate:"required,min=1,dive,required"`

	// External media library (S3 compatible, e.g. CloudFlare R2)
	MediaLibraryEnabled bool   `json:"media_library_enabled"`
	MediaDisk           string `json:"media_disk" validate:"required_if=MediaLibraryEnabled true"`
	MediaCollection     string `json:"media_collection"`
	R2Endpoint          string `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey         string `json:"r2_access_key"`
	R2SecretKey         string `json:"r2_secret_key"`
	R2PublicURL         string `json:"r2_public_url" validate:"omitempty,url"`
	R2Region            string `json:"r2_region"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"admin_api_key"`
}

// Load loads configuration from environment variables and exits the
// process when it is invalid.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// FromEnv builds and validates a Config from the current environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		HTTPTimeout:    getEnvAsDuration("HTTP_TIMEOUT", 20*time.Second),
		HTTPRetryCount: getEnvAsInt("HTTP_RETRY_COUNT", 0),
		UserAgent:      getEnv("USER_AGENT", DefaultUserAgent),
		MaxConcurrency: getEnvAsInt("MAX_CONCURRENCY", 1),

		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "feedharvest:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 720*time.Hour), // 30 days

		ImageStoragePath:   getEnv("IMAGE_STORAGE_PATH", "images"),
		ImagePublicURL:     getEnv("IMAGE_PUBLIC_URL", ""),
		MinImageWidth:      getEnvAsInt("MIN_IMAGE_WIDTH", 300),
		AcceptUnknownWidth: getEnvAsBool("ACCEPT_UNKNOWN_WIDTH", false),

		SelectorsFile:         getEnv("SELECTORS_FILE", "config/selectors.yaml"),
		DomainSelectorPolicy:  strings.ToLower(getEnv("DOMAIN_SELECTOR_POLICY", string(extract.PolicyUnion))),
		DefaultSelectorPolicy: strings.ToLower(getEnv("DEFAULT_SELECTOR_POLICY", string(extract.PolicyFirstMatch))),

		MediaLibraryEnabled: getEnvAsBool("MEDIA_LIBRARY_ENABLED", false),
		MediaDisk:           getEnv("MEDIA_DISK", ""),
		MediaCollection:     getEnv("MEDIA_COLLECTION", "images"),
		R2Endpoint:          getEnv("R2_ENDPOINT", ""),
		R2AccessKey:         getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey:         getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2PublicURL:         getEnv("R2_PUBLIC_URL", ""),
		R2Region:            getEnv("R2_REGION", "auto"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	domains, def, err := LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
	}
	cfg.DomainSelectors = domains
	cfg.DefaultSelector = def

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
	}
	return nil
}

// Rules converts the selector settings into extraction rules.
func (c *Config) Rules() extract.Rules {
	domainPolicy, ok := extract.ParsePolicy(c.DomainSelectorPolicy)
	if !ok {
		domainPolicy = extract.PolicyUnion
	}
	defaultPolicy, ok := extract.ParsePolicy(c.DefaultSelectorPolicy)
	if !ok {
		defaultPolicy = extract.PolicyFirstMatch
	}

	rules := extract.Rules{
		Domains: make(map[string]extract.Ruleset, len(c.DomainSelectors)),
		Default: extract.Ruleset{Expressions: c.DefaultSelector, Policy: defaultPolicy},
	}
	for host, exprs := range c.DomainSelectors {
		rules.Domains[strings.ToLower(host)] = extract.Ruleset{Expressions: exprs, Policy: domainPolicy}
	}
	return rules
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
