package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	RateLimitScopeGlobal = "global"
	RateLimitScopeChain  = "chain"
	RateLimitScopeNone   = "none"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Alchemy    AlchemyConfig    `yaml:"alchemy"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Cache      CacheConfig      `yaml:"cache"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Swagger    SwaggerConfig    `yaml:"swagger"`
	WalletFile string           `yaml:"walletFile"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// AlchemyConfig holds the configuration for the Alchemy NFT API client.
type AlchemyConfig struct {
	// APIKey может быть задан в файле, но переменная окружения APIKeyEnv имеет приоритет.
	APIKey               string `yaml:"apiKey"`
	APIKeyEnv            string `yaml:"apiKeyEnv"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	PageSize             int    `yaml:"pageSize"`
	PageDelayMillis      int64  `yaml:"pageDelayMillis"`
}

// FetchConfig holds configuration for the multi-wallet orchestrator.
type FetchConfig struct {
	MaxConcurrentPairs int             `yaml:"maxConcurrentPairs"`
	RunDeadlineSeconds int             `yaml:"runDeadlineSeconds"`
	DefaultChains      []string        `yaml:"defaultChains"`
	RateLimit          RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig bounds the request rate toward the provider.
type RateLimitConfig struct {
	Scope             string  `yaml:"scope"` // global | chain | none
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// CacheConfig holds configuration for caching.
type CacheConfig struct {
	ImageCacheSizeMB       int `yaml:"imageCacheSizeMB"`
	ImageTTLSeconds        int `yaml:"imageTTLSeconds"`
	MetadataTTLMinutes     int `yaml:"metadataTTLMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// NormalizerConfig holds configuration for NFT normalization.
type NormalizerConfig struct {
	PlaceholderBaseURL string `yaml:"placeholderBaseUrl"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecFile string `yaml:"specFile"`
}

// LoadConfig loads configuration from a YAML file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// Default returns a configuration built only from defaults and the environment.
func Default() *Config {
	var cfg Config
	// Значения по умолчанию всегда валидны
	_ = cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		// Полный прогон по нескольким кошелькам может занимать минуты
		cfg.Server.WriteTimeout = 330
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Alchemy.APIKeyEnv == "" {
		cfg.Alchemy.APIKeyEnv = "ALCHEMY_API_KEY"
	}
	if v := strings.TrimSpace(os.Getenv(cfg.Alchemy.APIKeyEnv)); v != "" {
		cfg.Alchemy.APIKey = v
		logrus.Infof("Alchemy API key taken from environment variable %s", cfg.Alchemy.APIKeyEnv)
	}
	if cfg.Alchemy.RequestTimeoutMillis == 0 {
		cfg.Alchemy.RequestTimeoutMillis = 30000
		logrus.Infof("Alchemy.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Alchemy.RequestTimeoutMillis)
	}
	if cfg.Alchemy.PageSize == 0 {
		cfg.Alchemy.PageSize = 100
		logrus.Infof("Alchemy.PageSize not set, defaulting to %d", cfg.Alchemy.PageSize)
	}
	if cfg.Alchemy.PageDelayMillis == 0 {
		cfg.Alchemy.PageDelayMillis = 500
		logrus.Infof("Alchemy.PageDelayMillis not set, defaulting to %d ms", cfg.Alchemy.PageDelayMillis)
	}

	if cfg.Fetch.MaxConcurrentPairs <= 0 {
		cfg.Fetch.MaxConcurrentPairs = 3
		logrus.Infof("Fetch.MaxConcurrentPairs not set, defaulting to %d", cfg.Fetch.MaxConcurrentPairs)
	}
	if cfg.Fetch.RunDeadlineSeconds == 0 {
		cfg.Fetch.RunDeadlineSeconds = 300
		logrus.Infof("Fetch.RunDeadlineSeconds not set, defaulting to %d s", cfg.Fetch.RunDeadlineSeconds)
	}
	if len(cfg.Fetch.DefaultChains) == 0 {
		cfg.Fetch.DefaultChains = []string{"eth-mainnet"}
	}

	switch cfg.Fetch.RateLimit.Scope {
	case "":
		cfg.Fetch.RateLimit.Scope = RateLimitScopeChain
		logrus.Infof("Fetch.RateLimit.Scope not set, defaulting to %s", cfg.Fetch.RateLimit.Scope)
	case RateLimitScopeGlobal, RateLimitScopeChain, RateLimitScopeNone:
	default:
		logrus.Errorf("Invalid Fetch.RateLimit.Scope %q", cfg.Fetch.RateLimit.Scope)
		return fmt.Errorf("invalid rate limit scope %q: expected %s, %s or %s",
			cfg.Fetch.RateLimit.Scope, RateLimitScopeGlobal, RateLimitScopeChain, RateLimitScopeNone)
	}
	if cfg.Fetch.RateLimit.RequestsPerSecond <= 0 {
		cfg.Fetch.RateLimit.RequestsPerSecond = 5
	}
	if cfg.Fetch.RateLimit.Burst <= 0 {
		cfg.Fetch.RateLimit.Burst = 1
	}

	if cfg.Cache.ImageCacheSizeMB <= 0 {
		cfg.Cache.ImageCacheSizeMB = 16
	}
	if cfg.Cache.MetadataTTLMinutes <= 0 {
		cfg.Cache.MetadataTTLMinutes = 60
		logrus.Infof("Cache.MetadataTTLMinutes not set, defaulting to %d minutes", cfg.Cache.MetadataTTLMinutes)
	}
	if cfg.Cache.CleanupIntervalMinutes <= 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}

	if cfg.Normalizer.PlaceholderBaseURL == "" {
		cfg.Normalizer.PlaceholderBaseURL = "/placeholder.svg?height=400&width=400&text="
	}
	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = "./docs/swagger.yaml"
	}
	if cfg.WalletFile == "" {
		cfg.WalletFile = "data/wallets.txt"
	}

	if cfg.Alchemy.APIKey == "" {
		logrus.Warnf("Alchemy API key is empty. Set %s to enable NFT fetching.", cfg.Alchemy.APIKeyEnv)
	}
	return nil
}
