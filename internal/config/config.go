package config

import (
	"time"
)

// Default configuration values.
const (
	defaultServiceName  = "content-scrape"
	defaultServicePort  = 8095
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"

	defaultScrapeTimeout = 30 * time.Second
	defaultWorkflowName  = "Reddit News Scraper v3"

	defaultAIModel     = "claude-sonnet-4-5"
	defaultAIMaxTokens = 1024
	defaultAIVariants  = 3

	defaultToastTTL = 5 * time.Second
)

// Config holds the application configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	AI      AIConfig      `yaml:"ai"`
	Toasts  ToastConfig   `yaml:"toasts"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name           string   `yaml:"name"`
	Version        string   `yaml:"version"`
	Port           int      `env:"CONTENT_SCRAPE_PORT" yaml:"port"`
	Debug          bool     `env:"APP_DEBUG"           yaml:"debug"`
	AllowedOrigins []string `env:"CORS_ORIGINS"        yaml:"allowed_origins"`
}

// ScrapeConfig holds the workflow-automation trigger configuration.
// The bearer token is a credential and comes from the environment.
type ScrapeConfig struct {
	Endpoint    string        `env:"SCRAPE_ENDPOINT"     yaml:"endpoint"`
	Workflow    string        `env:"SCRAPE_WORKFLOW"     yaml:"workflow"`
	BearerToken string        `env:"SCRAPE_BEARER_TOKEN" yaml:"bearer_token"`
	Timeout     time.Duration `env:"SCRAPE_TIMEOUT"      yaml:"timeout"`
}

// AIConfig holds the hook-generation model configuration.
// The API key is read from the environment only and never from YAML.
type AIConfig struct {
	APIKey    string `env:"API_KEY"       yaml:"-"`
	Model     string `env:"AI_MODEL"      yaml:"model"`
	MaxTokens int    `env:"AI_MAX_TOKENS" yaml:"max_tokens"`
	Variants  int    `yaml:"variants"`
}

// ToastConfig holds the notification sink configuration.
type ToastConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setScrapeDefaults(&cfg.Scrape)
	setAIDefaults(&cfg.AI)
	if cfg.Toasts.TTL == 0 {
		cfg.Toasts.TTL = defaultToastTTL
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLoggingLevel
	}
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if len(svc.AllowedOrigins) == 0 {
		svc.AllowedOrigins = []string{"*"}
	}
}

func setScrapeDefaults(s *ScrapeConfig) {
	if s.Workflow == "" {
		s.Workflow = defaultWorkflowName
	}
	if s.Timeout == 0 {
		s.Timeout = defaultScrapeTimeout
	}
}

func setAIDefaults(ai *AIConfig) {
	if ai.Model == "" {
		ai.Model = defaultAIModel
	}
	if ai.MaxTokens == 0 {
		ai.MaxTokens = defaultAIMaxTokens
	}
	if ai.Variants == 0 {
		ai.Variants = defaultAIVariants
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Scrape.Endpoint == "" {
		return &ValidationError{
			Field:   "scrape.endpoint",
			Message: "is required",
		}
	}
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
