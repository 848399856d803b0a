// Package config provides unified configuration loading for DealerDesk.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the DealerDesk backend.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Data          DataConfig          `yaml:"data"`
	LLM           LLMConfig           `yaml:"llm"`
	Embedding     EmbeddingConfig     `yaml:"embedding"`
	Vector        VectorConfig        `yaml:"vector"`
	Cache         CacheConfig         `yaml:"cache"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// DataConfig holds paths to the flat JSON data files.
type DataConfig struct {
	InventoryPath     string `yaml:"inventory_path"`
	KnowledgeBasePath string `yaml:"knowledge_base_path"`
	LeadsPath         string `yaml:"leads_path"`
	AppointmentsPath  string `yaml:"appointments_path"`
}

// LLMConfig holds text-generation service settings.
type LLMConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	APIKeyEnv   string        `yaml:"api_key_env"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	Retry       RetryConfig   `yaml:"retry"`
}

// RetryConfig makes retry-vs-fail-fast an explicit policy for external calls.
type RetryConfig struct {
	Enabled        bool          `yaml:"enabled"`
	MaxRetries     int           `yaml:"max_retries"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

// EmbeddingConfig holds embedding client settings.
type EmbeddingConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Dimension int           `yaml:"dimension"`
	Timeout   time.Duration `yaml:"timeout"`
}

// VectorConfig holds semantic search settings.
type VectorConfig struct {
	Adapter   string         `yaml:"adapter"` // pinecone, memory or off
	TopK      int            `yaml:"top_k"`
	MinScore  float64        `yaml:"min_score"`
	Timeout   time.Duration  `yaml:"timeout"`
	Pinecone  PineconeConfig `yaml:"pinecone"`
	IndexPath string         `yaml:"index_path"` // memory adapter snapshot
}

// PineconeConfig holds Pinecone-specific settings.
type PineconeConfig struct {
	Host      string `yaml:"host"`
	APIKeyEnv string `yaml:"api_key_env"`
	Namespace string `yaml:"namespace"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8000,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     60 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Data: DataConfig{
			InventoryPath:     "data/dealership_inventory.json",
			KnowledgeBasePath: "data/vehicle_knowledge_base.json",
			LeadsPath:         "data/crm_leads.json",
			AppointmentsPath:  "data/appointments.json",
		},
		LLM: LLMConfig{
			BaseURL:     "https://openrouter.ai/api/v1",
			Model:       "deepseek/deepseek-chat",
			APIKeyEnv:   "LLM_API_KEY",
			Temperature: 0.7,
			Timeout:     45 * time.Second,
			Retry: RetryConfig{
				Enabled:        false, // fail fast to the apology fallback
				MaxRetries:     3,
				InitialBackoff: 1 * time.Second,
				MaxBackoff:     30 * time.Second,
			},
		},
		Embedding: EmbeddingConfig{
			BaseURL:   "https://openrouter.ai/api/v1",
			Model:     "qwen/qwen3-embedding-8b",
			APIKeyEnv: "LLM_API_KEY",
			Dimension: 768,
			Timeout:   30 * time.Second,
		},
		Vector: VectorConfig{
			Adapter:   "off",
			TopK:      3,
			MinScore:  0.3,
			Timeout:   10 * time.Second,
			IndexPath: "data/vehicle_index.json",
			Pinecone: PineconeConfig{
				APIKeyEnv: "PINECONE_API_KEY",
				Namespace: "vehicles",
			},
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "dealerdesk",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Vector.Adapter {
	case "pinecone", "memory", "off":
	default:
		return fmt.Errorf("invalid vector adapter: %s", c.Vector.Adapter)
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Vector.TopK < 1 || c.Vector.TopK > 20 {
		return fmt.Errorf("vector top_k must be between 1 and 20")
	}

	return nil
}

// LLMAPIKey resolves the generation API key from the environment.
func (c *Config) LLMAPIKey() string {
	return os.Getenv(c.LLM.APIKeyEnv)
}

// EmbeddingAPIKey resolves the embedding API key from the environment.
func (c *Config) EmbeddingAPIKey() string {
	return os.Getenv(c.Embedding.APIKeyEnv)
}

// PineconeAPIKey resolves the Pinecone API key from the environment.
func (c *Config) PineconeAPIKey() string {
	return os.Getenv(c.Vector.Pinecone.APIKeyEnv)
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("VECTOR_ADAPTER"); v != "" {
		cfg.Vector.Adapter = v
	}
	if v := os.Getenv("PINECONE_HOST"); v != "" {
		cfg.Vector.Pinecone.Host = v
	}
	if v := os.Getenv("CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.InventoryPath = v + "/dealership_inventory.json"
		cfg.Data.KnowledgeBasePath = v + "/vehicle_knowledge_base.json"
		cfg.Data.LeadsPath = v + "/crm_leads.json"
		cfg.Data.AppointmentsPath = v + "/appointments.json"
	}
}
