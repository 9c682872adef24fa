// Package config provides configuration loading for sonda binaries.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dukex/sonda/pkg/execution"
	"github.com/dukex/sonda/pkg/responders"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the structure of the sonda.yaml file.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Model responders.ModelConfig `yaml:"model" validate:"required"`

	KnowledgeBase KnowledgeBaseConfig `yaml:"knowledge_base"`
	Cache         CacheConfig         `yaml:"cache"`

	Termination execution.TerminationPolicy `yaml:"termination"`

	Reports ReportsConfig `yaml:"reports"`
	API     APIConfig     `yaml:"api"`
}

type KnowledgeBaseConfig struct {
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`
	APIKey   string `yaml:"api_key"`
}

type CacheConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Addr     string   `yaml:"addr"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTL      Duration `yaml:"ttl"`
}

// Duration is a time.Duration that decodes from YAML strings like "30m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}

	*d = Duration(parsed)

	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type ReportsConfig struct {
	Dir string `yaml:"dir"`
}

type APIConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// Load reads a YAML config file, applies environment overrides and
// defaults, and validates the result.
func Load(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filepath, err)
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	err = validator.New().Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
// Secrets still come from the environment.
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg
}

// applyEnv lets the environment override file values, so secrets stay
// out of config files.
func (c *Config) applyEnv() {
	if v := os.Getenv("SONDA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	if v := os.Getenv("SONDA_MODEL_API_KEY"); v != "" {
		c.Model.APIKey = v
	}

	if v := os.Getenv("SONDA_MODEL"); v != "" {
		c.Model.Model = v
	}

	if v := os.Getenv("SONDA_MODEL_BASE_URL"); v != "" {
		c.Model.BaseURL = v
	}

	if v := os.Getenv("SONDA_KB_ENDPOINT"); v != "" {
		c.KnowledgeBase.Endpoint = v
	}

	if v := os.Getenv("SONDA_KB_API_KEY"); v != "" {
		c.KnowledgeBase.APIKey = v
	}

	if v := os.Getenv("SONDA_REDIS_ADDR"); v != "" {
		c.Cache.Enabled = true
		c.Cache.Addr = v
	}
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Model.Model == "" {
		c.Model.Model = "gpt-4o-mini"
	}

	if c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = Duration(time.Hour)
	}

	if c.Termination.MinSynthesisLength == 0 && len(c.Termination.SkippableTypes) == 0 {
		c.Termination = execution.DefaultTerminationPolicy()
	}

	if c.Reports.Dir == "" {
		c.Reports.Dir = "./reports"
	}

	if c.API.Port == 0 {
		c.API.Port = 9099
	}
}
