package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type OpenAIConfig struct {
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	SiteURL  string `yaml:"site_url"`
	SiteName string `yaml:"site_name"`
}

type StoreConfig struct {
	DataFile string `yaml:"data_file"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the yaml config file if present, applies environment overrides
// and fills in local-development defaults. A missing config file is not an
// error; everything can come from the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.OpenAI.SiteURL = v
	}
	if v := os.Getenv("SITE_NAME"); v != "" {
		cfg.OpenAI.SiteName = v
	}
	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.Store.DataFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "openai/gpt-oss-20b:free"
	}
	if cfg.OpenAI.SiteURL == "" {
		cfg.OpenAI.SiteURL = "http://localhost:3000"
	}
	if cfg.OpenAI.SiteName == "" {
		cfg.OpenAI.SiteName = "Contract Generator"
	}
	if cfg.Store.DataFile == "" {
		cfg.Store.DataFile = "data.json"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
