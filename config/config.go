package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// ErrMissingAPIKey is returned by Validate when the OpenAI provider is selected
// and no credential was found in the environment or the .env file.
// The text is printed as is when startup halts, hence the sentence form.
var ErrMissingAPIKey = errors.New("OpenAI API key not found. Please set it in your environment variables or .env file.")

// ServerConfig defines the server configuration.
type ServerConfig struct {
	Port         int   `yaml:"port"`
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// LLMConfig selects the completion backend.
type LLMConfig struct {
	Provider string `yaml:"provider"`
}

// OpenAIConfig defines the OpenAI chat completion configuration.
// The API key is only ever read from the environment.
type OpenAIConfig struct {
	APIKey  string `yaml:"-"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// OllamaConfig defines the Ollama configuration.
type OllamaConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// LoggingConfig defines the logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Config is the top-level configuration struct.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Ollama  OllamaConfig  `yaml:"ollama"`
	Logging LoggingConfig `yaml:"logging"`
}

// AppConfig holds the loaded configuration.
var AppConfig *Config

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8501,
			MaxBodyBytes: 1 << 20,
		},
		LLM: LLMConfig{Provider: ProviderOpenAI},
		OpenAI: OpenAIConfig{
			Model: "gpt-3.5-turbo",
		},
		Ollama: OllamaConfig{
			Host:  "http://127.0.0.1:11434",
			Model: "gemma3:latest",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// LoadConfig loads the configuration from the YAML file at configPath into AppConfig.
// A missing file leaves the defaults in place. Variables from a .env file in the
// working directory are loaded first; values already set in the environment win.
func LoadConfig(configPath string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load .env file: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("could not read config file at %s: %w", configPath, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("could not parse config file at %s: %w", configPath, err)
		}
	}

	cfg.applyEnvOverrides()

	AppConfig = cfg
	return nil
}

// applyEnvOverrides copies the credential and provider overrides from the environment.
func (c *Config) applyEnvOverrides() {
	c.OpenAI.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		c.Ollama.Host = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.Ollama.Model = v
	}

	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
}

// Validate checks the settings that must be present before the server starts.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return ErrMissingAPIKey
		}
		if c.OpenAI.Model == "" {
			return errors.New("openai.model must not be empty")
		}
	case ProviderOllama:
		if c.Ollama.Host == "" || c.Ollama.Model == "" {
			return errors.New("ollama.host and ollama.model must not be empty")
		}
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLM.Provider)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
