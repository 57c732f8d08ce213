package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider types accepted in Provider.Type.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOllama     = "ollama"
)

type Config struct {
	Name     string         `yaml:"Name"`
	Server   ServerConfig   `yaml:"Server"`
	Spell    SpellConfig    `yaml:"Spell"`
	Context  ContextConfig  `yaml:"Context"`
	Provider ProviderConfig `yaml:"Provider"`
	Log      LogConfig      `yaml:"Log"`
}

type ServerConfig struct {
	Host               string   `yaml:"Host"`
	Port               int      `yaml:"Port"`
	StaticDir          string   `yaml:"StaticDir"`          // served at / when set
	AllowedOrigins     []string `yaml:"AllowedOrigins"`     // extra CORS origins beyond localhost
	RateLimitRequests  int      `yaml:"RateLimitRequests"`  // requests per interval per client, 0 disables
	RateLimitInterval  int      `yaml:"RateLimitInterval"`  // seconds
	RateLimitBurst     int      `yaml:"RateLimitBurst"`
	MaxRequestBodySize int64    `yaml:"MaxRequestBodySize"` // bytes
}

type SpellConfig struct {
	Dictionary     string `yaml:"Dictionary"` // word list path, empty uses the embedded list
	MaxDistance    int    `yaml:"MaxDistance"`
	MaxSuggestions int    `yaml:"MaxSuggestions"`
	ScanPolicy     string `yaml:"ScanPolicy"` // auto, full or bktree
	IndexThreshold int    `yaml:"IndexThreshold"`
}

type ContextConfig struct {
	BudgetTokens    int `yaml:"BudgetTokens"`    // estimated tokens sent per request
	ResponseReserve int `yaml:"ResponseReserve"` // held back for the reply
	MaxTurns        int `yaml:"MaxTurns"`        // turns retained per conversation
}

type ProviderConfig struct {
	Type           string  `yaml:"Type"`
	APIKey         string  `yaml:"APIKey"`
	BaseURL        string  `yaml:"BaseURL"`
	Model          string  `yaml:"Model"`
	Temperature    float64 `yaml:"Temperature"`
	TopP           float64 `yaml:"TopP"`
	MaxTokens      int     `yaml:"MaxTokens"`
	Referer        string  `yaml:"Referer"` // OpenRouter attribution headers
	Title          string  `yaml:"Title"`
	TimeoutSeconds int     `yaml:"TimeoutSeconds"`
	SystemPrompt   string  `yaml:"SystemPrompt"` // overrides the built-in prompts when set
}

type LogConfig struct {
	Level string `yaml:"Level"` // debug, info, warn or error
}

// DefaultConfig returns the configuration used for any key the YAML omits.
func DefaultConfig() Config {
	return Config{
		Name: "think",
		Server: ServerConfig{
			Port:               3000,
			RateLimitRequests:  100,
			RateLimitInterval:  60,
			RateLimitBurst:     20,
			MaxRequestBodySize: 1 << 20,
		},
		Spell: SpellConfig{
			MaxDistance:    2,
			MaxSuggestions: 5,
			ScanPolicy:     "auto",
			IndexThreshold: 20000,
		},
		Context: ContextConfig{
			BudgetTokens:    4000,
			ResponseReserve: 1000,
			MaxTurns:        50,
		},
		Provider: ProviderConfig{
			Type:           ProviderOpenRouter,
			Model:          "meta-llama/llama-2-70b-chat",
			Temperature:    0.7,
			TopP:           0.9,
			MaxTokens:      1000,
			Title:          "Autocorrect Chatbot",
			TimeoutSeconds: 60,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadFromBytes loads configuration from YAML bytes with environment variable expansion.
// Keys missing from data keep their DefaultConfig values.
func LoadFromBytes(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := c.Merge(data); err != nil {
		return c, err
	}
	return c, nil
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := c.Merge(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Merge decodes YAML onto c. Only keys present in data change.
func (c *Config) Merge(data []byte) error {
	expanded := expandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// expandEnv is os.ExpandEnv plus shell-style defaults: ${PORT:-3000}.
func expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		name, def, hasDefault := strings.Cut(key, ":-")
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
		if hasDefault {
			return def
		}
		return ""
	})
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	s := c.Server
	check(s.Port > 0 && s.Port < 65536, "Server.Port %d out of range", s.Port)
	check(s.RateLimitRequests >= 0, "Server.RateLimitRequests must not be negative")
	check(s.RateLimitRequests == 0 || s.RateLimitInterval > 0, "Server.RateLimitInterval must be positive")
	check(s.RateLimitBurst >= 0, "Server.RateLimitBurst must not be negative")
	check(s.MaxRequestBodySize > 0, "Server.MaxRequestBodySize must be positive")

	sp := c.Spell
	check(sp.MaxDistance >= 1, "Spell.MaxDistance must be at least 1")
	check(sp.MaxSuggestions >= 1, "Spell.MaxSuggestions must be at least 1")
	check(sp.ScanPolicy == "auto" || sp.ScanPolicy == "full" || sp.ScanPolicy == "bktree",
		"Spell.ScanPolicy %q must be auto, full or bktree", sp.ScanPolicy)
	check(sp.IndexThreshold >= 1, "Spell.IndexThreshold must be at least 1")

	cx := c.Context
	check(cx.BudgetTokens > 0, "Context.BudgetTokens must be positive")
	check(cx.ResponseReserve >= 0, "Context.ResponseReserve must not be negative")
	check(cx.ResponseReserve < cx.BudgetTokens, "Context.ResponseReserve must be below Context.BudgetTokens")
	check(cx.MaxTurns >= 1, "Context.MaxTurns must be at least 1")

	p := c.Provider
	switch p.Type {
	case ProviderOpenRouter, ProviderOpenAI, ProviderAnthropic, ProviderOllama:
	default:
		errs = append(errs, fmt.Errorf("Provider.Type %q is not supported", p.Type))
	}
	check(p.Temperature >= 0 && p.Temperature <= 2, "Provider.Temperature %.2f out of range", p.Temperature)
	check(p.TopP > 0 && p.TopP <= 1, "Provider.TopP %.2f out of range", p.TopP)
	check(p.MaxTokens > 0, "Provider.MaxTokens must be positive")
	check(p.TimeoutSeconds > 0, "Provider.TimeoutSeconds must be positive")

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("Log.Level %q is not supported", c.Log.Level))
	}

	return errors.Join(errs...)
}
