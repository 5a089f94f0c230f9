package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string         `mapstructure:"port"`
	MongoURI       string         `mapstructure:"MONGODB_URI"`
	Database       string         `mapstructure:"database"`
	UseInMemory    bool           `mapstructure:"use_in_memory"`
	AllowedOrigins []string       `mapstructure:"allowed_origins"`
	MaxUploadSize  int64          `mapstructure:"max_upload_size"`
	AI             AIConfig       `mapstructure:"ai"`
	Document       DocumentConfig `mapstructure:"document"`
}

type AIConfig struct {
	Provider        string `mapstructure:"provider"` // "gemini" or "openai"
	Model           string `mapstructure:"model"`
	Endpoint        string `mapstructure:"endpoint"` // openai-compatible base URL
	GoogleAPIKey    string `mapstructure:"GOOGLE_API_KEY"`
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	GenerateTimeout int    `mapstructure:"generate_timeout"` // seconds
}

type DocumentConfig struct {
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
}

// GoogleAPIKeys splits the GOOGLE_API_KEY value on commas so several keys
// can be rotated through on provider errors.
func (c AIConfig) GoogleAPIKeys() []string {
	var keys []string
	for _, k := range strings.Split(c.GoogleAPIKey, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.GenerateTimeout) * time.Second
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("port", "5000")
	v.SetDefault("database", "docchat")
	v.SetDefault("max_upload_size", 10<<20)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.generate_timeout", 30)
	v.SetDefault("document.chunk_size", 10000)
	v.SetDefault("document.chunk_overlap", 1000)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("MONGODB_URI")
	v.BindEnv("ai.GOOGLE_API_KEY", "GOOGLE_API_KEY")
	v.BindEnv("ai.OPENAI_API_KEY", "OPENAI_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
