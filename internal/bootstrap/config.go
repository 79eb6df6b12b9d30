package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AdvisorLlm    = "llm"
	AdvisorKatago = "katago"
	AdvisorRandom = "random"
)

type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	IsLocalCors      bool   `mapstructure:"LOCAL_CORS"`
	RedisUrl         string `mapstructure:"REDIS_URL"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	MongoUri         string `mapstructure:"MONGO_URI"`
	MongoDatabase    string `mapstructure:"MONGO_DATABASE"`
	MoveAdvisor      string `mapstructure:"MOVE_ADVISOR"`
	LlmApiKey        string `mapstructure:"LLM_API_KEY"`
	LlmModel         string `mapstructure:"LLM_MODEL"`
	LlmMaxTokens     int    `mapstructure:"LLM_MAX_TOKENS"`
	KatagoBotUrl     string `mapstructure:"KATAGO_BOT_URL"`
	AiTimeoutSeconds int    `mapstructure:"AI_TIMEOUT_SECONDS"`
	SessionTtlHours  int    `mapstructure:"SESSION_TTL_HOURS"`
	PageLimitGames   int    `mapstructure:"PAGE_LIMIT_GAMES"`
}

var defaults = map[string]any{
	"SERVER_PORT":        ":8080",
	"LOCAL_CORS":         false,
	"REDIS_URL":          "",
	"REDIS_PASSWORD":     "",
	"MONGO_URI":          "",
	"MONGO_DATABASE":     "go_online",
	"MOVE_ADVISOR":       AdvisorLlm,
	"LLM_API_KEY":        "",
	"LLM_MODEL":          "mistral-large-latest",
	"LLM_MAX_TOKENS":     100,
	"KATAGO_BOT_URL":     "",
	"AI_TIMEOUT_SECONDS": 15,
	"SESSION_TTL_HOURS":  24,
	"PAGE_LIMIT_GAMES":   10,
}

// Setup loads cfgPath (a dotenv file, optional) into the process environment
// and reads the configuration from the environment on top of the defaults.
func Setup(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		if err := godotenv.Load(cfgPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", cfgPath, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.MoveAdvisor {
	case AdvisorLlm, AdvisorKatago, AdvisorRandom:
	default:
		return nil, fmt.Errorf("unknown MOVE_ADVISOR %q", cfg.MoveAdvisor)
	}
	if cfg.PageLimitGames <= 0 {
		return nil, fmt.Errorf("PAGE_LIMIT_GAMES must be positive, got %d", cfg.PageLimitGames)
	}

	return &cfg, nil
}

func (c *Config) AiTimeout() time.Duration {
	return time.Duration(c.AiTimeoutSeconds) * time.Second
}

func (c *Config) SessionTtl() time.Duration {
	return time.Duration(c.SessionTtlHours) * time.Hour
}
