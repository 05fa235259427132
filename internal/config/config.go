package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// AI providers understood by AIConfig.
const (
	ProviderArk    = "ark"
	ProviderOpenAI = "openai"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Chat   ChatConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	addr, err := normalizeAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr

	if err := cfg.AI.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Chat.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port           string   `env:"PORT" envDefault:"5000"`
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5000,http://127.0.0.1:5000"`
	SessionCookie  string   `env:"SESSION_COOKIE" envDefault:"mindheaven_session"`
	SecureCookie   bool     `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`

	// Addr is derived from Port.
	Addr string
}

// normalizeAddr 解析服务器监听地址。
func normalizeAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "5000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":5000" 或 "127.0.0.1:5000"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// ChatConfig bounds the conversation store and the /chat rate limit.
type ChatConfig struct {
	HistoryLimit      int `env:"CHAT_HISTORY_LIMIT" envDefault:"50"`
	MoodHistoryLimit  int `env:"MOOD_HISTORY_LIMIT" envDefault:"50"`
	MoodHistoryWindow int `env:"MOOD_HISTORY_WINDOW" envDefault:"20"`
	RatePerMinute     int `env:"CHAT_RATE_PER_MINUTE" envDefault:"10"`
}

func (c ChatConfig) validate() error {
	if c.HistoryLimit < 1 || c.MoodHistoryLimit < 1 || c.MoodHistoryWindow < 1 {
		return fmt.Errorf("history limits must be positive")
	}
	if c.RatePerMinute < 0 {
		return fmt.Errorf("invalid CHAT_RATE_PER_MINUTE value %d", c.RatePerMinute)
	}
	return nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider    string   `env:"AI_PROVIDER" envDefault:"openai"`
	Temperature *float64 `env:"AI_TEMPERATURE"`
	MaxTokens   *int     `env:"AI_MAX_TOKENS"`
	CrisisCheck bool     `env:"AI_CRISIS_CHECK" envDefault:"true"`

	Ark    ArkConfig
	OpenAI OpenAIConfig
}

// ArkConfig holds Volcengine Ark credentials for the eino chat model.
type ArkConfig struct {
	APIKey    string   `env:"ARK_API_KEY"`
	AccessKey string   `env:"ARK_ACCESS_KEY"`
	SecretKey string   `env:"ARK_SECRET_KEY"`
	Model     string   `env:"ARK_MODEL"`
	BaseURL   string   `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	Region    string   `env:"ARK_REGION" envDefault:"cn-beijing"`
	TopP      *float64 `env:"ARK_TOP_P"`
}

// OpenAIConfig holds credentials for the OpenAI-compatible backend.
type OpenAIConfig struct {
	APIKey  string        `env:"OPENAI_API_KEY"`
	Model   string        `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	BaseURL string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Timeout time.Duration `env:"OPENAI_TIMEOUT" envDefault:"30s"`
}

func (c *AIConfig) validate() error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	switch c.Provider {
	case ProviderArk, ProviderOpenAI:
	default:
		return fmt.Errorf("invalid AI_PROVIDER value %q", c.Provider)
	}
	if c.MaxTokens != nil && *c.MaxTokens < 1 {
		return fmt.Errorf("invalid AI_MAX_TOKENS value %d", *c.MaxTokens)
	}
	return nil
}

// Enabled 表示所选提供方是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderArk:
		return c.Ark.Enabled()
	case ProviderOpenAI:
		return strings.TrimSpace(c.OpenAI.APIKey) != ""
	default:
		return false
	}
}

// Enabled 表示是否提供了必需的 Ark 密钥。
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个 Ark 模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Ark.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + ARK_MODEL 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.Ark.TopP != nil {
		val := float32(*c.Ark.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.Ark.BaseURL,
		Region:      c.Ark.Region,
		APIKey:      c.Ark.APIKey,
		AccessKey:   c.Ark.AccessKey,
		SecretKey:   c.Ark.SecretKey,
		Model:       c.Ark.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}
