package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ClientConfig 描述终端客户端的配置。
type ClientConfig struct {
	ServerURL      string        `env:"MINDHEAVEN_SERVER_URL" envDefault:"http://127.0.0.1:5000"`
	RequestTimeout time.Duration `env:"MINDHEAVEN_REQUEST_TIMEOUT" envDefault:"30s"`
	LogFile        string        `env:"MINDHEAVEN_LOG_FILE" envDefault:"mindheaven-client.log"`
	LogLevel       string        `env:"MINDHEAVEN_LOG_LEVEL" envDefault:"info"`

	SubmitSettle    time.Duration `env:"MINDHEAVEN_SUBMIT_SETTLE" envDefault:"1s"`
	ClearSettle     time.Duration `env:"MINDHEAVEN_CLEAR_SETTLE" envDefault:"500ms"`
	ChartDelay      time.Duration `env:"MINDHEAVEN_CHART_DELAY" envDefault:"100ms"`
	ChartThrottle   time.Duration `env:"MINDHEAVEN_CHART_THROTTLE" envDefault:"1s"`
	HistoryCooldown time.Duration `env:"MINDHEAVEN_HISTORY_COOLDOWN" envDefault:"10s"`
}

// LoadClient 从环境变量加载客户端配置。
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags may have overridden after loading.
func (c *ClientConfig) Validate() error {
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}

	durations := map[string]time.Duration{
		"MINDHEAVEN_SUBMIT_SETTLE":    c.SubmitSettle,
		"MINDHEAVEN_CLEAR_SETTLE":     c.ClearSettle,
		"MINDHEAVEN_CHART_DELAY":      c.ChartDelay,
		"MINDHEAVEN_CHART_THROTTLE":   c.ChartThrottle,
		"MINDHEAVEN_HISTORY_COOLDOWN": c.HistoryCooldown,
	}
	for key, d := range durations {
		if d < 0 {
			return fmt.Errorf("invalid %s value %s", key, d)
		}
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid MINDHEAVEN_REQUEST_TIMEOUT value %s", c.RequestTimeout)
	}
	return nil
}
