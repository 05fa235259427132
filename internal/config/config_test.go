package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("AI_PROVIDER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.Provider != ProviderOpenAI {
		t.Fatalf("expected openai provider, got %q", cfg.AI.Provider)
	}
	if cfg.Server.Addr != ":5000" {
		t.Fatalf("expected :5000, got %s", cfg.Server.Addr)
	}
	if cfg.Chat.RatePerMinute != 10 || cfg.Chat.MoodHistoryWindow != 20 {
		t.Fatalf("unexpected chat defaults: %+v", cfg.Chat)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Fatalf("expected two default origins, got %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadPortWithHost(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "parrot")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	cfg := AIConfig{Provider: ProviderOpenAI}
	if cfg.Enabled() {
		t.Fatal("expected disabled without key")
	}
	cfg.OpenAI.APIKey = "sk-test"
	if !cfg.Enabled() {
		t.Fatal("expected enabled with key")
	}

	cfg = AIConfig{Provider: ProviderArk, Ark: ArkConfig{Model: "ep-1", AccessKey: "ak", SecretKey: "sk"}}
	if !cfg.Enabled() {
		t.Fatal("expected ark enabled with AK/SK")
	}
}

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("MINDHEAVEN_SERVER_URL", "http://localhost:5000/")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient err: %v", err)
	}
	if cfg.ServerURL != "http://localhost:5000" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.ServerURL)
	}
	if cfg.SubmitSettle != time.Second || cfg.ClearSettle != 500*time.Millisecond {
		t.Fatalf("unexpected settle delays: %s %s", cfg.SubmitSettle, cfg.ClearSettle)
	}
	if cfg.HistoryCooldown != 10*time.Second || cfg.ChartDelay != 100*time.Millisecond {
		t.Fatalf("unexpected timers: %s %s", cfg.HistoryCooldown, cfg.ChartDelay)
	}
}

func TestClientValidateRejectsBadURL(t *testing.T) {
	cfg := &ClientConfig{ServerURL: "ftp://example.com", RequestTimeout: time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-http url")
	}
}
