package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("NEWS_API_URL", "")
	t.Setenv("NEWS_PAGE_SIZE", "")
	t.Setenv("MARKET_SYMBOL", "")
	t.Setenv("LOOKBACK_DAYS", "")
	t.Setenv("ANALYSIS_POLL_SECS", "")
	t.Setenv("OPENAI_MODEL", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected port default, got %q", cfg.Port)
	}
	if cfg.RedisURL != "localhost:6379" {
		t.Fatalf("expected redis default, got %q", cfg.RedisURL)
	}
	if cfg.NewsAPIURL != "https://newsapi.org/v2" {
		t.Fatalf("expected news api default, got %q", cfg.NewsAPIURL)
	}
	if cfg.NewsPageSize != 100 {
		t.Fatalf("expected page size 100, got %d", cfg.NewsPageSize)
	}
	if cfg.MarketSymbol != "SPY" {
		t.Fatalf("expected SPY, got %q", cfg.MarketSymbol)
	}
	if cfg.LookbackDays != 30 {
		t.Fatalf("expected 30 lookback days, got %d", cfg.LookbackDays)
	}
	if cfg.AnalysisPollSecs != 900 {
		t.Fatalf("expected 900s analysis poll, got %d", cfg.AnalysisPollSecs)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %q", cfg.OpenAIModel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MARKET_SYMBOL", "qqq")
	t.Setenv("LOOKBACK_DAYS", "14")
	t.Setenv("NEWS_PAGE_SIZE", "50")
	t.Setenv("ANALYSIS_POLL_SECS", "60")
	t.Setenv("MARKET_POLL_SECS", "120")

	cfg := Load()

	if cfg.MarketSymbol != "QQQ" {
		t.Fatalf("expected symbol uppercased to QQQ, got %q", cfg.MarketSymbol)
	}
	if cfg.LookbackDays != 14 {
		t.Fatalf("expected 14 lookback days, got %d", cfg.LookbackDays)
	}
	if cfg.NewsPageSize != 50 {
		t.Fatalf("expected page size 50, got %d", cfg.NewsPageSize)
	}
	if cfg.AnalysisPollSecs != 60 || cfg.MarketPollSecs != 120 {
		t.Fatalf("unexpected poll intervals: %d %d", cfg.AnalysisPollSecs, cfg.MarketPollSecs)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("LOOKBACK_DAYS", "not-a-number")
	t.Setenv("NEWS_PAGE_SIZE", "-5")

	cfg := Load()

	if cfg.LookbackDays != 30 {
		t.Fatalf("expected fallback to 30, got %d", cfg.LookbackDays)
	}
	if cfg.NewsPageSize != 100 {
		t.Fatalf("expected fallback to 100, got %d", cfg.NewsPageSize)
	}
}
