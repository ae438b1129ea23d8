package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port             string
	DatabaseURL      string
	RedisURL         string
	APIKey           string
	TelegramBotToken string

	NewsAPIURL   string
	NewsAPIKey   string
	NewsQuery    string
	NewsPageSize int

	MarketAPIURL string
	MarketSymbol string
	LookbackDays int

	AnalysisPollSecs int
	MarketPollSecs   int

	OpenAIAPIKey      string
	OpenAIModel       string
	AdvisorMaxHistory int
}

func Load() *Config {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		APIKey:           strings.TrimSpace(os.Getenv("API_KEY")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		NewsAPIKey:       strings.TrimSpace(os.Getenv("NEWS_API_KEY")),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.NewsAPIKey == "" {
		log.Println("Warning: NEWS_API_KEY not set, news fetch will be disabled")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, advisor will be disabled")
	}

	cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.NewsAPIURL = strings.TrimSpace(os.Getenv("NEWS_API_URL"))
	if cfg.NewsAPIURL == "" {
		cfg.NewsAPIURL = "https://newsapi.org/v2"
	}

	cfg.NewsQuery = strings.TrimSpace(os.Getenv("NEWS_QUERY"))
	if cfg.NewsQuery == "" {
		cfg.NewsQuery = "stock market OR economy OR earnings"
	}

	cfg.NewsPageSize = 100
	if v := strings.TrimSpace(os.Getenv("NEWS_PAGE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			cfg.NewsPageSize = n
		}
	}

	cfg.MarketAPIURL = strings.TrimSpace(os.Getenv("MARKET_API_URL"))
	if cfg.MarketAPIURL == "" {
		cfg.MarketAPIURL = "https://query1.finance.yahoo.com"
	}

	cfg.MarketSymbol = strings.ToUpper(strings.TrimSpace(os.Getenv("MARKET_SYMBOL")))
	if cfg.MarketSymbol == "" {
		cfg.MarketSymbol = "SPY"
	}

	cfg.LookbackDays = 30
	if v := strings.TrimSpace(os.Getenv("LOOKBACK_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LookbackDays = n
		}
	}

	cfg.AnalysisPollSecs = 900
	if v := strings.TrimSpace(os.Getenv("ANALYSIS_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AnalysisPollSecs = n
		}
	}

	cfg.MarketPollSecs = 300
	if v := strings.TrimSpace(os.Getenv("MARKET_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MarketPollSecs = n
		}
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.AdvisorMaxHistory = 20
	if v := os.Getenv("ADVISOR_MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorMaxHistory = n
		}
	}

	return cfg
}
