package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Market struct {
		HistoryDays     int           `yaml:"history_days"`
		QuoteSummaryURL string        `yaml:"quote_summary_url"`
		SearchURL       string        `yaml:"search_url"`
		RequestTimeout  time.Duration `yaml:"request_timeout"`
		RateLimit       struct {
			Capacity     float64 `yaml:"capacity"`
			RefillPerSec float64 `yaml:"refill_per_sec"`
		} `yaml:"rate_limit"`
		CacheTTL struct {
			History      time.Duration `yaml:"history"`
			Quote        time.Duration `yaml:"quote"`
			Fundamentals time.Duration `yaml:"fundamentals"`
		} `yaml:"cache_ttl"`
	} `yaml:"market"`
	News struct {
		MaxArticles int           `yaml:"max_articles"`
		CacheTTL    time.Duration `yaml:"cache_ttl"`
	} `yaml:"news"`
	Sector struct {
		Name     string            `yaml:"name"`
		Peers    map[string]string `yaml:"peers"` // symbol -> company name
		CacheTTL time.Duration     `yaml:"cache_ttl"`
	} `yaml:"sector"`
	Analysis struct {
		Symbols           []string `yaml:"symbols"`
		TechnicalWeight   float64  `yaml:"technical_weight"`
		NewsWeight        float64  `yaml:"news_weight"`
		FundamentalWeight float64  `yaml:"fundamental_weight"`
		MinRiskReward     float64  `yaml:"min_risk_reward"`
	} `yaml:"analysis"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Queue struct {
		Workers    int           `yaml:"workers"`
		RetryLimit int           `yaml:"retry_limit"`
		RetryDelay time.Duration `yaml:"retry_delay"`
	} `yaml:"queue"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Stream struct {
		Enabled        bool          `yaml:"enabled"`
		APIKey         string        `yaml:"api_key"`
		WebSocketURL   string        `yaml:"websocket_url"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
	} `yaml:"stream"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Backtest struct {
		LookbackDays int `yaml:"lookback_days"`
		ContextDays  int `yaml:"context_days"`
		HoldDays     int `yaml:"hold_days"`
	} `yaml:"backtest"`
	Notify struct {
		Telegram struct {
			Enabled bool   `yaml:"enabled"`
			Token   string `yaml:"token"`
			ChatID  int64  `yaml:"chat_id"`
		} `yaml:"telegram"`
	} `yaml:"notify"`
	Search struct {
		Enabled     bool   `yaml:"enabled"`
		IndexPath   string `yaml:"index_path"`
		SymbolsFile string `yaml:"symbols_file"`
	} `yaml:"search"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Analysis.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("STREAM_API_KEY"); v != "" {
		c.Stream.APIKey = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.Notify.Telegram.Token = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Market.HistoryDays <= 0 {
		c.Market.HistoryDays = 60
	}
	if c.Market.QuoteSummaryURL == "" {
		c.Market.QuoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
	}
	if c.Market.SearchURL == "" {
		c.Market.SearchURL = "https://query1.finance.yahoo.com/v1/finance/search"
	}
	if c.Market.RequestTimeout <= 0 {
		c.Market.RequestTimeout = 10 * time.Second
	}
	if c.Market.RateLimit.Capacity <= 0 {
		c.Market.RateLimit.Capacity = 5
	}
	if c.Market.RateLimit.RefillPerSec <= 0 {
		c.Market.RateLimit.RefillPerSec = 2
	}
	if c.Market.CacheTTL.History <= 0 {
		c.Market.CacheTTL.History = time.Hour
	}
	if c.Market.CacheTTL.Quote <= 0 {
		c.Market.CacheTTL.Quote = time.Minute
	}
	if c.Market.CacheTTL.Fundamentals <= 0 {
		c.Market.CacheTTL.Fundamentals = 6 * time.Hour
	}
	if c.News.MaxArticles <= 0 {
		c.News.MaxArticles = 5
	}
	if c.News.CacheTTL <= 0 {
		c.News.CacheTTL = 15 * time.Minute
	}
	if c.Sector.CacheTTL <= 0 {
		c.Sector.CacheTTL = time.Hour
	}
	if c.Analysis.TechnicalWeight <= 0 {
		c.Analysis.TechnicalWeight = 0.5
	}
	if c.Analysis.NewsWeight <= 0 {
		c.Analysis.NewsWeight = 0.3
	}
	if c.Analysis.FundamentalWeight <= 0 {
		c.Analysis.FundamentalWeight = 0.2
	}
	if c.Analysis.MinRiskReward <= 0 {
		c.Analysis.MinRiskReward = 1.5
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Backtest.LookbackDays <= 0 {
		c.Backtest.LookbackDays = 60
	}
	if c.Backtest.ContextDays <= 0 {
		c.Backtest.ContextDays = 30
	}
	if c.Backtest.HoldDays <= 0 {
		c.Backtest.HoldDays = 5
	}
	if c.Queue.Workers <= 0 {
		c.Queue.Workers = 2
	}
	if c.Queue.RetryLimit <= 0 {
		c.Queue.RetryLimit = 3
	}
	if c.Queue.RetryDelay <= 0 {
		c.Queue.RetryDelay = 30 * time.Second
	}
	if c.Stream.WebSocketURL == "" {
		c.Stream.WebSocketURL = "wss://ws.finnhub.io"
	}
	if c.Stream.ReconnectDelay <= 0 {
		c.Stream.ReconnectDelay = 5 * time.Second
	}
	if c.Stream.PingInterval <= 0 {
		c.Stream.PingInterval = 20 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	sum := c.Analysis.TechnicalWeight + c.Analysis.NewsWeight + c.Analysis.FundamentalWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("analysis weights must sum to 1, got %.3f", sum)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	if c.Stream.Enabled && c.Stream.APIKey == "" {
		return fmt.Errorf("stream.api_key is required when stream is enabled")
	}
	if c.Notify.Telegram.Enabled && c.Notify.Telegram.Token == "" {
		return fmt.Errorf("notify.telegram.token is required when telegram is enabled")
	}
	return nil
}
