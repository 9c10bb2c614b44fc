package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	DB        Database        `mapstructure:"database"`
	API       API             `mapstructure:"api"`
	Cache     Cache           `mapstructure:"cache"`
	Market    Market          `mapstructure:"market"`
	News      News            `mapstructure:"news"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// Cache selects the fast-cache driver and carries the per-key TTL classes.
// Market snapshots expire in minutes, news lists in hours; prices move
// faster than relevant news.
type Cache struct {
	Driver          string        `mapstructure:"driver"` // "memory" or "redis"
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MarketTTL       time.Duration `mapstructure:"market_ttl"`
	NewsTTL         time.Duration `mapstructure:"news_ttl"`
}

type Market struct {
	Symbol              string        `mapstructure:"symbol"`
	AnalysisPeriodDays  int           `mapstructure:"analysis_period_days"`
	ShortMAPeriod       int           `mapstructure:"short_ma_period"`
	LongMAPeriod        int           `mapstructure:"long_ma_period"`
	PriceBaseURL        string        `mapstructure:"price_base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type News struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	LookbackDays int           `mapstructure:"lookback_days"`
	ResultsLimit int           `mapstructure:"results_limit"`
	Language     string        `mapstructure:"language"`
	BullishQuery string        `mapstructure:"bullish_query"`
	BearishQuery string        `mapstructure:"bearish_query"`
}

type TelegramConfig struct {
	BotToken        string        `mapstructure:"bot_token"`
	AllowedChatIDs  []int64       `mapstructure:"allowed_chat_ids"`
	WebhookURL      string        `mapstructure:"webhook_url"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type SchedulerConfig struct {
	CronSpec string `mapstructure:"cron_spec"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.name", "trendbot")
	viper.SetDefault("database.ssl_mode", "disable")

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("cache.driver", "memory")
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("cache.market_ttl", 5*time.Minute)
	viper.SetDefault("cache.news_ttl", 6*time.Hour)

	viper.SetDefault("market.symbol", "VWRA.L")
	viper.SetDefault("market.analysis_period_days", 30)
	viper.SetDefault("market.short_ma_period", 5)
	viper.SetDefault("market.long_ma_period", 10)
	viper.SetDefault("market.price_base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("market.timeout", 30*time.Second)
	viper.SetDefault("market.max_request_per_minute", 5)

	viper.SetDefault("news.base_url", "https://newsapi.org/v2")
	viper.SetDefault("news.timeout", 30*time.Second)
	viper.SetDefault("news.lookback_days", 7)
	viper.SetDefault("news.results_limit", 5)
	viper.SetDefault("news.language", "en")
	viper.SetDefault("news.bullish_query", "global market growth OR stock market rally OR economic growth")
	viper.SetDefault("news.bearish_query", "market decline OR economic concerns OR stock market drop")

	viper.SetDefault("telegram.timeout_duration", 2*time.Minute)
}

// Validate fails fast on missing required credentials so a broken deployment
// never reaches the resolvers.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is not set")
	}
	if c.News.APIKey == "" {
		return fmt.Errorf("news.api_key is not set")
	}
	if c.Market.ShortMAPeriod <= 0 || c.Market.LongMAPeriod <= c.Market.ShortMAPeriod {
		return fmt.Errorf("invalid moving average periods: short=%d long=%d",
			c.Market.ShortMAPeriod, c.Market.LongMAPeriod)
	}
	return nil
}
