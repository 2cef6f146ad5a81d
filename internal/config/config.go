package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`           // current application environment (local, dev, prod etc)
	TelegramAPIToken string    `mapstructure:"-"`             // Telegram API token loaded from environment
	AdminChatID      int64     `mapstructure:"admin_chat_id"` // chat id notified about payments
	ChannelID        int64     `mapstructure:"channel_id"`    // channel that stores forwardable content messages
	Batch            string    `mapstructure:"batch"`         // content batch used for key lookups
	DB               DB        `mapstructure:"database"`      // database configuration section
	HTTP             HTTP      `mapstructure:"http"`          // payment webhook server section
	Cashfree         Cashfree  `mapstructure:"cashfree"`      // payment gateway section
	Telegraph        Telegraph `mapstructure:"telegraph"`     // catalog page publishing section
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// HTTP configures the payment webhook listener.
type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// Cashfree contains payment gateway parameters; credentials come from
// the environment.
type Cashfree struct {
	AppID     string `mapstructure:"-"`
	SecretKey string `mapstructure:"-"`
	APIURL    string `mapstructure:"api_url"`
	ReturnURL string `mapstructure:"return_url"`
	NotifyURL string `mapstructure:"notify_url"`
}

// Telegraph identifies the account used for published catalog pages.
type Telegraph struct {
	ShortName  string `mapstructure:"short_name"`
	AuthorName string `mapstructure:"author_name"`
	AuthorURL  string `mapstructure:"author_url"`
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("batch", "2026")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("cashfree.api_url", "https://sandbox.cashfree.com/pg")
	v.SetDefault("telegraph.short_name", "EduHubBot")
	v.SetDefault("telegraph.author_name", "EduHub Bot")
	v.SetDefault("telegraph.author_url", "https://t.me/neetpw01")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("cashfree_app_id", "CASHFREE_APP_ID")
	_ = v.BindEnv("cashfree_secret_key", "CASHFREE_SECRET_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	// Payment credentials are optional; /pay is disabled without them.
	cfg.Cashfree.AppID = v.GetString("cashfree_app_id")
	cfg.Cashfree.SecretKey = v.GetString("cashfree_secret_key")

	if cfg.Env == "production" {
		cfg.Cashfree.APIURL = "https://api.cashfree.com/pg"
	}

	return &cfg, nil
}
