package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jekabolt/storefront-ledger/internal/analytics"
	httpapi "github.com/jekabolt/storefront-ledger/internal/api/http"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/auth"
	"github.com/jekabolt/storefront-ledger/internal/cache"
	"github.com/jekabolt/storefront-ledger/internal/checkout"
	"github.com/jekabolt/storefront-ledger/internal/mail"
	"github.com/jekabolt/storefront-ledger/internal/payment/paystack"
	"github.com/jekabolt/storefront-ledger/internal/payment/stripe"
	"github.com/jekabolt/storefront-ledger/internal/ratelimit"
	"github.com/jekabolt/storefront-ledger/internal/store"
	"github.com/jekabolt/storefront-ledger/internal/txreconcile"
	"github.com/jekabolt/storefront-ledger/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB          store.Config       `mapstructure:"mysql"`
	Logger      log.Config         `mapstructure:"logger"`
	HTTP        httpapi.Config     `mapstructure:"http"`
	Auth        auth.Config        `mapstructure:"auth"`
	Mailer      mail.Config        `mapstructure:"mailer"`
	Paystack    paystack.Config    `mapstructure:"paystack"`
	Stripe      stripe.Config      `mapstructure:"stripe"`
	Redis       cache.Config       `mapstructure:"redis"`
	Analytics   analytics.Config   `mapstructure:"analytics"`
	Checkout    checkout.Config    `mapstructure:"checkout"`
	TxReconcile txreconcile.Config `mapstructure:"tx_reconcile"`
	RateLimit   ratelimit.Config   `mapstructure:"rate_limit"`
}

// envBindings maps config keys to flat environment variable names.
// Nested keys are also readable with a double underscore, e.g. MYSQL__DSN.
var envBindings = map[string]string{
	"mysql.dsn":                  "MYSQL_DSN",
	"mysql.automigrate":          "MYSQL_AUTOMIGRATE",
	"mysql.max_open_connections": "MYSQL_MAX_OPEN_CONNECTIONS",
	"mysql.max_idle_connections": "MYSQL_MAX_IDLE_CONNECTIONS",
	"mysql.tls_ca_path":          "MYSQL_TLS_CA_PATH",

	"logger.level":      "LOG_LEVEL",
	"logger.add_source": "LOG_ADD_SOURCE",

	"http.port":            "HTTP_PORT",
	"http.address":         "HTTP_ADDRESS",
	"http.allowed_origins": "HTTP_ALLOWED_ORIGINS",

	"auth.jwt_secret":      "AUTH_JWT_SECRET",
	"auth.master_password": "AUTH_MASTER_PASSWORD",
	"auth.jwt_ttl":         "AUTH_JWT_TTL",

	"mailer.sendgrid_api_key": "MAILER_SENDGRID_API_KEY",
	"mailer.from_email":       "MAILER_FROM_EMAIL",
	"mailer.from_email_name":  "MAILER_FROM_EMAIL_NAME",
	"mailer.reply_to":         "MAILER_REPLY_TO",
	"mailer.worker_interval":  "MAILER_WORKER_INTERVAL",

	"paystack.secret_key":     "PAYSTACK_SECRET_KEY",
	"paystack.public_key":     "PAYSTACK_PUBLIC_KEY",
	"paystack.webhook_secret": "PAYSTACK_WEBHOOK_SECRET",
	"paystack.base_url":       "PAYSTACK_BASE_URL",
	"paystack.callback_url":   "PAYSTACK_CALLBACK_URL",

	"stripe.secret_key":     "STRIPE_SECRET_KEY",
	"stripe.pub_key":        "STRIPE_PUB_KEY",
	"stripe.webhook_secret": "STRIPE_WEBHOOK_SECRET",

	"redis.addr":     "REDIS_ADDR",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",
	"redis.ttl":      "REDIS_TTL",

	"analytics.timezone": "ANALYTICS_TIMEZONE",

	"tx_reconcile.worker_interval": "TX_RECONCILE_WORKER_INTERVAL",
	"tx_reconcile.stale_after":     "TX_RECONCILE_STALE_AFTER",
	"tx_reconcile.expire_after":    "TX_RECONCILE_EXPIRE_AFTER",
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values. An empty
// cfgFile searches the default locations; a missing file is not an error.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("can't bind %s: %w", env, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/storefront-ledger")
		v.AddConfigPath("/etc/storefront-ledger")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %w", err)
	}
	config.HTTP.AllowedOrigins = splitList(strings.Join(config.HTTP.AllowedOrigins, ","))
	if config.DB.DSN == "" {
		config.DB.DSN = dsnFromEnv()
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8081")
	v.SetDefault("http.address", "0.0.0.0")
	v.SetDefault("auth.jwt_ttl", "24h")
	v.SetDefault("mysql.automigrate", true)

	co := checkout.DefaultConfig()
	v.SetDefault("checkout.complete_timeout", co.CompleteTimeout)
	v.SetDefault("checkout.mail_timeout", co.MailTimeout)

	tr := txreconcile.DefaultConfig()
	v.SetDefault("tx_reconcile.worker_interval", tr.WorkerInterval)
	v.SetDefault("tx_reconcile.stale_after", tr.StaleAfter)
	v.SetDefault("tx_reconcile.expire_after", tr.ExpireAfter)
	v.SetDefault("tx_reconcile.batch_size", tr.BatchSize)
	v.SetDefault("tx_reconcile.verify_rate", tr.VerifyRate)

	rl := ratelimit.DefaultConfig()
	v.SetDefault("rate_limit.initiate_per_ip_hour", rl.InitiatePerIPHour)
	v.SetDefault("rate_limit.initiate_per_email_hour", rl.InitiatePerEmailHour)
	v.SetDefault("rate_limit.confirm_per_ip_minute", rl.ConfirmPerIPMinute)
}

// dsnFromEnv builds a DSN from MYSQL_HOST, MYSQL_PORT, MYSQL_USER,
// MYSQL_PASSWORD and MYSQL_DATABASE.
func dsnFromEnv() string {
	host := os.Getenv("MYSQL_HOST")
	user := os.Getenv("MYSQL_USER")
	password := os.Getenv("MYSQL_PASSWORD")
	database := os.Getenv("MYSQL_DATABASE")
	if host == "" || user == "" || database == "" {
		return ""
	}
	port := os.Getenv("MYSQL_PORT")
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
		user, password, host, port, database)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
