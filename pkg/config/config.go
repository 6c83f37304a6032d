package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env vars
// and optionally a file).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Invoice InvoiceConfig
	Leads   LeadsConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selects and configures the draft key-value backend.
// Driver is one of: memory, sqlite, postgres, redis.
type StorageConfig struct {
	Driver string

	SQLitePath string

	// Postgres: DatabaseURL wins when set, otherwise the DSN is built from parts.
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ConnectionString returns the Postgres DSN: DATABASE_URL if defined,
// otherwise the one built from the individual fields.
func (c StorageConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// InvoiceConfig settings for the invoice tool: the access PIN, the session
// token secret, the agency identity seeded into new drafts, and export assets.
//
// PIN is a casual-access deterrent for an internal tool, compared by plain
// string equality. It is not authentication and must not be treated as a
// security boundary.
type InvoiceConfig struct {
	PIN         string
	TokenSecret string

	IssuerName    string
	IssuerAddress string
	IssuerEmail   string
	IssuerPhone   string
	IssuerWebsite string
	IssuerTaxID   string

	DefaultCurrency string
	DefaultNotes    string
	DefaultTerms    string

	// LogoRef is a local file path or an http(s) URL; loading is best-effort.
	LogoRef string
}

// LeadsConfig outbound form relay settings.
type LeadsConfig struct {
	Endpoint string // third-party form backend URL
}

// Load reads configuration from environment variables (and optionally from a
// file). Env vars take priority. Expected names: APP_ENV, HTTP_PORT,
// STORAGE_DRIVER, INVOICE_PIN, LEADS_ENDPOINT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env or config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invoicer-api"),
			LogLevel: getString(v, "APP_LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Driver:        getString(v, "STORAGE_DRIVER", "memory"),
			SQLitePath:    getString(v, "STORAGE_SQLITE_PATH", "data/invoicer.db"),
			DatabaseURL:   getString(v, "DATABASE_URL", ""),
			Host:          getString(v, "DB_HOST", "localhost"),
			Port:          getInt(v, "DB_PORT", 5432),
			User:          getString(v, "DB_USER", "postgres"),
			Password:      getString(v, "DB_PASSWORD", ""),
			DBName:        getString(v, "DB_NAME", "invoicer"),
			SSLMode:       getString(v, "DB_SSLMODE", "disable"),
			RedisAddr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
		},
		Invoice: InvoiceConfig{
			PIN:             getString(v, "INVOICE_PIN", "2468"),
			TokenSecret:     getString(v, "INVOICE_TOKEN_SECRET", ""),
			IssuerName:      getString(v, "INVOICE_ISSUER_NAME", "GrayVally"),
			IssuerAddress:   getString(v, "INVOICE_ISSUER_ADDRESS", "House 12, Road 5\nDhanmondi, Dhaka 1205\nBangladesh"),
			IssuerEmail:     getString(v, "INVOICE_ISSUER_EMAIL", "hello@grayvally.com"),
			IssuerPhone:     getString(v, "INVOICE_ISSUER_PHONE", "+880 1700-000000"),
			IssuerWebsite:   getString(v, "INVOICE_ISSUER_WEBSITE", "https://grayvally.com"),
			IssuerTaxID:     getString(v, "INVOICE_ISSUER_TAX_ID", ""),
			DefaultCurrency: getString(v, "INVOICE_DEFAULT_CURRENCY", "USD"),
			DefaultNotes:    getString(v, "INVOICE_DEFAULT_NOTES", "Thank you for your business."),
			DefaultTerms:    getString(v, "INVOICE_DEFAULT_TERMS", "Payment is due within 7 days of the invoice date."),
			LogoRef:         getString(v, "INVOICE_LOGO", ""),
		},
		Leads: LeadsConfig{
			Endpoint: getString(v, "LEADS_ENDPOINT", "https://formspree.io/f/grayvally"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
