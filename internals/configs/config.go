package configs

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Identity providers.
const (
	ProviderJWT    = "jwt"
	ProviderGoogle = "google"
)

type Config struct {
	Port        string
	Environment string
	StoreDriver string

	Postgres Postgres
	Mongo    Mongo
	Auth     Auth
	Logger   Logger
	HTTP     HTTP
}

type Postgres struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

// DSN carries a 3s statement_timeout, matching the HTTP timeout guard.
func (p Postgres) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=mindsprint&options=-c statement_timeout=3000",
		p.User, p.Password, p.Host, p.Port, p.Name, p.SSLMode,
	)
}

type Mongo struct {
	URI      string
	Database string
}

type Auth struct {
	Provider        string
	JWTSecret       string
	JWTClockSkew    time.Duration
	GoogleClientID  string
	TherapistEmails []string
}

type Logger struct {
	Level  string
	Format string
}

type HTTP struct {
	CORSOrigins []string
	// TrustedProxies are the IPs or CIDRs whose X-Forwarded-For is honoured.
	// Empty means the peer address is always the client IP.
	TrustedProxies []string
	RateLimitMax   int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("store_driver", DriverMemory)
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_sslmode", "require")
	v.SetDefault("mongodb_uri", "mongodb://localhost:27017/mindsprint")
	v.SetDefault("mongodb_database", "mindsprint")
	v.SetDefault("auth_provider", ProviderJWT)
	v.SetDefault("jwt_clock_skew", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("rate_limit_max", 100)
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	env := v.GetString("app_env")
	if env == "" {
		env = v.GetString("node_env")
	}
	if env == "" {
		env = "development"
	}

	cfg := &Config{
		Port:        v.GetString("port"),
		Environment: env,
		StoreDriver: strings.ToLower(strings.TrimSpace(v.GetString("store_driver"))),
		Postgres: Postgres{
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Mongo: Mongo{
			URI:      v.GetString("mongodb_uri"),
			Database: v.GetString("mongodb_database"),
		},
		Auth: Auth{
			Provider:        strings.ToLower(strings.TrimSpace(v.GetString("auth_provider"))),
			JWTSecret:       v.GetString("jwt_secret"),
			JWTClockSkew:    v.GetDuration("jwt_clock_skew"),
			GoogleClientID:  v.GetString("google_client_id"),
			TherapistEmails: splitList(v.GetString("therapist_emails")),
		},
		Logger: Logger{
			Level:  v.GetString("log_level"),
			Format: strings.ToLower(v.GetString("log_format")),
		},
		HTTP: HTTP{
			CORSOrigins:    splitList(v.GetString("cors_origins")),
			TrustedProxies: splitList(v.GetString("trusted_proxies")),
			RateLimitMax:   v.GetInt("rate_limit_max"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverMemory, DriverMongo:
	case DriverPostgres:
		if c.Postgres.Host == "" || c.Postgres.Name == "" {
			errs = append(errs, errors.New("postgres store needs DB_HOST and DB_NAME"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.Auth.Provider {
	case ProviderJWT:
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required for the jwt provider"))
		}
	case ProviderGoogle:
		if c.Auth.GoogleClientID == "" {
			errs = append(errs, errors.New("GOOGLE_CLIENT_ID is required for the google provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_PROVIDER %q", c.Auth.Provider))
	}

	if c.Auth.JWTClockSkew < 0 {
		errs = append(errs, errors.New("JWT_CLOCK_SKEW must not be negative"))
	}
	for _, p := range c.HTTP.TrustedProxies {
		if _, _, err := net.ParseCIDR(p); err != nil && net.ParseIP(p) == nil {
			errs = append(errs, fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", p))
		}
	}
	if c.HTTP.RateLimitMax < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
