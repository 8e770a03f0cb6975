package configs

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "APP_ENV", "NODE_ENV", "STORE_DRIVER",
	"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "DB_SSLMODE",
	"MONGODB_URI", "MONGODB_DATABASE",
	"AUTH_PROVIDER", "JWT_SECRET", "GOOGLE_CLIENT_ID", "THERAPIST_EMAILS",
	"JWT_CLOCK_SKEW", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS", "TRUSTED_PROXIES", "RATE_LIMIT_MAX",
}

// clearEnv blanks every key Load reads; viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, DriverMemory, cfg.StoreDriver)
	require.Equal(t, ProviderJWT, cfg.Auth.Provider)
	require.Equal(t, "mongodb://localhost:27017/mindsprint", cfg.Mongo.URI)
	require.Equal(t, "mindsprint", cfg.Mongo.Database)
	require.Equal(t, 100, cfg.HTTP.RateLimitMax)
	require.Empty(t, cfg.HTTP.CORSOrigins)
	require.Empty(t, cfg.HTTP.TrustedProxies)
	require.Equal(t, 30*time.Second, cfg.Auth.JWTClockSkew)
	require.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "5000")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_NAME", "mindsprint")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("AUTH_PROVIDER", "google")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id.apps.googleusercontent.com")
	t.Setenv("THERAPIST_EMAILS", " dr.smith@example.com, ,lee@example.com ")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173,https://app.example.com")
	t.Setenv("RATE_LIMIT_MAX", "20")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 173.245.48.1")
	t.Setenv("JWT_CLOCK_SKEW", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Port)
	require.True(t, cfg.IsProduction())
	require.Equal(t, DriverPostgres, cfg.StoreDriver)
	require.Equal(t, []string{"dr.smith@example.com", "lee@example.com"}, cfg.Auth.TherapistEmails)
	require.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.HTTP.CORSOrigins)
	require.Equal(t, 20, cfg.HTTP.RateLimitMax)
	require.Equal(t, []string{"10.0.0.0/8", "173.245.48.1"}, cfg.HTTP.TrustedProxies)
	require.Equal(t, 5*time.Second, cfg.Auth.JWTClockSkew)
	require.Contains(t, cfg.Postgres.DSN(), "postgres://app:pw@db.local:5432/mindsprint?sslmode=require")
}

func TestAppEnvWinsOverNodeEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("NODE_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "staging", cfg.Environment)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"unknown driver", Config{StoreDriver: "redis", Auth: Auth{Provider: ProviderJWT, JWTSecret: "x"}}, "STORE_DRIVER"},
		{"postgres without host", Config{StoreDriver: DriverPostgres, Auth: Auth{Provider: ProviderJWT, JWTSecret: "x"}}, "DB_HOST"},
		{"missing secret", Config{StoreDriver: DriverMemory, Auth: Auth{Provider: ProviderJWT}}, "JWT_SECRET"},
		{"missing client id", Config{StoreDriver: DriverMemory, Auth: Auth{Provider: ProviderGoogle}}, "GOOGLE_CLIENT_ID"},
		{"unknown provider", Config{StoreDriver: DriverMemory, Auth: Auth{Provider: "saml"}}, "AUTH_PROVIDER"},
		{"bad trusted proxy", Config{StoreDriver: DriverMemory, Auth: Auth{Provider: ProviderJWT, JWTSecret: "x"}, HTTP: HTTP{TrustedProxies: []string{"cloudflare"}}}, "TRUSTED_PROXIES"},
		{"negative skew", Config{StoreDriver: DriverMemory, Auth: Auth{Provider: ProviderJWT, JWTSecret: "x", JWTClockSkew: -time.Second}}, "JWT_CLOCK_SKEW"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}

	ok := Config{StoreDriver: DriverMongo, Auth: Auth{Provider: ProviderJWT, JWTSecret: "x"}, HTTP: HTTP{TrustedProxies: []string{"10.0.0.0/8", "127.0.0.1"}}}
	require.NoError(t, ok.Validate())
}

func TestNewLogger(t *testing.T) {
	l := NewLogger(Logger{Level: "debug", Format: "json"})
	require.Equal(t, logrus.DebugLevel, l.GetLevel())
	require.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = NewLogger(Logger{Level: "nonsense"})
	require.Equal(t, logrus.InfoLevel, l.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestLoadEnvLogsThroughLogrus(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)
	t.Setenv("RAILWAY_ENVIRONMENT", "production")

	LoadEnv()
	require.NotNil(t, hook.LastEntry())
	require.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	require.Contains(t, hook.LastEntry().Message, "Railway")
}
