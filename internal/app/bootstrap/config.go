// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/classhub/internal/app/system/token"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ClassHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: CLASSHUB_MONGO_URI, CLASSHUB_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "class_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Access token / cookie configuration
	{Name: "token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Access token signing secret (must be strong in production)"},
	{Name: "token_ttl", Default: "24h", Desc: "Access token lifetime (e.g., 24h, 90m)"},
	{Name: "cookie_domain", Default: "", Desc: "Auth cookie domain (blank means current host)"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Base URL for OAuth callbacks
	{Name: "base_url", Default: "http://localhost:8080", Desc: "Base URL for OAuth callbacks"},

	// CORS
	{Name: "allowed_origins", Default: "http://localhost:3000", Desc: "Comma-separated CORS origins for the frontend"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CLASSHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLASSHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret:  appValues.String("token_secret"),
		TokenTTL:     appValues.Duration("token_ttl", token.DefaultTTL),
		CookieDomain: appValues.String("cookie_domain"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		BaseURL: appValues.String("base_url"),

		AllowedOrigins: appValues.String("allowed_origins"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// ClassHub validates the MongoDB URI format to catch configuration errors
// early, and refuses to start in production with the dev token secret.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.TokenSecret == "" || appCfg.TokenSecret == "dev-only-change-me-please-0123456789ABCDEF" {
			return fmt.Errorf("token_secret must be set to a strong value in production")
		}
	}

	if appCfg.TokenTTL < time.Minute {
		return fmt.Errorf("token_ttl too short: %s", appCfg.TokenTTL)
	}

	return nil
}
