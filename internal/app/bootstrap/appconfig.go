// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: WAFFLE's CoreConfig handles
// framework-level settings like HTTP/HTTPS ports, TLS, logging level, and
// request body size limits.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Access token configuration
	TokenSecret  string        // HMAC secret for signing access tokens (must be strong in production)
	TokenTTL     time.Duration // Access token lifetime (cookie lifetime matches)
	CookieDomain string        // Auth cookie domain (blank means current host)

	// Google OAuth configuration (teacher calendar connect)
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks (e.g., "https://classhub.example.com")
	BaseURL string

	// CORS allowed origins for the browser frontend, comma-separated.
	AllowedOrigins string
}
