// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, request limits). AppConfig is everything specific to
// ChapterHub, loaded in LoadConfig from env vars, config files, or flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: chapterhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // 32-byte key for CSRF token signing

	// Rendered-page cache for anonymous pages
	PageCacheSize int           // Max cached pages
	PageCacheTTL  time.Duration // Time before a cached page expires

	// Base URL for absolute links
	BaseURL string // e.g., "https://chapterhub.org" or "http://localhost:3000"
}
