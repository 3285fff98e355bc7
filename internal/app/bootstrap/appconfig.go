// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (ports, TLS, logging, CORS); AppConfig is
// everything specific to the portal.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: homeclass-session)
	SessionDomain string // Cookie domain (blank means current host)

	// File upload configuration
	UploadDir string // Local directory for uploaded images (served at /uploads/)

	// Push notification relay
	PushRelayURL string // Base URL of the push relay; blank disables delivery

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks (e.g., "https://portal.example.org")
	BaseURL string

	// SuperAdmin bootstrap: an existing account with this email is
	// promoted to superadmin at startup.
	SuperAdminEmail string
}
