// Package config manages application configuration for the Cuppa API.
//
// Configuration is layered with koanf. Struct defaults are loaded first, then
// an optional YAML file named by CUPPA_CONFIG, then environment variables:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: RS256 key paths and token lifetime
//   - RedisConfig: recommendation cache
//   - RateLimitConfig: per-client request limits
//   - TelemetryConfig: tracing
//
// # Environment Variables
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	SERVER_ENV           - development, production or test
//	CORS_ALLOWED_ORIGINS - comma-separated origins
//	DB_HOST, DB_PORT     - SurrealDB address
//	DB_NAMESPACE         - SurrealDB namespace
//	DB_DATABASE          - SurrealDB database
//	JWT_PUBLIC_KEY_PATH  - PEM public key used to verify access tokens
//	REDIS_ENABLED        - enable the recommendation cache
//	REDIS_ADDR           - Redis address (default: localhost:6379)
//	RATE_LIMIT_REQUESTS  - requests per window per client
//
// Unknown environment variables are ignored.
package config
