package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout, live connections excluded

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Content
	ContentDir     string        // directory with categories.yaml and topics/ ("" = embedded dataset)
	StrictContent  bool          // abort startup when the dataset is inconsistent
	WatchContent   bool          // reload on file changes in ContentDir
	ReloadInterval time.Duration // periodic reload (0 = disabled)
	HighlightStyle string        // chroma style for code blocks in markdown sections

	// Sessions
	SessionCookie     string        // cookie name carrying the session id
	SessionSecure     bool          // set the Secure flag on the session cookie
	SessionTTL        time.Duration // idle lifetime of a session
	SessionGCInterval time.Duration // memory store sweep interval
	ViewsSyncInterval time.Duration // flush interval of view counters to Redis

	// Redis ("" address => in-memory sessions)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// HTTP surface
	AllowedHosts    []string // optional, restrict access to specific Host headers
	AllowedCIDRS    []string // optional, restrict /metrics, /infra and /reload to these IPs/CIDRs
	TrustProxy      bool     // true => trust X-Forwarded-For headers
	CORSOrigins     []string // allowed origins for /api
	MetricsEnabled  bool     // expose /metrics
	LiveEnabled     bool     // serve the /live websocket
	LiveBurst       int      // live connections allowed per IP in a burst
	LiveRefillPerIP int      // live connection tokens refilled per IP per minute
}

// Load reads the configuration from the environment, after applying .env
// files. It panics on invalid combinations.
func Load() *Config {
	if err := loadEnvFiles(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("JAVADOCS_LISTEN_ADDR", ":8080"),
		ShutdownTimeout: mustDuration("JAVADOCS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("JAVADOCS_REQUEST_TIMEOUT", 30*time.Second),

		// Logging
		LogLevel:  getenv("JAVADOCS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("JAVADOCS_PRETTY_LOG", true),

		// Content
		ContentDir:     getenv("JAVADOCS_CONTENT_DIR", ""),
		StrictContent:  mustBool("JAVADOCS_STRICT_CONTENT", true),
		ReloadInterval: mustDuration("JAVADOCS_RELOAD_INTERVAL", 0),
		HighlightStyle: getenv("JAVADOCS_HIGHLIGHT_STYLE", "github"),

		// Sessions
		SessionCookie:     getenv("JAVADOCS_SESSION_COOKIE", "javadocs_session"),
		SessionSecure:     mustBool("JAVADOCS_SESSION_SECURE", false),
		SessionTTL:        mustDuration("JAVADOCS_SESSION_TTL", 7*24*time.Hour),
		SessionGCInterval: mustDuration("JAVADOCS_SESSION_GC_INTERVAL", time.Hour),
		ViewsSyncInterval: mustDuration("JAVADOCS_VIEWS_SYNC_INTERVAL", time.Minute),

		// Redis settings
		RedisAddr:             getenv("JAVADOCS_REDIS_ADDR", ""),
		RedisUser:             getenv("JAVADOCS_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("JAVADOCS_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("JAVADOCS_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("JAVADOCS_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// HTTP surface
		AllowedHosts:    splitAndTrim(getenv("JAVADOCS_ALLOWED_HOSTS", "")),
		AllowedCIDRS:    splitAndTrim(getenv("JAVADOCS_ALLOWED_CIDRS", "")),
		TrustProxy:      mustBool("JAVADOCS_TRUST_PROXY", false),
		CORSOrigins:     splitAndTrim(getenv("JAVADOCS_CORS_ORIGINS", "*")),
		MetricsEnabled:  mustBool("JAVADOCS_METRICS_ENABLED", true),
		LiveEnabled:     mustBool("JAVADOCS_LIVE_ENABLED", true),
		LiveBurst:       getenvInt("JAVADOCS_LIVE_BURST", 20),
		LiveRefillPerIP: getenvInt("JAVADOCS_LIVE_REFILL_PER_MIN", 60),
	}
	cfg.WatchContent = mustBool("JAVADOCS_WATCH_CONTENT", cfg.ContentDir != "")

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate reports the first invalid setting combination.
func (c *Config) Validate() error {
	switch {
	case c.RedisAddr != "" && c.RedisPasswordRequired && c.RedisPassword == "":
		return fmt.Errorf("JAVADOCS_REDIS_PASSWORD is required when JAVADOCS_REDIS_PASSWORD_REQUIRED=true")
	case c.WatchContent && c.ContentDir == "":
		return fmt.Errorf("JAVADOCS_WATCH_CONTENT requires JAVADOCS_CONTENT_DIR")
	case c.ReloadInterval < 0:
		return fmt.Errorf("JAVADOCS_RELOAD_INTERVAL must be >= 0, got %v", c.ReloadInterval)
	case c.SessionTTL <= 0:
		return fmt.Errorf("JAVADOCS_SESSION_TTL must be > 0, got %v", c.SessionTTL)
	case c.SessionGCInterval <= 0:
		return fmt.Errorf("JAVADOCS_SESSION_GC_INTERVAL must be > 0, got %v", c.SessionGCInterval)
	case c.ViewsSyncInterval <= 0:
		return fmt.Errorf("JAVADOCS_VIEWS_SYNC_INTERVAL must be > 0, got %v", c.ViewsSyncInterval)
	case c.LiveEnabled && (c.LiveBurst <= 0 || c.LiveRefillPerIP <= 0):
		return fmt.Errorf("JAVADOCS_LIVE_BURST and JAVADOCS_LIVE_REFILL_PER_MIN must be > 0")
	case c.SessionCookie == "":
		return fmt.Errorf("JAVADOCS_SESSION_COOKIE must not be empty")
	}
	return nil
}

// UseRedis reports whether sessions and view counters live in Redis.
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

// loadEnvFiles loads JAVADOCS_ENV_FILE when set, otherwise .env.local then
// .env. Missing files are ignored; variables already set win.
func loadEnvFiles() error {
	if envFile := os.Getenv("JAVADOCS_ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
