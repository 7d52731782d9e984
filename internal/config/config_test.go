package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Load()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if !cfg.StrictContent {
		t.Error("StrictContent should default to true")
	}
	if cfg.ContentDir != "" || cfg.WatchContent {
		t.Errorf("expected embedded content without watcher, got dir=%q watch=%v", cfg.ContentDir, cfg.WatchContent)
	}
	if cfg.UseRedis() {
		t.Error("Redis should be disabled without an address")
	}
	if cfg.SessionCookie != "javadocs_session" {
		t.Errorf("SessionCookie = %q", cfg.SessionCookie)
	}
	if !cfg.LiveEnabled || cfg.LiveBurst != 20 {
		t.Errorf("live defaults: enabled=%v burst=%d", cfg.LiveEnabled, cfg.LiveBurst)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JAVADOCS_CONTENT_DIR", "/srv/content")
	t.Setenv("JAVADOCS_REDIS_ADDR", "redis:6379")
	t.Setenv("JAVADOCS_ALLOWED_CIDRS", "10.0.0.0/8, '192.168.1.1'")
	t.Setenv("JAVADOCS_RELOAD_INTERVAL", "10m")

	cfg := Load()

	if !cfg.WatchContent {
		t.Error("WatchContent should default to true with a content dir")
	}
	if !cfg.UseRedis() {
		t.Error("Redis should be enabled")
	}
	if !reflect.DeepEqual(cfg.AllowedCIDRS, []string{"10.0.0.0/8", "192.168.1.1"}) {
		t.Errorf("AllowedCIDRS = %v", cfg.AllowedCIDRS)
	}
	if cfg.ReloadInterval != 10*time.Minute {
		t.Errorf("ReloadInterval = %v", cfg.ReloadInterval)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	envFile := filepath.Join(dir, "custom.env")
	if err := os.WriteFile(envFile, []byte("JAVADOCS_LISTEN_ADDR=:9090\nJAVADOCS_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("JAVADOCS_ENV_FILE", envFile)
	t.Setenv("JAVADOCS_LOG_LEVEL", "error")
	t.Cleanup(func() { _ = os.Unsetenv("JAVADOCS_LISTEN_ADDR") })

	cfg := Load()

	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090 from env file", cfg.ListenAddr)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, environment should win over env file", cfg.LogLevel)
	}
}

func TestLoadPanicsOnInvalidCombination(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JAVADOCS_WATCH_CONTENT", "true")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Load() should have panicked")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "FATAL") {
			t.Errorf("unexpected panic message %v", r)
		}
	}()
	Load()
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SessionCookie:     "javadocs_session",
			SessionTTL:        time.Hour,
			SessionGCInterval: time.Hour,
			ViewsSyncInterval: time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"redis password required", func(c *Config) { c.RedisAddr = "r:6379"; c.RedisPasswordRequired = true }, true},
		{"password required without redis", func(c *Config) { c.RedisPasswordRequired = true }, false},
		{"watch without dir", func(c *Config) { c.WatchContent = true }, true},
		{"negative reload interval", func(c *Config) { c.ReloadInterval = -time.Second }, true},
		{"zero session ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"zero gc interval", func(c *Config) { c.SessionGCInterval = 0 }, true},
		{"zero views sync interval", func(c *Config) { c.ViewsSyncInterval = 0 }, true},
		{"empty cookie", func(c *Config) { c.SessionCookie = "" }, true},
		{"live without burst", func(c *Config) { c.LiveEnabled = true; c.LiveRefillPerIP = 60 }, true},
		{"live disabled ignores limits", func(c *Config) { c.LiveEnabled = false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , \"b\" ,, 'c' ", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if got := splitAndTrim(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitAndTrim(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
