package deps

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/javadocs/internal/index"
	"github.com/MrSnakeDoc/javadocs/internal/logger"
	"github.com/MrSnakeDoc/javadocs/internal/metrics"
	"github.com/MrSnakeDoc/javadocs/internal/session"
	"github.com/MrSnakeDoc/javadocs/internal/views"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedHosts []string // Host headers allowed to access the server
	AllowedCIDRS []string // client IPs allowed on /metrics, /reload and /infra
	TrustProxy   bool     // resolve client IPs from X-Forwarded-For / X-Real-IP
	CORSOrigins  []string // origins allowed to read /api

	Index            *index.ContentIndex // shared dataset and view counters
	Sessions         session.Store       // per-visitor navigation state
	SessionStoreKind string              // "memory" or "redis", reported by /infra
	SessionCookie    string
	SessionSecure    bool
	SessionTTL       time.Duration
	RedisClient      *redis.Client // nil when Redis is not configured

	Views          *views.Renderer
	Metrics        metrics.Recorder
	MetricsHandler http.Handler // nil disables /metrics

	ReloadTrigger chan struct{} // manual content reload

	LiveEnabled     bool // serve /live and let pages connect to it
	LiveBurst       int
	LiveRefillPerIP int
}

// Now returns d.TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}

// Recorder returns d.Metrics or a no-op recorder.
func (d Deps) Recorder() metrics.Recorder {
	if d.Metrics == nil {
		return metrics.NoopRecorder{}
	}
	return d.Metrics
}
