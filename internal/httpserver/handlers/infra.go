package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/session"
)

type componentStatus struct {
	OK           bool   `json:"ok"`
	TopicsLoaded *int   `json:"topics_loaded,omitempty"`
	Source       string `json:"source,omitempty"`
	LastReload   string `json:"last_reload,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Sessions     *int   `json:"sessions,omitempty"`
	Impact       string `json:"impact,omitempty"`
	Error        string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// sessionCounter is implemented by both session stores.
type sessionCounter interface {
	CountSessions(ctx context.Context) (int, error)
}

// memoryCounter adapts MemoryStore.Count.
type memoryCounter struct{ *session.MemoryStore }

func (m memoryCounter) CountSessions(context.Context) (int, error) { return m.Count(), nil }

// Infra reports the state of the content index, the session store and Redis.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		components := map[string]componentStatus{
			"content":  checkContent(d),
			"sessions": checkSessions(ctx, d),
			"redis":    checkRedis(ctx, d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if c, ok := components["content"]; ok && !c.OK {
		return "critical"
	}
	for _, name := range []string{"sessions", "redis"} {
		if c, ok := components[name]; ok && !c.OK && c.Mode != "disabled" {
			return "degraded"
		}
	}
	return "optimal"
}

func checkContent(d deps.Deps) componentStatus {
	topics := d.Index.TopicCount()
	lastReload := "never"
	if t := d.Index.GetLastReload(); !t.IsZero() {
		lastReload = t.Format(time.RFC3339)
	}
	source := ""
	if ds := d.Index.Dataset(); ds != nil {
		source = ds.Source
	}
	return componentStatus{
		OK:           d.Index.Ready(),
		TopicsLoaded: &topics,
		Source:       source,
		LastReload:   lastReload,
	}
}

func checkSessions(ctx context.Context, d deps.Deps) componentStatus {
	status := componentStatus{Mode: d.SessionStoreKind}

	var counter sessionCounter
	switch s := d.Sessions.(type) {
	case *session.MemoryStore:
		counter = memoryCounter{s}
	case sessionCounter:
		counter = s
	case nil:
		status.Error = "no session store"
		status.Impact = "navigation-state-not-persisted"
		return status
	}

	status.OK = true
	if counter != nil {
		n, err := counter.CountSessions(ctx)
		if err != nil {
			status.OK = false
			status.Impact = "navigation-state-not-persisted"
			status.Error = err.Error()
			return status
		}
		status.Sessions = &n
	}
	return status
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "sessions-and-views-in-memory",
		}
	}

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "sessions-reset-to-default",
			Error:  err.Error(),
		}
	}

	return componentStatus{OK: true, Mode: "optimal"}
}
