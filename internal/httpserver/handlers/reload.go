package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/logger"
	"github.com/MrSnakeDoc/javadocs/internal/scheduler"
	"github.com/MrSnakeDoc/javadocs/internal/utils"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload asks the content reloader for an immediate reload. It answers 202
// when queued and 429 when a reload is already pending.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)

		if d.ReloadTrigger == nil || !scheduler.Trigger(d.ReloadTrigger) {
			d.Logger.Warn("content reload already pending", logger.String("remote_ip", ip))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{
				Message: "reload already in progress, please wait",
			})
			return
		}

		d.Logger.Info("manual content reload triggered", logger.String("remote_ip", ip))
		writeJSON(w, http.StatusAccepted, reloadResponse{
			Triggered: true,
			Message:   "reload triggered",
		})
	}
}
