package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool `json:"ready"`
	Topics int  `json:"topics"`
}

// Readyz answers 503 until a dataset has been loaded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := d.Index.Ready()
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: ready, Topics: d.Index.TopicCount()})
	}
}
