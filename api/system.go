package api

import (
	"fmt"
	"net/http"
	"time"
)

var startTime = time.Now()

type SystemHandler struct{}

// HealthHandler reports liveness and process uptime in seconds.
func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"OK","uptime":%.0f}`+"\n", time.Since(startTime).Seconds())
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","buildTime":"%s"}`+"\n", version, buildTime)
	}
}
