package http

import (
	"encoding/json"
	"net/http"
)

// HealthHandler reports liveness for the storefront API.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
