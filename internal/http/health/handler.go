package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Handler returns a liveness probe reporting the running build version.
// It is mounted on the router directly and stays out of the OpenAPI document.
func Handler(version string) http.HandlerFunc {
	body, _ := json.Marshal(Response{Status: "healthy", Version: version})
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(body)
	}
}
