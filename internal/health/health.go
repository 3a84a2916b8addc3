// Package health serves the liveness envelope shared by both services.
package health

import (
	"encoding/json"
	"net/http"
)

// Response is the wire shape of the health endpoint. Environment is
// null when the deployment did not set one.
type Response struct {
	Healthy     bool    `json:"Healthy"`
	Environment *string `json:"Environment"`
}

// Handler reports the process as healthy along with its deployment
// environment.
func Handler(environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := Response{Healthy: true}
		if environment != "" {
			resp.Environment = &environment
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
