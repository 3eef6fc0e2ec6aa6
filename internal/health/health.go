// Package health serves the liveness/readiness endpoints.
package health

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/calummace/rfband/pkg/band"
)

func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// Readiness reports the compiled table the service is answering from.
// The model is built before the listener starts, so readiness here
// means "the table is complete", not "still loading".
func Readiness(m *band.Model) http.HandlerFunc {
	type status struct {
		Status      string `json:"status"`
		Entries     int    `json:"entries"`
		Fingerprint string `json:"fingerprint"`
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status{
			Status:      "ready",
			Entries:     m.Len(),
			Fingerprint: fmt.Sprintf("%016x", m.Fingerprint()),
		})
	}
}
