// Package server implements the one-route JSON HTTP API shared by
// cmd/implica-server and cmd/implica-cli's serve subcommand. Grounded on
// the teacher's cmd/server/main.go: the same CORS-middleware shape,
// writeJSON/writeError helpers, and a single mutating POST endpoint — here
// adapted from "run one DSL line against a loaded probabilistic graph" to
// "run a text query against a single shared in-memory graph".
package server

import (
	"encoding/json"
	"net/http"

	"github.com/ritamzico/implica"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// queryBody is the request shape for POST /query: an ordered list of steps
// run as a single Query, then projected over return_.
type queryBody struct {
	Create []string `json:"create"`
	Match  []string `json:"match"`
	Remove []string `json:"remove"`
	Return []string `json:"return"`
}

// NewMux builds the server's route table over a single process-lifetime
// Graph. The graph has no persistence (spec.md's explicit non-goal) — it
// lives only as long as the serving process.
func NewMux() http.Handler {
	g := implica.New()
	mux := http.NewServeMux()

	mux.HandleFunc("/query", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body queryBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		q := g.Query()
		for _, pattern := range body.Create {
			if _, err := q.Create(pattern); err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
		}
		for _, pattern := range body.Match {
			if _, err := q.Match(pattern); err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
		}
		if len(body.Remove) > 0 {
			q.Remove(body.Remove...)
		}

		rows, err := q.Return(r.Context(), body.Return...)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		out := make([]map[string]string, len(rows))
		for i, row := range rows {
			rendered := make(map[string]string, len(row))
			for k, v := range row {
				rendered[k] = v.String()
			}
			out[i] = rendered
		}
		writeJSON(w, http.StatusOK, out)
	})

	return corsMiddleware(mux)
}
