package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryEndpointCreateAndMatch(t *testing.T) {
	mux := NewMux()

	createBody, _ := json.Marshal(queryBody{Create: []string{"(a:A)"}})
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(createBody))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("create request status = %d, want %d; body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}

	matchBody, _ := json.Marshal(queryBody{Match: []string{"(x:A)"}, Return: []string{"x"}})
	req2 := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(matchBody))
	rec2 := httptest.NewRecorder()
	mux.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusOK {
		t.Fatalf("match request status = %d, want %d; body=%s", rec2.Code, http.StatusOK, rec2.Body.String())
	}

	var rows []map[string]string
	if err := json.Unmarshal(rec2.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %v, want exactly one row", rows)
	}
	if _, ok := rows[0]["x"]; !ok {
		t.Error("response row should include variable x")
	}
}

func TestQueryEndpointMethodNotAllowed(t *testing.T) {
	mux := NewMux()
	req := httptest.NewRequest(http.MethodGet, "/query", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestQueryEndpointInvalidJSON(t *testing.T) {
	mux := NewMux()
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestQueryEndpointInvalidPattern(t *testing.T) {
	mux := NewMux()
	body, _ := json.Marshal(queryBody{Create: []string{"(a"}})
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestCorsMiddlewareAllowedOrigin(t *testing.T) {
	mux := NewMux()
	req := httptest.NewRequest(http.MethodOptions, "/query", nil)
	req.Header.Set("Origin", allowedOrigins[0])
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != allowedOrigins[0] {
		t.Error("CORS header should echo the allowed origin")
	}
}

func TestCorsMiddlewareDisallowedOrigin(t *testing.T) {
	mux := NewMux()
	req := httptest.NewRequest(http.MethodOptions, "/query", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("CORS header should not be set for a disallowed origin")
	}
}
