package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeRequest creates a request whose context carries a logger writing to buf,
// the same way withTraceID does.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		status     int
		body       string
		wantStatus float64
		wantSize   float64
	}{
		{"explicit status", http.MethodPost, "/recipes/", http.StatusCreated, `{"id":1}`, 201, 8},
		{"implicit 200", http.MethodGet, "/recipes/?tags=1", 0, "ok", 200, 2},
		{"no body", http.MethodDelete, "/recipes/1/", http.StatusNoContent, "", 204, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})

			rr := httptest.NewRecorder()
			(&Handler{}).withLogging(next).ServeHTTP(rr, makeRequest(tt.method, tt.path, buf))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
			assert.Equal(t, tt.path, entry["uri"])
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.wantStatus, entry["status"])
			assert.Equal(t, tt.wantSize, entry["size"])
			assert.Contains(t, entry, "duration")
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}
