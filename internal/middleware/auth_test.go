package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func authedServer(keys map[string]string, seen *string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = GetOwnerFromContext(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
	return APIKeyAuth(keys)(next)
}

func TestAPIKeyAuth(t *testing.T) {
	t.Parallel()

	keys := map[string]string{"user@test.com": "secret-key-1"}

	tests := []struct {
		name      string
		header    string
		wantCode  int
		wantOwner string
	}{
		{"bearer key", "Bearer secret-key-1", http.StatusOK, "user@test.com"},
		{"bare key", "secret-key-1", http.StatusOK, "user@test.com"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong key", "Bearer nope", http.StatusUnauthorized, ""},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var owner string
			srv := authedServer(keys, &owner)

			req := httptest.NewRequest(http.MethodGet, "/api/ai/history", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOwner, owner)
		})
	}
}

func TestAPIKeyAuthExemptPaths(t *testing.T) {
	t.Parallel()

	srv := authedServer(map[string]string{"user@test.com": "k"}, nil)

	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestGetOwnerFromContextDefault(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetOwnerFromContext(req.Context()))
}
