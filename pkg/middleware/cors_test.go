package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serveCORS(cfg CORSConfig, method, origin string, preflight bool) *httptest.ResponseRecorder {
	handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/api/brands", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORS_Wildcard(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"*"}}

	rec := serveCORS(cfg, http.MethodGet, "https://any.example", false)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveCORS(cfg, http.MethodGet, "", false)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowList(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"https://example.com", " https://admin.example.com"}}

	tests := []struct {
		origin string
		want   string
	}{
		{"https://example.com", "https://example.com"},
		{"https://admin.example.com", "https://admin.example.com"},
		{"https://evil.com", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			rec := serveCORS(cfg, http.MethodGet, tt.origin, false)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.want != "" {
				assert.Equal(t, "Origin", rec.Header().Get("Vary"))
			}
		})
	}
}

func TestCORS_WildcardWithCredentialsEchoesOrigin(t *testing.T) {
	rec := serveCORS(CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}, http.MethodGet, "https://app.example", false)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Preflight(t *testing.T) {
	rec := serveCORS(DefaultCORSConfig(), http.MethodOptions, "https://app.example", true)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept, Content-Type, X-Correlation-ID", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_PlainOptionsReachesHandler(t *testing.T) {
	rec := serveCORS(DefaultCORSConfig(), http.MethodOptions, "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_ExposesLocation(t *testing.T) {
	rec := serveCORS(DefaultCORSConfig(), http.MethodPost, "https://app.example", false)
	assert.Equal(t, "X-Correlation-ID, Location", rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_EmptyFieldsTakeDefaults(t *testing.T) {
	rec := serveCORS(CORSConfig{MaxAge: 60}, http.MethodGet, "https://app.example", false)

	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "60", rec.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
