package gateway_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yemubit/zeroclaw/gateway"
)

func TestAuthorized(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		query  string
		want   bool
	}{
		{name: "empty token allows all", token: "", want: true},
		{name: "valid bearer", token: token, header: "Bearer " + token, want: true},
		{name: "invalid bearer", token: token, header: "Bearer wrong", want: false},
		{name: "bearer scheme required", token: token, header: token, want: false},
		{name: "valid query", token: token, query: "?token=" + token, want: true},
		{name: "invalid query", token: token, query: "?token=wrong", want: false},
		{name: "no credentials", token: token, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws"+tt.query, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, gateway.Authorized(tt.token, r))
		})
	}
}

func TestRequireToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := gateway.RequireToken(token, next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
