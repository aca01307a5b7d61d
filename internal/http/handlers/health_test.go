package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestReadyz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		ping     func(context.Context) error
		draining bool
		want     int
	}{
		{"ready", func(context.Context) error { return nil }, false, http.StatusOK},
		{"no probe", nil, false, http.StatusOK},
		{"store down", func(context.Context) error { return errors.New("dial tcp: refused") }, false, http.StatusServiceUnavailable},
		{"draining", func(context.Context) error { return nil }, true, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draining := tt.draining
			h := NewHealthHandler(tt.ping, func() bool { return draining })

			r := gin.New()
			r.GET("/readyz", h.Readyz)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tt.want {
				t.Fatalf("got %d want %d body=%s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
