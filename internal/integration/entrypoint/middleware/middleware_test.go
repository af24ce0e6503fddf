package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type stubTokenService struct {
	userID uuid.UUID
}

func (s stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	switch token {
	case "good":
		return &adapter.TokenClaims{UserID: s.userID}, nil
	case "stale":
		return nil, fmt.Errorf("%w: %w", domainerror.ErrExpiredToken, domainerror.ErrInvalidToken)
	default:
		return nil, domainerror.ErrInvalidToken
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	userID := uuid.New()
	auth := NewAuthMiddleware(stubTokenService{userID: userID})

	router := gin.New()
	router.GET("/me", auth.Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   domainerror.AuthErrorCode
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "expired token", header: "Bearer stale", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeExpiredToken},
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "scheme is case insensitive", header: "bearer good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK {
				if w.Body.String() != userID.String() {
					t.Errorf("expected user id in context, got %q", w.Body.String())
				}
				return
			}
			var body struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != string(tt.wantCode) {
				t.Errorf("expected code %s, got %s", tt.wantCode, body.Code)
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	router := gin.New()
	router.GET("/unguarded", func(c *gin.Context) {
		if _, ok := RequireUser(c); !ok {
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unguarded", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without Authenticate, got %d", w.Code)
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiter(client, 2, time.Minute)
	router := gin.New()
	router.GET("/ping", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("allows up to the limit", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if code := do(); code != http.StatusNoContent {
				t.Fatalf("request %d: expected 204, got %d", i+1, code)
			}
		}
	})

	t.Run("rejects over the limit", func(t *testing.T) {
		if code := do(); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", code)
		}
	})

	t.Run("window expires", func(t *testing.T) {
		mr.FastForward(time.Minute + time.Second)
		if code := do(); code != http.StatusNoContent {
			t.Fatalf("expected 204 after window, got %d", code)
		}
	})

	t.Run("fails open without redis", func(t *testing.T) {
		mr.Close()
		if code := do(); code != http.StatusNoContent {
			t.Fatalf("expected 204 when redis is down, got %d", code)
		}
	})
}

