package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims CustomClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func accessClaims(userID uuid.UUID, issuer string, expires time.Time) CustomClaims {
	return CustomClaims{
		UserID:    userID.String(),
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   userID.String(),
		},
	}
}

func TestTokenService_ValidateAccessToken(t *testing.T) {
	svc := NewTokenService(testSecret, "finance-tracker")
	userID := uuid.New()
	future := time.Now().Add(time.Hour)

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), accessClaims(userID, "finance-tracker", future))

		claims, err := svc.ValidateAccessToken(context.Background(), token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("expected user %s, got %s", userID, claims.UserID)
		}
		if !claims.ExpiresAt.Equal(future.Truncate(time.Second)) {
			t.Errorf("expected expiry %v, got %v", future.Truncate(time.Second), claims.ExpiresAt)
		}
	})

	t.Run("expired token is reported as expired", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), accessClaims(userID, "finance-tracker", time.Now().Add(-time.Minute)))

		_, err := svc.ValidateAccessToken(context.Background(), token)
		if !errors.Is(err, domainerror.ErrExpiredToken) {
			t.Fatalf("expected ErrExpiredToken, got %v", err)
		}
	})

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "expired",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), accessClaims(userID, "finance-tracker", time.Now().Add(-time.Minute)))
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte("other"), accessClaims(userID, "finance-tracker", future))
			},
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), accessClaims(userID, "someone-else", future))
			},
		},
		{
			name: "refresh token",
			token: func(t *testing.T) string {
				claims := accessClaims(userID, "finance-tracker", future)
				claims.TokenType = "refresh"
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
			},
		},
		{
			name: "bad user id",
			token: func(t *testing.T) string {
				claims := accessClaims(userID, "finance-tracker", future)
				claims.UserID = "not-a-uuid"
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
			},
		},
		{
			name: "other algorithm",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS512, []byte(testSecret), accessClaims(userID, "finance-tracker", future))
			},
		},
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not.a.jwt" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(context.Background(), tt.token(t))
			if !errors.Is(err, domainerror.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
