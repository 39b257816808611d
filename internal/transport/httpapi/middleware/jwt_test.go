package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

const testSecret = "test-secret-key-minimum-32-characters-long-for-security"

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testSecret)
	userID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "alice")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, "bookkeeper", claims.Issuer)
		assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "alice")
		require.NoError(t, err)

		_, err = NewJWTService("another-secret-key-minimum-32-characters-long").ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewJWTService(testSecret)
		old.now = func() time.Time { return time.Now().Add(-2 * TokenTTL) }

		token, err := old.GenerateToken(userID, "alice")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("invalid.token.here")
		assert.Error(t, err)
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		claims := &Claims{
			UserID:           userID,
			Username:         "alice",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "bookkeeper"},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestJWTMiddleware(t *testing.T) {
	svc := NewJWTService(testSecret)
	userID := uuid.New()
	token, err := svc.GenerateToken(userID, "alice")
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotName string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		gotName, _ = GetUsernameFromContext(r.Context())
		assert.Equal(t, userID.String(), r.Context().Value(logger.OwnerIDKey))
		w.WriteHeader(http.StatusNoContent)
	})
	h := JWTMiddleware(svc)(next)

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
	}{
		{
			name:       "bearer header",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "session cookie",
			setup:      func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token}) },
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "no credentials",
			setup:      func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Token "+token) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "tampered token",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token+"x") },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotName = uuid.Nil, ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, userID, gotID)
				assert.Equal(t, "alice", gotName)
			} else {
				assert.Equal(t, uuid.Nil, gotID)
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}
