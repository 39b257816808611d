package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/bookkeeper/internal/platform/account"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/handler"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/middleware"
	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

// ownerAccounts answers List with one account per owner it has seen
type ownerAccounts struct {
	seen []uuid.UUID
}

func (s *ownerAccounts) Create(ctx context.Context, a *account.Account) (*account.Account, error) {
	return a, nil
}

func (s *ownerAccounts) List(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	s.seen = append(s.seen, ownerID)
	return []*account.Account{{ID: uuid.New(), OwnerID: ownerID, Code: "1000", Name: "Cash", Type: account.TypeAsset}}, nil
}

func newTestRouter(accounts *ownerAccounts) (http.Handler, *middleware.JWTService) {
	jwtSvc := middleware.NewJWTService("test-secret-key-minimum-32-characters-long-for-security")
	r := httpapi.NewRouter(httpapi.Config{
		Logger:         logger.NewNop(),
		AllowedOrigins: []string{"http://localhost:5173"},
		AccountHandler: handler.NewAccountHandler(accounts),
		JWTMiddleware:  middleware.JWTMiddleware(jwtSvc),
		RateLimit:      func(next http.Handler) http.Handler { return next },
	})
	return r, jwtSvc
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(&ownerAccounts{})

	for _, path := range []string{"/health", "/health/live"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	accounts := &ownerAccounts{}
	r, jwtSvc := newTestRouter(accounts)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, accounts.seen)

	ownerID := uuid.New()
	token, err := jwtSvc.GenerateToken(ownerID, "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{ownerID}, accounts.seen)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestRouter_UnmountedHandlersAreNotFound(t *testing.T) {
	r, jwtSvc := newTestRouter(&ownerAccounts{})
	token, err := jwtSvc.GenerateToken(uuid.New(), "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		want       string
	}{
		{"peer address by default", false, "192.0.2.1:1234"},
		{"forwarded address behind proxy", true, "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r := httpapi.NewRouter(httpapi.Config{
				Logger:     logger.NewNop(),
				TrustProxy: tt.trustProxy,
				RateLimit: func(next http.Handler) http.Handler {
					return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
						seen = r.RemoteAddr
						next.ServeHTTP(w, r)
					})
				},
			})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			r.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, seen)
		})
	}
}
