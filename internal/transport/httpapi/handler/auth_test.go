package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/bookkeeper/internal/platform/user"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/handler"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/middleware"
)

const testSecret = "test-secret-key-minimum-32-characters-long-for-security"

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	jwtSvc := middleware.NewJWTService(testSecret)
	alice := &user.User{ID: uuid.New(), Username: "alice"}

	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(*MockUserService)
		wantStatus int
	}{
		{
			name: "created",
			body: handler.CredentialsRequest{Username: "alice", Password: "correct-horse"},
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "alice", "correct-horse").Return(alice, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "taken",
			body: handler.CredentialsRequest{Username: "alice", Password: "correct-horse"},
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "alice", "correct-horse").Return(nil, user.ErrUserAlreadyExists)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "short password",
			body: handler.CredentialsRequest{Username: "alice", Password: "short"},
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "alice", "short").Return(nil, user.ErrPasswordTooShort)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing username",
			body:       handler.CredentialsRequest{Password: "correct-horse"},
			setupMock:  func(m *MockUserService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not json",
			body:       "nope",
			setupMock:  func(m *MockUserService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserService)
			tt.setupMock(users)
			h := handler.NewAuthHandler(users, jwtSvc, false)

			rec := httptest.NewRecorder()
			h.Register(rec, newRequest(t, http.MethodPost, "/api/v1/auth/register", uuid.Nil, tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				var resp handler.AuthResponse
				decodeBody(t, rec, &resp)
				assert.Equal(t, "alice", resp.User.Username)

				claims, err := jwtSvc.ValidateToken(resp.Token)
				require.NoError(t, err)
				assert.Equal(t, alice.ID, claims.UserID)

				c := sessionCookie(rec)
				require.NotNil(t, c)
				assert.Equal(t, resp.Token, c.Value)
				assert.True(t, c.HttpOnly)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	jwtSvc := middleware.NewJWTService(testSecret)
	alice := &user.User{ID: uuid.New(), Username: "alice"}

	t.Run("success sets cookie", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Login", mock.Anything, "alice", "correct-horse").Return(alice, nil)
		h := handler.NewAuthHandler(users, jwtSvc, true)

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(t, http.MethodPost, "/api/v1/auth/login", uuid.Nil,
			handler.CredentialsRequest{Username: "alice", Password: "correct-horse"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		c := sessionCookie(rec)
		require.NotNil(t, c)
		assert.True(t, c.Secure)
	})

	t.Run("bad credentials", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Login", mock.Anything, "alice", "wrong-password").Return(nil, user.ErrInvalidPassword)
		h := handler.NewAuthHandler(users, jwtSvc, false)

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(t, http.MethodPost, "/api/v1/auth/login", uuid.Nil,
			handler.CredentialsRequest{Username: "alice", Password: "wrong-password"}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, sessionCookie(rec))
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h := handler.NewAuthHandler(new(MockUserService), middleware.NewJWTService(testSecret), false)

	rec := httptest.NewRecorder()
	h.Logout(rec, newRequest(t, http.MethodPost, "/api/v1/auth/logout", uuid.Nil, nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestAuthHandler_Me(t *testing.T) {
	alice := &user.User{ID: uuid.New(), Username: "alice"}

	tests := []struct {
		name        string
		setupMock   func(*MockUserService)
		wantStatus  int
		wantCleared bool
	}{
		{
			name: "existing owner",
			setupMock: func(m *MockUserService) {
				m.On("GetByID", mock.Anything, alice.ID).Return(alice, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "deleted owner",
			setupMock: func(m *MockUserService) {
				m.On("GetByID", mock.Anything, alice.ID).Return(nil, user.ErrUserNotFound)
			},
			wantStatus:  http.StatusUnauthorized,
			wantCleared: true,
		},
		{
			name: "storage error",
			setupMock: func(m *MockUserService) {
				m.On("GetByID", mock.Anything, alice.ID).Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserService)
			tt.setupMock(users)
			h := handler.NewAuthHandler(users, middleware.NewJWTService(testSecret), false)

			rec := httptest.NewRecorder()
			h.Me(rec, newRequest(t, http.MethodGet, "/api/v1/auth/me", alice.ID, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var info handler.UserInfo
				decodeBody(t, rec, &info)
				assert.Equal(t, alice.ID.String(), info.ID)
				assert.Equal(t, "alice", info.Username)
			}
			if tt.wantCleared {
				c := sessionCookie(rec)
				require.NotNil(t, c)
				assert.Negative(t, c.MaxAge)
			}
			users.AssertExpectations(t)
		})
	}

	t.Run("no owner in context", func(t *testing.T) {
		h := handler.NewAuthHandler(new(MockUserService), middleware.NewJWTService(testSecret), false)
		rec := httptest.NewRecorder()
		h.Me(rec, newRequest(t, http.MethodGet, "/api/v1/auth/me", uuid.Nil, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
