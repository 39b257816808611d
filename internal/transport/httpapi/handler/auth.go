package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/internal/platform/user"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/middleware"
)

// UserServiceInterface defines the interface for user operations needed by AuthHandler
type UserServiceInterface interface {
	Register(ctx context.Context, username, password string) (*user.User, error)
	Login(ctx context.Context, username, password string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// JWTServiceInterface defines the interface for JWT operations
type JWTServiceInterface interface {
	GenerateToken(userID uuid.UUID, username string) (string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userService  UserServiceInterface
	jwtService   JWTServiceInterface
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the session
// cookie Secure and should be set whenever the API is served over TLS.
func NewAuthHandler(userService UserServiceInterface, jwtService JWTServiceInterface, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		jwtService:   jwtService,
		secureCookie: secureCookie,
	}
}

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo represents user information (without sensitive data)
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (req *CredentialsRequest) check() string {
	if req.Username == "" {
		return "username is required"
	}
	if req.Password == "" {
		return "password is required"
	}
	return ""
}

// Register handles user registration (POST /auth/register)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.check(); msg != "" {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	registered, err := h.userService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserAlreadyExists):
			respondWithError(w, http.StatusConflict, "username is already taken")
		case errors.Is(err, user.ErrPasswordTooShort), errors.Is(err, user.ErrInvalidUsername):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	h.startSession(w, registered, http.StatusCreated)
}

// Login handles user login (POST /auth/login)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.check(); msg != "" {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	authenticated, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidPassword) {
			respondWithError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.startSession(w, authenticated, http.StatusOK)
}

// Logout clears the session cookie (POST /auth/logout). Tokens are stateless,
// so a bearer token stays valid until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user (GET /auth/me). A valid token whose
// owner no longer exists is answered with 401 and a cleared cookie.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			http.SetCookie(w, h.sessionCookie("", -1))
			respondWithError(w, http.StatusUnauthorized, "user no longer exists")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	respondWithJSON(w, http.StatusOK, UserInfo{
		ID:       u.ID.String(),
		Username: u.Username,
	})
}

func (h *AuthHandler) startSession(w http.ResponseWriter, u *user.User, status int) {
	token, err := h.jwtService.GenerateToken(u.ID, u.Username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(middleware.TokenTTL.Seconds())))
	respondWithJSON(w, status, AuthResponse{
		Token: token,
		User: &UserInfo{
			ID:       u.ID.String(),
			Username: u.Username,
		},
	})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
