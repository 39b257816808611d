package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/internal/platform/account"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/middleware"
)

// AccountServiceInterface defines the chart of accounts operations used over HTTP
type AccountServiceInterface interface {
	Create(ctx context.Context, a *account.Account) (*account.Account, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error)
}

// AccountHandler handles chart of accounts requests
type AccountHandler struct {
	accounts AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// CreateAccountRequest is the body of POST /accounts
type CreateAccountRequest struct {
	Code string       `json:"code"`
	Name string       `json:"name"`
	Type account.Type `json:"type"`
}

// AccountResponse represents one account
type AccountResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// AccountsListResponse represents the response for listing accounts
type AccountsListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// CreateAccount handles POST /accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.accounts.Create(r.Context(), &account.Account{
		OwnerID: ownerID,
		Code:    req.Code,
		Name:    req.Name,
		Type:    req.Type,
	})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrDuplicateCode):
			respondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, account.ErrMissingCode),
			errors.Is(err, account.ErrNonNumericCode),
			errors.Is(err, account.ErrCodeTooLong),
			errors.Is(err, account.ErrMissingName),
			errors.Is(err, account.ErrInvalidName),
			errors.Is(err, account.ErrNameTooLong),
			errors.Is(err, account.ErrInvalidType):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to create account")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, toAccountResponse(created))
}

// GetAccounts handles GET /accounts
func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	accounts, err := h.accounts.List(r.Context(), ownerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	respondWithJSON(w, http.StatusOK, toAccountsList(accounts))
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID.String(),
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func toAccountsList(accounts []*account.Account) AccountsListResponse {
	resp := AccountsListResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, toAccountResponse(a))
	}
	return resp
}
