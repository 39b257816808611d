package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/internal/platform/party"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/middleware"
)

// PartyServiceInterface defines the customer and vendor operations used over HTTP
type PartyServiceInterface interface {
	Create(ctx context.Context, p *party.Party) (*party.Party, error)
	List(ctx context.Context, ownerID uuid.UUID, kind party.Kind) ([]*party.Party, error)
}

// PartyHandler serves both /customers and /vendors
type PartyHandler struct {
	parties PartyServiceInterface
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(parties PartyServiceInterface) *PartyHandler {
	return &PartyHandler{parties: parties}
}

// CreatePartyRequest is the body of POST /customers and POST /vendors
type CreatePartyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// PartyResponse represents one customer or vendor
type PartyResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

// Create returns the POST handler for parties of the given kind
func (h *PartyHandler) Create(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req CreatePartyRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := h.parties.Create(r.Context(), &party.Party{
			OwnerID: ownerID,
			Kind:    kind,
			Name:    req.Name,
			Address: req.Address,
		})
		if err != nil {
			switch {
			case errors.Is(err, party.ErrDuplicateName):
				respondWithError(w, http.StatusConflict, string(kind)+" "+err.Error())
			case errors.Is(err, party.ErrMissingName),
				errors.Is(err, party.ErrInvalidName),
				errors.Is(err, party.ErrNameTooLong),
				errors.Is(err, party.ErrInvalidAddress),
				errors.Is(err, party.ErrAddressTooLong):
				respondWithError(w, http.StatusBadRequest, err.Error())
			default:
				respondWithError(w, http.StatusInternalServerError, "failed to create "+string(kind))
			}
			return
		}

		respondWithJSON(w, http.StatusCreated, toPartyResponse(created))
	}
}

// List returns the GET handler for parties of the given kind. The list is
// keyed by the plural kind, e.g. {"customers": [...]}.
func (h *PartyHandler) List(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		parties, err := h.parties.List(r.Context(), ownerID, kind)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list "+string(kind)+"s")
			return
		}

		items := make([]PartyResponse, 0, len(parties))
		for _, p := range parties {
			items = append(items, toPartyResponse(p))
		}
		respondWithJSON(w, http.StatusOK, map[string][]PartyResponse{string(kind) + "s": items})
	}
}

func toPartyResponse(p *party.Party) PartyResponse {
	return PartyResponse{
		ID:        p.ID.String(),
		Kind:      string(p.Kind),
		Name:      p.Name,
		Address:   p.Address,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
