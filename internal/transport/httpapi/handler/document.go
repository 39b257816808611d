package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/internal/ledger"
	"github.com/kislikjeka/bookkeeper/internal/platform/account"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/middleware"
	"github.com/kislikjeka/bookkeeper/pkg/money"
	"github.com/kislikjeka/bookkeeper/pkg/validate"
)

// DocumentServiceInterface defines the document operations used over HTTP
type DocumentServiceInterface interface {
	SubmitDocument(ctx context.Context, ownerID uuid.UUID, req ledger.SubmitRequest) ledger.Result
	GetDocument(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Document, error)
	ListDocuments(ctx context.Context, ownerID uuid.UUID, filters ledger.DocumentFilters) ([]*ledger.Document, error)
}

// DocumentSessionStarter refreshes the account list a document form is built from
type DocumentSessionStarter interface {
	BeginDocumentSession(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error)
}

// DocumentHandler handles document submission and reads
type DocumentHandler struct {
	documents DocumentServiceInterface
	sessions  DocumentSessionStarter
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents DocumentServiceInterface, sessions DocumentSessionStarter) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		sessions:  sessions,
	}
}

// DocumentResponse represents a document header, with lines on single reads
type DocumentResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	TypeLabel  string         `json:"type_label"`
	CustomerID *string        `json:"customer_id,omitempty"`
	VendorID   *string        `json:"vendor_id,omitempty"`
	IsPosted   bool           `json:"is_posted"`
	CreatedAt  string         `json:"created_at"`
	Lines      []LineResponse `json:"lines,omitempty"`
}

// LineResponse represents one general ledger line. Amounts are decimal strings.
type LineResponse struct {
	LineNo      int     `json:"line_no"`
	AccountCode string  `json:"account_code"`
	AccountName string  `json:"account_name"`
	Date        string  `json:"date"`
	Debit       *string `json:"debit,omitempty"`
	Credit      *string `json:"credit,omitempty"`
	Description string  `json:"description"`
}

// DocumentsListResponse represents the response for listing documents
type DocumentsListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// BeginSession handles POST /documents/session
func (h *DocumentHandler) BeginSession(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	accounts, err := h.sessions.BeginDocumentSession(r.Context(), ownerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load accounts")
		return
	}

	respondWithJSON(w, http.StatusOK, toAccountsList(accounts))
}

// SubmitDocument handles POST /documents. The body is the submission result
// for every outcome.
func (h *DocumentHandler) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ledger.SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.documents.SubmitDocument(r.Context(), ownerID, req)
	respondWithJSON(w, resultStatus(result), result)
}

func resultStatus(res ledger.Result) int {
	switch {
	case res.Status == ledger.StatusPosted:
		return http.StatusCreated
	case res.Kind == ledger.KindDocumentAlreadyExists:
		return http.StatusConflict
	case res.Status == ledger.StatusRejected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// GetDocuments handles GET /documents?type=JE&limit=50&offset=0
func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	var filters ledger.DocumentFilters
	if t := q.Get("type"); t != "" {
		dt := ledger.DocumentType(t)
		filters.Type = &dt
	}
	var err error
	if filters.Limit, err = intParam(q.Get("limit")); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if filters.Offset, err = intParam(q.Get("offset")); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	docs, err := h.documents.ListDocuments(r.Context(), ownerID, filters)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidDocumentType) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	resp := DocumentsListResponse{
		Documents: make([]DocumentResponse, 0, len(docs)),
	}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, toDocumentResponse(d))
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// GetDocument handles GET /documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	doc, err := h.documents.GetDocument(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, ledger.ErrDocumentNotFound) {
			respondWithError(w, http.StatusNotFound, "document not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to get document")
		return
	}

	respondWithJSON(w, http.StatusOK, toDocumentResponse(doc))
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("must be a non-negative integer")
	}
	return n, nil
}

func toDocumentResponse(d *ledger.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:        d.ID.String(),
		Name:      d.Name,
		Type:      string(d.Type),
		TypeLabel: d.Type.Label(),
		IsPosted:  d.IsPosted,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
	if d.CustomerID != nil {
		s := d.CustomerID.String()
		resp.CustomerID = &s
	}
	if d.VendorID != nil {
		s := d.VendorID.String()
		resp.VendorID = &s
	}
	for _, l := range d.Lines {
		resp.Lines = append(resp.Lines, LineResponse{
			LineNo:      l.LineNo,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Date:        l.LineDate.Format(validate.DateLayout),
			Debit:       money.FormatPtr(l.Debit),
			Credit:      money.FormatPtr(l.Credit),
			Description: l.Description,
		})
	}
	return resp
}
