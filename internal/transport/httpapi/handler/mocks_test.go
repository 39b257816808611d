package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/bookkeeper/internal/ledger"
	"github.com/kislikjeka/bookkeeper/internal/platform/account"
	"github.com/kislikjeka/bookkeeper/internal/platform/party"
	"github.com/kislikjeka/bookkeeper/internal/platform/user"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/middleware"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, password string) (*user.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (*user.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Create(ctx context.Context, a *account.Account) (*account.Account, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) List(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountService) BeginDocumentSession(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

type MockPartyService struct {
	mock.Mock
}

func (m *MockPartyService) Create(ctx context.Context, p *party.Party) (*party.Party, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Party), args.Error(1)
}

func (m *MockPartyService) List(ctx context.Context, ownerID uuid.UUID, kind party.Kind) ([]*party.Party, error) {
	args := m.Called(ctx, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*party.Party), args.Error(1)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) SubmitDocument(ctx context.Context, ownerID uuid.UUID, req ledger.SubmitRequest) ledger.Result {
	args := m.Called(ctx, ownerID, req)
	return args.Get(0).(ledger.Result)
}

func (m *MockDocumentService) GetDocument(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Document, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Document), args.Error(1)
}

func (m *MockDocumentService) ListDocuments(ctx context.Context, ownerID uuid.UUID, filters ledger.DocumentFilters) ([]*ledger.Document, error) {
	args := m.Called(ctx, ownerID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Document), args.Error(1)
}

// newRequest builds a request as the JWT middleware would hand it over
func newRequest(t *testing.T, method, target string, ownerID uuid.UUID, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if ownerID != uuid.Nil {
		req = req.WithContext(middleware.WithOwner(req.Context(), ownerID, "alice"))
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
