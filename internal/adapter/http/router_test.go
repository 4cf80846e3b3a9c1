package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/chainledger/chainledger/internal/adapter/http/handler"
	apimiddleware "github.com/chainledger/chainledger/internal/adapter/http/middleware"
	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"debit_account_id":"GL001","credit_account_id":"GL002","entity_id":"entity-1","amount":"100.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/transactions/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/ledger/transactions/",
		"POST /api/v1/ledger/transactions/{id}/reverse",
		"GET /api/v1/ledger/transactions/{id}/entries",
		"GET /api/v1/entries",
		"GET /api/v1/accounts/{id}/balance",
		"GET /api/v1/verify",
		"GET /api/v1/audit",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	ledgerHandler := handler.NewLedgerHandler(&stubLedgerService{}, nil, nil)
	entryHandler := handler.NewEntryHandler(&stubEntryService{}, &stubBalanceService{})
	verifyHandler := handler.NewVerifyHandler(&stubVerifyService{}, nil)
	auditHandler := handler.NewAuditHandler(&stubAuditService{})

	cfg := RouterConfig{
		LedgerHandler: ledgerHandler,
		EntryHandler:  entryHandler,
		VerifyHandler: verifyHandler,
		AuditHandler:  auditHandler,
		HealthHandler: handler.NewHealthHandler(nil, nil),
		Logger:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubLedgerService struct{}

func (stubLedgerService) CreateDoubleEntry(ctx context.Context, input usecase.CreateDoubleEntryInput) ([]*domain.LedgerEntry, error) {
	return []*domain.LedgerEntry{{TransactionID: "TXN-1"}}, nil
}

func (stubLedgerService) ReverseTransaction(ctx context.Context, input usecase.ReverseTransactionInput) ([]*domain.LedgerEntry, error) {
	return []*domain.LedgerEntry{{TransactionID: input.TransactionID}}, nil
}

func (stubLedgerService) GetTransactionEntries(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	return []*domain.LedgerEntry{}, nil
}

type stubEntryService struct{}

func (stubEntryService) ListEntries(ctx context.Context, filter domain.EntryFilter) (*usecase.ListEntriesResult, error) {
	return &usecase.ListEntriesResult{}, nil
}

type stubBalanceService struct{}

func (stubBalanceService) AccountBalance(ctx context.Context, input usecase.AccountBalanceInput) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubVerifyService struct{}

func (stubVerifyService) VerifyChain(ctx context.Context) (*usecase.VerificationResult, error) {
	return &usecase.VerificationResult{Valid: true}, nil
}

type stubAuditService struct{}

func (stubAuditService) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	return []*domain.AuditLog{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
