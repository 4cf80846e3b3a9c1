package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/usecase"
)

type verifyServiceStub struct {
	verifyFn func(ctx context.Context) (*usecase.VerificationResult, error)
}

func (s *verifyServiceStub) VerifyChain(ctx context.Context) (*usecase.VerificationResult, error) {
	return s.verifyFn(ctx)
}

func TestVerifyHandler_ValidChain(t *testing.T) {
	audit := &auditRecorderStub{}
	h := NewVerifyHandler(&verifyServiceStub{
		verifyFn: func(ctx context.Context) (*usecase.VerificationResult, error) {
			return &usecase.VerificationResult{
				Valid:        true,
				TotalEntries: 6,
				CheckedAt:    time.Now().UTC(),
			}, nil
		},
	}, audit)

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp usecase.VerificationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Valid || resp.TotalEntries != 6 {
		t.Fatalf("unexpected result: %+v", resp)
	}

	if len(audit.records) != 1 || audit.records[0].Action != domain.AuditActionChainVerify {
		t.Fatalf("expected verify audit record, got %+v", audit.records)
	}
}

func TestVerifyHandler_BrokenChainIsStill200(t *testing.T) {
	h := NewVerifyHandler(&verifyServiceStub{
		verifyFn: func(ctx context.Context) (*usecase.VerificationResult, error) {
			return &usecase.VerificationResult{
				Valid:        false,
				TotalEntries: 4,
				Violations: []usecase.Violation{
					{Kind: usecase.ViolationHashMismatch, EntryID: "e3", Position: 2},
				},
			}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("broken chain is a finding, not an error; got %d", rec.Code)
	}

	var resp usecase.VerificationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Valid || len(resp.Violations) != 1 {
		t.Fatalf("unexpected result: %+v", resp)
	}
}

func TestVerifyHandler_WalkFailure(t *testing.T) {
	h := NewVerifyHandler(&verifyServiceStub{
		verifyFn: func(ctx context.Context) (*usecase.VerificationResult, error) {
			return nil, errors.New("store down")
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
