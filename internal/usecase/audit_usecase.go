package usecase

import (
	"context"
	"time"

	"github.com/chainledger/chainledger/internal/domain"
	"github.com/chainledger/chainledger/internal/infrastructure/metrics"
)

// AuditUseCase records write-operation breadcrumbs. Recording happens
// outside the ledger transaction and must never fail the operation it
// describes; the hash chain is the authoritative record.
type AuditUseCase struct {
	auditRepo AuditRepository
	metrics   *metrics.Metrics
}

// NewAuditUseCase creates a new AuditUseCase. metrics may be nil.
func NewAuditUseCase(auditRepo AuditRepository, metrics *metrics.Metrics) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo, metrics: metrics}
}

// RecordInput describes one auditable operation outcome.
type RecordInput struct {
	Detail     domain.JSON
	UserID     string
	Action     domain.AuditAction
	ResourceID string
	RequestID  string
	Err        error
}

// Record persists an audit log row, best effort.
func (uc *AuditUseCase) Record(ctx context.Context, input RecordInput) error {
	log := &domain.AuditLog{
		UserID:       input.UserID,
		Action:       string(input.Action),
		ResourceType: "ledger_transaction",
		ResourceID:   input.ResourceID,
		RequestID:    input.RequestID,
		Detail:       input.Detail,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}

	if input.Err != nil {
		log.Status = string(domain.AuditStatusFailure)
		log.ErrorMessage = input.Err.Error()
	}

	if err := uc.auditRepo.Create(ctx, log); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(log.Action, log.Status).Inc()
	}

	return nil
}

// List returns audit logs matching the filter.
func (uc *AuditUseCase) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.auditRepo.List(ctx, filter)
}
