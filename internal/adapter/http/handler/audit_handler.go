package handler

import (
	"context"
	"net/http"

	"github.com/chainledger/chainledger/internal/adapter/http/dto"
	"github.com/chainledger/chainledger/internal/domain"
)

// AuditService lists audit logs.
type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// AuditHandler handles audit trail requests.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List lists audit logs with optional filters.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	startDate, err := parseTimeQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'start_date' format (use RFC3339)", err.Error())
		return
	}

	endDate, err := parseTimeQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'end_date' format (use RFC3339)", err.Error())
		return
	}

	logs, err := h.auditUC.List(r.Context(), domain.AuditFilter{
		UserID:     r.URL.Query().Get("user_id"),
		Action:     r.URL.Query().Get("action"),
		ResourceID: r.URL.Query().Get("resource_id"),
		StartDate:  startDate,
		EndDate:    endDate,
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
