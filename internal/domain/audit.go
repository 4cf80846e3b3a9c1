package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records who did what to which resource, for traceability.
// Written outside the ledger transaction; the chain itself is the
// authoritative record, audit rows are operational breadcrumbs.
type AuditLog struct {
	ID           string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	RequestID    string
	Detail       JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionTransactionCreate  AuditAction = "transaction.create"
	AuditActionTransactionReverse AuditAction = "transaction.reverse"
	AuditActionChainVerify        AuditAction = "chain.verify"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalDetail converts a domain object to JSON for audit logging
func MarshalDetail(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal detail"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal detail"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}
