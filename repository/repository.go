package repository

import (
	"context"
	"errors"

	"loan-decision/domain"
)

// ErrNotFound is returned when a customer has no profile on file.
var ErrNotFound = errors.New("not found")

// ProfileRepository supplies the customer data an application is decided on.
type ProfileRepository interface {
	GetProfile(ctx context.Context, customerID string) (domain.CustomerProfile, error)
	// GetFinancials returns an empty snapshot, not an error, when the
	// customer has no financial record.
	GetFinancials(ctx context.Context, customerID string) (domain.FinancialSnapshot, error)
}

// DecisionRepository keeps the audit trail of evaluated applications.
type DecisionRepository interface {
	Save(ctx context.Context, record domain.AuditRecord) error
	List(ctx context.Context, customerID string) ([]domain.AuditRecord, error)
}
