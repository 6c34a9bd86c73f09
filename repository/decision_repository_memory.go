package repository

import (
	"context"
	"sync"

	"loan-decision/domain"
)

// DecisionRepositoryMemory is an in-memory implementation of DecisionRepository.
type DecisionRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.AuditRecord
}

// NewDecisionRepositoryMemory creates a new in-memory decision repository.
func NewDecisionRepositoryMemory() *DecisionRepositoryMemory {
	return &DecisionRepositoryMemory{
		data: []domain.AuditRecord{},
	}
}

// Save stores the audit record in memory.
func (r *DecisionRepositoryMemory) Save(_ context.Context, record domain.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return nil
}

// List returns a customer's records, most recent first.
func (r *DecisionRepositoryMemory) List(_ context.Context, customerID string) ([]domain.AuditRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := []domain.AuditRecord{}
	for i := len(r.data) - 1; i >= 0; i-- {
		if r.data[i].CustomerID == customerID {
			records = append(records, r.data[i])
		}
	}
	return records, nil
}
