package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-decision/domain"
)

func TestDecisionRepositoryMemory(t *testing.T) {
	repo := NewDecisionRepositoryMemory()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.AuditRecord{ID: "1", CustomerID: "1001"}))
	require.NoError(t, repo.Save(ctx, domain.AuditRecord{ID: "2", CustomerID: "1002"}))
	require.NoError(t, repo.Save(ctx, domain.AuditRecord{ID: "3", CustomerID: "1001"}))

	records, err := repo.List(ctx, "1001")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "3", records[0].ID)
	assert.Equal(t, "1", records[1].ID)

	none, err := repo.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}
