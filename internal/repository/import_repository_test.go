package repository

import (
	"fmt"
	"testing"
	"time"

	"salesreport-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(code, importType string) *models.ImportSession {
	now := time.Now()
	return &models.ImportSession{
		SessionCode: code,
		UserID:      1,
		ImportType:  importType,
		Filename:    "data.csv",
		FilePath:    "/tmp/data.csv",
		Status:      "queued",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestImportRepository_SessionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewImportRepository(db)

	session := newTestSession("IMP-abc123", models.ImportTypeSales)
	require.NoError(t, repo.CreateSession(session))
	assert.NotZero(t, session.ID)

	byID, err := repo.GetSessionByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "IMP-abc123", byID.SessionCode)
	assert.Equal(t, "queued", byID.Status)

	byCode, err := repo.GetSessionByCode("IMP-abc123")
	require.NoError(t, err)
	assert.Equal(t, session.ID, byCode.ID)
}

func TestImportRepository_UpdateSession(t *testing.T) {
	db := newTestDB(t)
	repo := NewImportRepository(db)

	session := newTestSession("IMP-abc123", models.ImportTypeSales)
	require.NoError(t, repo.CreateSession(session))

	session.Status = "completed"
	session.TotalRows = 100
	session.ImportedCount = 98
	session.ErrorCount = 2
	session.UpdatedAt = time.Now()
	require.NoError(t, repo.UpdateSession(session))

	updated, err := repo.GetSessionByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, 100, updated.TotalRows)
	assert.Equal(t, 98, updated.ImportedCount)
	assert.Equal(t, 2, updated.ErrorCount)
}

func TestImportRepository_GetSessionsFiltersByType(t *testing.T) {
	db := newTestDB(t)
	repo := NewImportRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateSession(newTestSession(fmt.Sprintf("IMP-sales-%d", i), models.ImportTypeSales)))
	}
	require.NoError(t, repo.CreateSession(newTestSession("IMP-prod-0", models.ImportTypeProducts)))

	sessions, total, err := repo.GetSessions(10, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, sessions, 4)

	sessions, total, err = repo.GetSessions(10, 0, models.ImportTypeProducts)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, sessions, 1)
	assert.Equal(t, "IMP-prod-0", sessions[0].SessionCode)

	sessions, total, err = repo.GetSessions(2, 0, models.ImportTypeSales)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, sessions, 2)
}

func TestTargetRepository_UniqueUnitPeriod(t *testing.T) {
	db := newTestDB(t)
	repo := NewTargetRepository(db)

	now := time.Now()
	target := &models.SalesTarget{SalesUnit: "UNIT-A", Period: "2026-01", TargetAmount: 1000, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Insert(db, target))

	dup := &models.SalesTarget{SalesUnit: "UNIT-A", Period: "2026-01", TargetAmount: 2000, CreatedAt: now, UpdatedAt: now}
	assert.Error(t, repo.Insert(db, dup))

	target.TargetAmount = 3000
	target.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, repo.Update(db, target))

	found, err := repo.FindByUnitAndPeriod(db, "UNIT-A", "2026-01")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, found.TargetAmount)
}
