package repository

import (
	"database/sql"
	"testing"
	"time"

	"salesreport-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSalesRecord(t *testing.T, repo *SalesRepository, invoiceID, date, customer, unit string, net float64) *models.SalesRecord {
	t.Helper()
	now := time.Now()
	rec := &models.SalesRecord{
		InvoiceID:    invoiceID,
		InvoiceDate:  date,
		CustomerCode: customer,
		SalesUnit:    unit,
		MaterialCode: "MAT-100",
		Quantity:     1,
		UnitPrice:    net,
		ItemGross:    net,
		ItemNet:      net,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Insert(repo.db, rec))
	return rec
}

func TestSalesRepository_InsertAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)

	rec := seedSalesRecord(t, repo, "INV-1", "2026-01-05", "CUST-1", "UNIT-A", 1000)
	assert.NotZero(t, rec.ID)

	found, err := repo.FindByInvoiceID(db, "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "INV-1", found.InvoiceID)
	assert.Equal(t, "2026-01-05", found.InvoiceDate)
	assert.Equal(t, 1000.0, found.ItemNet)
}

func TestSalesRepository_FindMissingReturnsErrNoRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)

	_, err := repo.FindByInvoiceID(db, "NOPE")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSalesRepository_UpdatePreservesCreatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)

	rec := seedSalesRecord(t, repo, "INV-1", "2026-01-05", "CUST-1", "UNIT-A", 1000)
	original, err := repo.FindByInvoiceID(db, "INV-1")
	require.NoError(t, err)

	rec.ItemNet = 2000
	rec.UpdatedAt = rec.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(db, rec))

	updated, err := repo.FindByInvoiceID(db, "INV-1")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, updated.ItemNet)
	assert.True(t, updated.CreatedAt.Equal(original.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(original.UpdatedAt))

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM sales"))
	assert.Equal(t, 1, count)
}

func TestSalesRepository_WriteMethodsRunInTransaction(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)

	tx, err := repo.Begin()
	require.NoError(t, err)

	now := time.Now()
	rec := &models.SalesRecord{InvoiceID: "INV-TX", InvoiceDate: "2026-01-05", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Insert(tx, rec))

	found, err := repo.FindByInvoiceID(tx, "INV-TX")
	require.NoError(t, err)
	assert.Equal(t, "INV-TX", found.InvoiceID)

	require.NoError(t, tx.Rollback())

	_, err = repo.FindByInvoiceID(db, "INV-TX")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSalesRepository_FindAllFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)

	seedSalesRecord(t, repo, "INV-1", "2026-01-05", "CUST-1", "UNIT-A", 1000)
	seedSalesRecord(t, repo, "INV-2", "2026-02-10", "CUST-2", "UNIT-A", 2000)
	seedSalesRecord(t, repo, "INV-3", "2026-03-15", "CUST-1", "UNIT-B", 3000)

	records, total, err := repo.FindAll(10, 0, models.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, records, 3)
	// newest first
	assert.Equal(t, "INV-3", records[0].InvoiceID)

	records, total, err = repo.FindAll(10, 0, models.SalesFilter{DateFrom: "2026-02-01", DateTo: "2026-02-28"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "INV-2", records[0].InvoiceID)

	_, total, err = repo.FindAll(10, 0, models.SalesFilter{CustomerCode: "CUST-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, total, err = repo.FindAll(10, 0, models.SalesFilter{SalesUnit: "UNIT-B", DateFrom: "2026-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestSalesRepository_FindAllPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)

	seedSalesRecord(t, repo, "INV-1", "2026-01-01", "CUST-1", "UNIT-A", 100)
	seedSalesRecord(t, repo, "INV-2", "2026-01-02", "CUST-1", "UNIT-A", 200)
	seedSalesRecord(t, repo, "INV-3", "2026-01-03", "CUST-1", "UNIT-A", 300)

	page1, total, err := repo.FindAll(2, 0, models.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page1, 2)

	page2, _, err := repo.FindAll(2, 2, models.SalesFilter{})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}

func TestSalesRepository_FindAllForExportOrdersAscending(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalesRepository(db)

	seedSalesRecord(t, repo, "INV-2", "2026-02-10", "CUST-1", "UNIT-A", 200)
	seedSalesRecord(t, repo, "INV-1", "2026-01-05", "CUST-1", "UNIT-A", 100)

	records, err := repo.FindAllForExport(models.SalesFilter{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "INV-1", records[0].InvoiceID)
	assert.Equal(t, "INV-2", records[1].InvoiceID)
}
