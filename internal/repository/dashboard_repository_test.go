package repository

import (
	"testing"
	"time"

	"salesreport-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepository_Summary(t *testing.T) {
	db := newTestDB(t)
	salesRepo := NewSalesRepository(db)
	repo := NewDashboardRepository(db)

	seedSalesRecord(t, salesRepo, "INV-1", "2026-01-05", "CUST-1", "UNIT-A", 1000)
	seedSalesRecord(t, salesRepo, "INV-2", "2026-01-10", "CUST-2", "UNIT-A", 3000)
	seedSalesRecord(t, salesRepo, "INV-3", "2026-02-01", "CUST-1", "UNIT-B", 2000)

	summary, err := repo.Summary(models.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, 6000.0, summary.TotalRevenue)
	assert.Equal(t, int64(3), summary.InvoiceCount)
	assert.Equal(t, 2000.0, summary.AvgInvoiceValue)
	assert.Equal(t, int64(2), summary.ActiveCustomers)

	january, err := repo.Summary(models.SalesFilter{DateFrom: "2026-01-01", DateTo: "2026-01-31"})
	require.NoError(t, err)
	assert.Equal(t, 4000.0, january.TotalRevenue)
	assert.Equal(t, int64(2), january.InvoiceCount)
}

func TestDashboardRepository_SummaryEmptyLedger(t *testing.T) {
	db := newTestDB(t)
	repo := NewDashboardRepository(db)

	summary, err := repo.Summary(models.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, int64(0), summary.InvoiceCount)
}

func TestDashboardRepository_SalesByMonth(t *testing.T) {
	db := newTestDB(t)
	salesRepo := NewSalesRepository(db)
	repo := NewDashboardRepository(db)

	seedSalesRecord(t, salesRepo, "INV-1", "2026-01-05", "CUST-1", "UNIT-A", 1000)
	seedSalesRecord(t, salesRepo, "INV-2", "2026-01-20", "CUST-2", "UNIT-A", 500)
	seedSalesRecord(t, salesRepo, "INV-3", "2026-03-15", "CUST-1", "UNIT-B", 2000)

	series, err := repo.SalesByMonth(models.SalesFilter{})
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "2026-01", series[0].Period)
	assert.Equal(t, 1500.0, series[0].Revenue)
	assert.Equal(t, int64(2), series[0].Invoices)
	assert.Equal(t, "2026-03", series[1].Period)
	assert.Equal(t, 2000.0, series[1].Revenue)
}

func TestDashboardRepository_TopProductsAndCustomers(t *testing.T) {
	db := newTestDB(t)
	salesRepo := NewSalesRepository(db)
	productRepo := NewProductRepository(db)
	repo := NewDashboardRepository(db)

	now := time.Now()
	require.NoError(t, productRepo.Insert(db, &models.Product{
		ProductCode: "MAT-100", ProductName: "Thermal Paper", CreatedAt: now, UpdatedAt: now,
	}))

	seedSalesRecord(t, salesRepo, "INV-1", "2026-01-05", "CUST-1", "UNIT-A", 1000)
	seedSalesRecord(t, salesRepo, "INV-2", "2026-01-06", "CUST-2", "UNIT-A", 5000)

	products, err := repo.TopProducts(5, models.SalesFilter{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "MAT-100", products[0].MaterialCode)
	assert.Equal(t, "Thermal Paper", products[0].ProductName)
	assert.Equal(t, 6000.0, products[0].Revenue)

	customers, err := repo.TopCustomers(5, models.SalesFilter{})
	require.NoError(t, err)
	require.Len(t, customers, 2)
	// highest revenue first; CUST-2 has no master record so the name is empty
	assert.Equal(t, "CUST-2", customers[0].CustomerCode)
	assert.Equal(t, "", customers[0].CustomerName)
	assert.Equal(t, 5000.0, customers[0].Revenue)
}

func TestDashboardRepository_TargetAttainment(t *testing.T) {
	db := newTestDB(t)
	salesRepo := NewSalesRepository(db)
	targetRepo := NewTargetRepository(db)
	repo := NewDashboardRepository(db)

	now := time.Now()
	require.NoError(t, targetRepo.Insert(db, &models.SalesTarget{
		SalesUnit: "UNIT-A", Period: "2026-01", TargetAmount: 2000, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, targetRepo.Insert(db, &models.SalesTarget{
		SalesUnit: "UNIT-B", Period: "2026-01", TargetAmount: 1000, CreatedAt: now, UpdatedAt: now,
	}))

	seedSalesRecord(t, salesRepo, "INV-1", "2026-01-05", "CUST-1", "UNIT-A", 1000)
	seedSalesRecord(t, salesRepo, "INV-2", "2026-01-20", "CUST-2", "UNIT-A", 500)

	rows, err := repo.TargetAttainment("2026-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byUnit := map[string]models.TargetAttainment{}
	for _, row := range rows {
		byUnit[row.SalesUnit] = row
	}

	unitA := byUnit["UNIT-A"]
	assert.Equal(t, 1500.0, unitA.ActualAmount)
	assert.Equal(t, 75.0, unitA.Attainment)

	// no sales at all for UNIT-B
	unitB := byUnit["UNIT-B"]
	assert.Equal(t, 0.0, unitB.ActualAmount)
	assert.Equal(t, 0.0, unitB.Attainment)
}
