package repository

import (
	"salesreport-web/internal/models"

	"github.com/jmoiron/sqlx"
)

// SalesRepository reads and writes the sales ledger. Write methods take
// sqlx.Ext so the import executor can run them inside its transaction;
// the pool itself is injected, never a package global.
type SalesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) Begin() (*sqlx.Tx, error) {
	return r.db.Beginx()
}

func (r *SalesRepository) FindByInvoiceID(q sqlx.Ext, invoiceID string) (*models.SalesRecord, error) {
	var rec models.SalesRecord
	query := "SELECT * FROM sales WHERE invoice_id = ? LIMIT 1"
	if err := sqlx.Get(q, &rec, query, invoiceID); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *SalesRepository) Insert(q sqlx.Ext, rec *models.SalesRecord) error {
	query := `INSERT INTO sales (invoice_id, invoice_date, customer_code, sales_unit, material_code,
	          quantity, unit_price, discount, item_tax, item_gross, item_net, created_at, updated_at)
	          VALUES (:invoice_id, :invoice_date, :customer_code, :sales_unit, :material_code,
	          :quantity, :unit_price, :discount, :item_tax, :item_gross, :item_net, :created_at, :updated_at)`
	result, err := sqlx.NamedExec(q, query, rec)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	rec.ID = id
	return nil
}

// Update rewrites every field except the natural key; created_at is
// preserved and updated_at is expected to be set by the caller
func (r *SalesRepository) Update(q sqlx.Ext, rec *models.SalesRecord) error {
	query := `UPDATE sales SET invoice_date = :invoice_date, customer_code = :customer_code,
	          sales_unit = :sales_unit, material_code = :material_code, quantity = :quantity,
	          unit_price = :unit_price, discount = :discount, item_tax = :item_tax,
	          item_gross = :item_gross, item_net = :item_net, updated_at = :updated_at
	          WHERE invoice_id = :invoice_id`
	_, err := sqlx.NamedExec(q, query, rec)
	return err
}

func (r *SalesRepository) FindAll(limit, offset int, filter models.SalesFilter) ([]models.SalesRecord, int, error) {
	whereClause, args := buildSalesWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM sales " + whereClause
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	var records []models.SalesRecord
	query := "SELECT * FROM sales " + whereClause + " ORDER BY invoice_date DESC, invoice_id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	if err := r.db.Select(&records, query, args...); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// FindAllForExport returns the full filtered ledger without pagination
func (r *SalesRepository) FindAllForExport(filter models.SalesFilter) ([]models.SalesRecord, error) {
	whereClause, args := buildSalesWhere(filter)
	var records []models.SalesRecord
	query := "SELECT * FROM sales " + whereClause + " ORDER BY invoice_date, invoice_id"
	err := r.db.Select(&records, query, args...)
	return records, err
}

// buildSalesWhere assembles the filter clause. Invoice dates are stored
// as ISO YYYY-MM-DD strings, so string comparison is chronological.
func buildSalesWhere(filter models.SalesFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.DateFrom != "" {
		conditions = append(conditions, "invoice_date >= ?")
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		conditions = append(conditions, "invoice_date <= ?")
		args = append(args, filter.DateTo)
	}
	if filter.CustomerCode != "" {
		conditions = append(conditions, "customer_code = ?")
		args = append(args, filter.CustomerCode)
	}
	if filter.SalesUnit != "" {
		conditions = append(conditions, "sales_unit = ?")
		args = append(args, filter.SalesUnit)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + joinConditions(conditions), args
}

func joinConditions(conditions []string) string {
	out := conditions[0]
	for _, c := range conditions[1:] {
		out += " AND " + c
	}
	return out
}
