package repository

import (
	"salesreport-web/internal/models"

	"github.com/jmoiron/sqlx"
)

// DashboardRepository serves the aggregate queries behind the KPI cards
// and chart endpoints. Periods are derived with SUBSTR over the ISO
// invoice_date string, so the same SQL runs on MySQL and SQLite.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Summary(filter models.SalesFilter) (*models.DashboardSummary, error) {
	whereClause, args := buildSalesWhere(filter)

	var summary models.DashboardSummary
	query := `SELECT COALESCE(SUM(item_net), 0)   AS total_revenue,
	                 COUNT(*)                     AS invoice_count,
	                 COALESCE(AVG(item_net), 0)   AS avg_invoice_value,
	                 COUNT(DISTINCT customer_code) AS active_customers
	          FROM sales ` + whereClause
	if err := r.db.Get(&summary, query, args...); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *DashboardRepository) SalesByMonth(filter models.SalesFilter) ([]models.MonthlySales, error) {
	whereClause, args := buildSalesWhere(filter)

	var series []models.MonthlySales
	query := `SELECT SUBSTR(invoice_date, 1, 7) AS period,
	                 COALESCE(SUM(item_net), 0) AS revenue,
	                 COALESCE(SUM(quantity), 0) AS quantity,
	                 COUNT(*)                   AS invoices
	          FROM sales ` + whereClause + `
	          GROUP BY SUBSTR(invoice_date, 1, 7)
	          ORDER BY period`
	if err := r.db.Select(&series, query, args...); err != nil {
		return nil, err
	}
	return series, nil
}

func (r *DashboardRepository) TopProducts(limit int, filter models.SalesFilter) ([]models.TopProduct, error) {
	whereClause, args := buildSalesWhere(filter)

	var products []models.TopProduct
	query := `SELECT s.material_code               AS material_code,
	                 COALESCE(p.product_name, '')  AS product_name,
	                 COALESCE(SUM(s.item_net), 0)  AS revenue,
	                 COALESCE(SUM(s.quantity), 0)  AS quantity
	          FROM sales s
	          LEFT JOIN products p ON p.product_code = s.material_code
	          ` + whereClause + `
	          GROUP BY s.material_code, p.product_name
	          ORDER BY revenue DESC
	          LIMIT ?`
	args = append(args, limit)
	if err := r.db.Select(&products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *DashboardRepository) TopCustomers(limit int, filter models.SalesFilter) ([]models.TopCustomer, error) {
	whereClause, args := buildSalesWhere(filter)

	var customers []models.TopCustomer
	query := `SELECT s.customer_code               AS customer_code,
	                 COALESCE(c.customer_name, '') AS customer_name,
	                 COALESCE(SUM(s.item_net), 0)  AS revenue,
	                 COUNT(*)                      AS invoices
	          FROM sales s
	          LEFT JOIN customers c ON c.customer_code = s.customer_code
	          ` + whereClause + `
	          GROUP BY s.customer_code, c.customer_name
	          ORDER BY revenue DESC
	          LIMIT ?`
	args = append(args, limit)
	if err := r.db.Select(&customers, query, args...); err != nil {
		return nil, err
	}
	return customers, nil
}

// TargetAttainment compares each sales unit's target against the ledger
// actuals for the same period. Attainment percentage is computed in Go
// to avoid division-by-zero in SQL.
func (r *DashboardRepository) TargetAttainment(period string) ([]models.TargetAttainment, error) {
	whereClause := ""
	args := []interface{}{}
	if period != "" {
		whereClause = "WHERE t.period = ?"
		args = append(args, period)
	}

	var rows []models.TargetAttainment
	query := `SELECT t.sales_unit              AS sales_unit,
	                 t.period                  AS period,
	                 t.target_amount           AS target_amount,
	                 COALESCE(a.actual, 0)     AS actual_amount,
	                 0                         AS attainment
	          FROM sales_targets t
	          LEFT JOIN (
	              SELECT sales_unit, SUBSTR(invoice_date, 1, 7) AS period, SUM(item_net) AS actual
	              FROM sales
	              GROUP BY sales_unit, SUBSTR(invoice_date, 1, 7)
	          ) a ON a.sales_unit = t.sales_unit AND a.period = t.period
	          ` + whereClause + `
	          ORDER BY t.period DESC, t.sales_unit`
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}

	for i := range rows {
		if rows[i].TargetAmount > 0 {
			rows[i].Attainment = rows[i].ActualAmount / rows[i].TargetAmount * 100
		}
	}
	return rows, nil
}
