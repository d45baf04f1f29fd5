package models

// DashboardSummary holds the KPI card numbers
type DashboardSummary struct {
	TotalRevenue    float64 `db:"total_revenue" json:"total_revenue"`
	InvoiceCount    int64   `db:"invoice_count" json:"invoice_count"`
	AvgInvoiceValue float64 `db:"avg_invoice_value" json:"avg_invoice_value"`
	ActiveCustomers int64   `db:"active_customers" json:"active_customers"`
}

// MonthlySales is one point of the revenue-by-month chart series
type MonthlySales struct {
	Period   string  `db:"period" json:"period"`
	Revenue  float64 `db:"revenue" json:"revenue"`
	Quantity float64 `db:"quantity" json:"quantity"`
	Invoices int64   `db:"invoices" json:"invoices"`
}

type TopProduct struct {
	MaterialCode string  `db:"material_code" json:"material_code"`
	ProductName  string  `db:"product_name" json:"product_name"`
	Revenue      float64 `db:"revenue" json:"revenue"`
	Quantity     float64 `db:"quantity" json:"quantity"`
}

type TopCustomer struct {
	CustomerCode string  `db:"customer_code" json:"customer_code"`
	CustomerName string  `db:"customer_name" json:"customer_name"`
	Revenue      float64 `db:"revenue" json:"revenue"`
	Invoices     int64   `db:"invoices" json:"invoices"`
}

// TargetAttainment compares a sales unit's target against actual revenue
type TargetAttainment struct {
	SalesUnit    string  `db:"sales_unit" json:"sales_unit"`
	Period       string  `db:"period" json:"period"`
	TargetAmount float64 `db:"target_amount" json:"target_amount"`
	ActualAmount float64 `db:"actual_amount" json:"actual_amount"`
	Attainment   float64 `db:"attainment" json:"attainment"`
}
