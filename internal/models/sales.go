package models

import "time"

// SalesRecord is one line of the sales ledger, keyed by invoice id.
// Exactly one row exists per invoice_id; re-imports update in place.
type SalesRecord struct {
	ID           int64     `db:"id" json:"id"`
	InvoiceID    string    `db:"invoice_id" json:"invoice_id"`
	InvoiceDate  string    `db:"invoice_date" json:"date"`
	CustomerCode string    `db:"customer_code" json:"customer_code"`
	SalesUnit    string    `db:"sales_unit" json:"sales_unit"`
	MaterialCode string    `db:"material_code" json:"material_code"`
	Quantity     float64   `db:"quantity" json:"quantity"`
	UnitPrice    float64   `db:"unit_price" json:"unit_price"`
	Discount     float64   `db:"discount" json:"discount"`
	ItemTax      float64   `db:"item_tax" json:"item_tax"`
	ItemGross    float64   `db:"item_gross" json:"item_gross"`
	ItemNet      float64   `db:"item_net" json:"item_net"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type SalesFilter struct {
	DateFrom     string
	DateTo       string
	CustomerCode string
	SalesUnit    string
}
