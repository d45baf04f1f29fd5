package models

import "time"

// Product master data, keyed by product code
type Product struct {
	ID          int64     `db:"id" json:"id"`
	ProductCode string    `db:"product_code" json:"product_code"`
	ProductName string    `db:"product_name" json:"product_name"`
	Category    string    `db:"category" json:"category"`
	UnitPrice   float64   `db:"unit_price" json:"unit_price"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Customer master data, keyed by customer code
type Customer struct {
	ID           int64     `db:"id" json:"id"`
	CustomerCode string    `db:"customer_code" json:"customer_code"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	City         string    `db:"city" json:"city"`
	Segment      string    `db:"segment" json:"segment"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SalesTarget is a monthly revenue target per sales unit,
// keyed by (sales_unit, period) where period is YYYY-MM
type SalesTarget struct {
	ID           int64     `db:"id" json:"id"`
	SalesUnit    string    `db:"sales_unit" json:"sales_unit"`
	Period       string    `db:"period" json:"period"`
	TargetAmount float64   `db:"target_amount" json:"target_amount"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
