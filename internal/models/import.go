package models

import (
	"time"

	"salesreport-web/internal/importer"
)

// Import types accepted by the pipeline
const (
	ImportTypeSales     = "sales"
	ImportTypeProducts  = "products"
	ImportTypeCustomers = "customers"
	ImportTypeTargets   = "targets"
)

// InvalidRowSampleSize caps the invalid-row sample returned to the caller
const InvalidRowSampleSize = 5

// ImportOutcome is the discriminated result of one import call.
// Public entry points return this instead of raising; API clients
// branch on Success for the counts or the error detail.
type ImportOutcome struct {
	Success       bool                  `json:"success"`
	ImportedCount int                   `json:"imported_count"`
	ErrorCount    int                   `json:"error_count"`
	TotalRows     int                   `json:"total_rows"`
	Error         string                `json:"error,omitempty"`
	InvalidRows   []importer.InvalidRow `json:"invalid_rows,omitempty"`
}

// ImportSession is one import call's history entry. Synchronous imports
// write a completed row; queued imports track async job state in Status.
type ImportSession struct {
	ID            int       `db:"id" json:"id"`
	SessionCode   string    `db:"session_code" json:"session_code"`
	UserID        int       `db:"user_id" json:"user_id"`
	ImportType    string    `db:"import_type" json:"import_type"`
	Filename      string    `db:"filename" json:"filename"`
	FilePath      string    `db:"file_path" json:"file_path"`
	TotalRows     int       `db:"total_rows" json:"total_rows"`
	ImportedCount int       `db:"imported_count" json:"imported_count"`
	ErrorCount    int       `db:"error_count" json:"error_count"`
	Status        string    `db:"status" json:"status"`
	ErrorMessage  string    `db:"error_message" json:"error_message"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
