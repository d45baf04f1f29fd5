package service

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"salesreport-web/internal/importer"
	"salesreport-web/internal/models"
	"salesreport-web/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// RowErrorPolicy decides what a row-level persistence failure does to
// the rest of the batch. Skip logs and counts the row but lets the
// transaction commit with partial success; Abort rolls back everything
// on the first failed row.
type RowErrorPolicy string

const (
	RowErrorSkip  RowErrorPolicy = "skip"
	RowErrorAbort RowErrorPolicy = "abort"
)

// ImportOptions tunes one import call
type ImportOptions struct {
	NoHeader   bool
	OnRowError RowErrorPolicy
}

// ImportService runs the full import pipeline: parse, map, validate,
// then upsert every valid row inside a single transaction and report
// the tally. It never raises to the caller; every failure mode becomes
// a discriminated ImportOutcome.
type ImportService struct {
	salesRepo    *repository.SalesRepository
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
	targetRepo   *repository.TargetRepository
	log          *logrus.Logger
}

func NewImportService(
	salesRepo *repository.SalesRepository,
	productRepo *repository.ProductRepository,
	customerRepo *repository.CustomerRepository,
	targetRepo *repository.TargetRepository,
	log *logrus.Logger,
) *ImportService {
	return &ImportService{
		salesRepo:    salesRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		targetRepo:   targetRepo,
		log:          log,
	}
}

// entitySpec describes one import type: its field coercions, validation
// rules, and how a mapped row is upserted by natural key
type entitySpec struct {
	required      []string
	dateFields    []string
	numericFields []string
	validators    map[string]importer.FieldValidator
	begin         func() (*sqlx.Tx, error)
	upsert        func(tx *sqlx.Tx, row importer.MappedRow, now time.Time) error
}

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

func (s *ImportService) specFor(importType string) (entitySpec, bool) {
	switch importType {
	case models.ImportTypeSales:
		return entitySpec{
			required:      []string{"invoice_id", "date", "item_net"},
			dateFields:    []string{"date"},
			numericFields: []string{"quantity", "unit_price", "discount", "item_tax", "item_gross", "item_net"},
			validators: map[string]importer.FieldValidator{
				"date": validISODate,
			},
			begin:  s.salesRepo.Begin,
			upsert: s.upsertSalesRow,
		}, true
	case models.ImportTypeProducts:
		return entitySpec{
			required:      []string{"product_code", "product_name"},
			numericFields: []string{"unit_price"},
			begin:         s.productRepo.Begin,
			upsert:        s.upsertProductRow,
		}, true
	case models.ImportTypeCustomers:
		return entitySpec{
			required: []string{"customer_code", "customer_name"},
			begin:    s.customerRepo.Begin,
			upsert:   s.upsertCustomerRow,
		}, true
	case models.ImportTypeTargets:
		return entitySpec{
			required:      []string{"sales_unit", "period", "target_amount"},
			numericFields: []string{"target_amount"},
			validators: map[string]importer.FieldValidator{
				"period": validPeriod,
			},
			begin:  s.targetRepo.Begin,
			upsert: s.upsertTargetRow,
		}, true
	}
	return entitySpec{}, false
}

// Import runs the pipeline for one uploaded file. The mapping is the
// caller-supplied source-column to target-field association; columns
// outside it never reach the database layer.
func (s *ImportService) Import(importType string, content []byte, mapping map[string]string, opts ImportOptions) models.ImportOutcome {
	spec, ok := s.specFor(importType)
	if !ok {
		return models.ImportOutcome{Error: fmt.Sprintf("unsupported import type: %s", importType)}
	}
	if opts.OnRowError == "" {
		opts.OnRowError = RowErrorSkip
	}

	parsed := importer.Parse(bytes.NewReader(content), importer.ParseOptions{NoHeader: opts.NoHeader})
	if len(parsed.Errors) > 0 {
		return models.ImportOutcome{
			TotalRows: len(parsed.Rows),
			Error:     parsed.Errors[0].Error(),
		}
	}

	mapped := importer.MapToSchema(parsed.Rows, mapping, importer.MapOptions{
		DateFields:    spec.dateFields,
		NumericFields: spec.numericFields,
	})

	validation := importer.Validate(mapped, spec.required, spec.validators)
	if !validation.Valid {
		sample := validation.InvalidRows
		if len(sample) > models.InvalidRowSampleSize {
			sample = sample[:models.InvalidRowSampleSize]
		}
		return models.ImportOutcome{
			TotalRows:   len(mapped),
			ErrorCount:  len(validation.InvalidRows),
			Error:       validation.Message,
			InvalidRows: sample,
		}
	}

	outcome := s.executeBatch(spec, validation.ValidRows, opts.OnRowError)
	outcome.TotalRows = len(mapped)
	return outcome
}

func (s *ImportService) ImportSales(content []byte, mapping map[string]string, opts ImportOptions) models.ImportOutcome {
	return s.Import(models.ImportTypeSales, content, mapping, opts)
}

func (s *ImportService) ImportProducts(content []byte, mapping map[string]string, opts ImportOptions) models.ImportOutcome {
	return s.Import(models.ImportTypeProducts, content, mapping, opts)
}

func (s *ImportService) ImportCustomers(content []byte, mapping map[string]string, opts ImportOptions) models.ImportOutcome {
	return s.Import(models.ImportTypeCustomers, content, mapping, opts)
}

func (s *ImportService) ImportTargets(content []byte, mapping map[string]string, opts ImportOptions) models.ImportOutcome {
	return s.Import(models.ImportTypeTargets, content, mapping, opts)
}

// executeBatch upserts every valid row inside one transaction. Row
// ordering is preserved and rows run sequentially; only the transaction
// as a whole is atomic. A row failure is handled per the policy; any
// failure outside the per-row scope (begin, commit) resolves the
// transaction and fails the whole batch with nothing persisted.
func (s *ImportService) executeBatch(spec entitySpec, rows []importer.MappedRow, policy RowErrorPolicy) models.ImportOutcome {
	tx, err := spec.begin()
	if err != nil {
		return models.ImportOutcome{Error: fmt.Sprintf("failed to begin transaction: %v", err)}
	}

	resolved := false
	defer func() {
		if !resolved {
			_ = tx.Rollback()
		}
	}()

	now := time.Now()
	imported := 0
	failed := 0

	for i, row := range rows {
		if err := spec.upsert(tx, row, now); err != nil {
			if policy == RowErrorAbort {
				_ = tx.Rollback()
				resolved = true
				return models.ImportOutcome{
					ErrorCount: 1,
					Error:      fmt.Sprintf("row %d: %v", i, err),
				}
			}
			s.log.Warnf("import: row %d skipped: %v", i, err)
			failed++
			continue
		}
		imported++
	}

	err = tx.Commit()
	resolved = true
	if err != nil {
		return models.ImportOutcome{Error: fmt.Sprintf("failed to commit import batch: %v", err)}
	}

	return models.ImportOutcome{
		Success:       true,
		ImportedCount: imported,
		ErrorCount:    failed,
	}
}

func (s *ImportService) upsertSalesRow(tx *sqlx.Tx, row importer.MappedRow, now time.Time) error {
	rec := &models.SalesRecord{
		InvoiceID:    row["invoice_id"].Text(),
		InvoiceDate:  row["date"].Text(),
		CustomerCode: row["customer_code"].Text(),
		SalesUnit:    row["sales_unit"].Text(),
		MaterialCode: row["material_code"].Text(),
		Quantity:     row["quantity"].Float(),
		UnitPrice:    row["unit_price"].Float(),
		Discount:     row["discount"].Float(),
		ItemTax:      row["item_tax"].Float(),
		ItemGross:    row["item_gross"].Float(),
		ItemNet:      row["item_net"].Float(),
	}

	existing, err := s.salesRepo.FindByInvoiceID(tx, rec.InvoiceID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if existing == nil {
		rec.CreatedAt = now
		rec.UpdatedAt = now
		return s.salesRepo.Insert(tx, rec)
	}
	rec.UpdatedAt = now
	return s.salesRepo.Update(tx, rec)
}

func (s *ImportService) upsertProductRow(tx *sqlx.Tx, row importer.MappedRow, now time.Time) error {
	product := &models.Product{
		ProductCode: row["product_code"].Text(),
		ProductName: row["product_name"].Text(),
		Category:    row["category"].Text(),
		UnitPrice:   row["unit_price"].Float(),
	}

	existing, err := s.productRepo.FindByCode(tx, product.ProductCode)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if existing == nil {
		product.CreatedAt = now
		product.UpdatedAt = now
		return s.productRepo.Insert(tx, product)
	}
	product.UpdatedAt = now
	return s.productRepo.Update(tx, product)
}

func (s *ImportService) upsertCustomerRow(tx *sqlx.Tx, row importer.MappedRow, now time.Time) error {
	customer := &models.Customer{
		CustomerCode: row["customer_code"].Text(),
		CustomerName: row["customer_name"].Text(),
		City:         row["city"].Text(),
		Segment:      row["segment"].Text(),
	}

	existing, err := s.customerRepo.FindByCode(tx, customer.CustomerCode)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if existing == nil {
		customer.CreatedAt = now
		customer.UpdatedAt = now
		return s.customerRepo.Insert(tx, customer)
	}
	customer.UpdatedAt = now
	return s.customerRepo.Update(tx, customer)
}

func (s *ImportService) upsertTargetRow(tx *sqlx.Tx, row importer.MappedRow, now time.Time) error {
	target := &models.SalesTarget{
		SalesUnit:    row["sales_unit"].Text(),
		Period:       row["period"].Text(),
		TargetAmount: row["target_amount"].Float(),
	}

	existing, err := s.targetRepo.FindByUnitAndPeriod(tx, target.SalesUnit, target.Period)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if existing == nil {
		target.CreatedAt = now
		target.UpdatedAt = now
		return s.targetRepo.Insert(tx, target)
	}
	target.UpdatedAt = now
	return s.targetRepo.Update(tx, target)
}

// validISODate accepts the normalized form the mapper emits. Unparseable
// dates pass through mapping untouched, so this is where they fail.
func validISODate(value importer.Cell, _ importer.MappedRow) error {
	if value.IsEmpty() {
		return nil // required-field check reports missing dates
	}
	if _, err := time.Parse("2006-01-02", value.Text()); err != nil {
		return fmt.Errorf("Invalid date: %s", value.Text())
	}
	return nil
}

func validPeriod(value importer.Cell, _ importer.MappedRow) error {
	if value.IsEmpty() {
		return nil
	}
	if !periodPattern.MatchString(value.Text()) {
		return fmt.Errorf("Invalid period: %s (expected YYYY-MM)", value.Text())
	}
	return nil
}
