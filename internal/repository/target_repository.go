package repository

import (
	"salesreport-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type TargetRepository struct {
	db *sqlx.DB
}

func NewTargetRepository(db *sqlx.DB) *TargetRepository {
	return &TargetRepository{db: db}
}

func (r *TargetRepository) Begin() (*sqlx.Tx, error) {
	return r.db.Beginx()
}

func (r *TargetRepository) FindByUnitAndPeriod(q sqlx.Ext, salesUnit, period string) (*models.SalesTarget, error) {
	var target models.SalesTarget
	query := "SELECT * FROM sales_targets WHERE sales_unit = ? AND period = ? LIMIT 1"
	if err := sqlx.Get(q, &target, query, salesUnit, period); err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *TargetRepository) Insert(q sqlx.Ext, target *models.SalesTarget) error {
	query := `INSERT INTO sales_targets (sales_unit, period, target_amount, created_at, updated_at)
	          VALUES (:sales_unit, :period, :target_amount, :created_at, :updated_at)`
	result, err := sqlx.NamedExec(q, query, target)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	target.ID = id
	return nil
}

func (r *TargetRepository) Update(q sqlx.Ext, target *models.SalesTarget) error {
	query := `UPDATE sales_targets SET target_amount = :target_amount, updated_at = :updated_at
	          WHERE sales_unit = :sales_unit AND period = :period`
	_, err := sqlx.NamedExec(q, query, target)
	return err
}

func (r *TargetRepository) FindAll(limit, offset int) ([]models.SalesTarget, int, error) {
	var total int
	if err := r.db.Get(&total, "SELECT COUNT(*) FROM sales_targets"); err != nil {
		return nil, 0, err
	}

	var targets []models.SalesTarget
	query := "SELECT * FROM sales_targets ORDER BY period DESC, sales_unit LIMIT ? OFFSET ?"
	if err := r.db.Select(&targets, query, limit, offset); err != nil {
		return nil, 0, err
	}

	return targets, total, nil
}
