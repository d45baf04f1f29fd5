package repository

import (
	"salesreport-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Begin() (*sqlx.Tx, error) {
	return r.db.Beginx()
}

func (r *ProductRepository) FindByCode(q sqlx.Ext, code string) (*models.Product, error) {
	var product models.Product
	query := "SELECT * FROM products WHERE product_code = ? LIMIT 1"
	if err := sqlx.Get(q, &product, query, code); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Insert(q sqlx.Ext, product *models.Product) error {
	query := `INSERT INTO products (product_code, product_name, category, unit_price, created_at, updated_at)
	          VALUES (:product_code, :product_name, :category, :unit_price, :created_at, :updated_at)`
	result, err := sqlx.NamedExec(q, query, product)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	product.ID = id
	return nil
}

func (r *ProductRepository) Update(q sqlx.Ext, product *models.Product) error {
	query := `UPDATE products SET product_name = :product_name, category = :category,
	          unit_price = :unit_price, updated_at = :updated_at
	          WHERE product_code = :product_code`
	_, err := sqlx.NamedExec(q, query, product)
	return err
}

func (r *ProductRepository) FindAll(limit, offset int, search string) ([]models.Product, int, error) {
	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE product_code LIKE ? OR product_name LIKE ?"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := r.db.Get(&total, "SELECT COUNT(*) FROM products "+whereClause, args...); err != nil {
		return nil, 0, err
	}

	var products []models.Product
	query := "SELECT * FROM products " + whereClause + " ORDER BY product_code LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	if err := r.db.Select(&products, query, args...); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
