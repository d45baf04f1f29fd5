package repository

import (
	"salesreport-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type CustomerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Begin() (*sqlx.Tx, error) {
	return r.db.Beginx()
}

func (r *CustomerRepository) FindByCode(q sqlx.Ext, code string) (*models.Customer, error) {
	var customer models.Customer
	query := "SELECT * FROM customers WHERE customer_code = ? LIMIT 1"
	if err := sqlx.Get(q, &customer, query, code); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Insert(q sqlx.Ext, customer *models.Customer) error {
	query := `INSERT INTO customers (customer_code, customer_name, city, segment, created_at, updated_at)
	          VALUES (:customer_code, :customer_name, :city, :segment, :created_at, :updated_at)`
	result, err := sqlx.NamedExec(q, query, customer)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	customer.ID = id
	return nil
}

func (r *CustomerRepository) Update(q sqlx.Ext, customer *models.Customer) error {
	query := `UPDATE customers SET customer_name = :customer_name, city = :city,
	          segment = :segment, updated_at = :updated_at
	          WHERE customer_code = :customer_code`
	_, err := sqlx.NamedExec(q, query, customer)
	return err
}

func (r *CustomerRepository) FindAll(limit, offset int, search string) ([]models.Customer, int, error) {
	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE customer_code LIKE ? OR customer_name LIKE ?"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := r.db.Get(&total, "SELECT COUNT(*) FROM customers "+whereClause, args...); err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	query := "SELECT * FROM customers " + whereClause + " ORDER BY customer_code LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	if err := r.db.Select(&customers, query, args...); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}
