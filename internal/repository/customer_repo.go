package repository

import (
	"database/sql"
	"errors"
	"fmt"

	errs "scootershare/internal/errors"
	"scootershare/internal/models"
)

type PostgresCustomerRepository struct {
	DB *sql.DB
}

func NewPostgresCustomerRepository(db *sql.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{DB: db}
}

const customerColumns = `id, first_name, last_name, email, phone, balance, registered_date, total_rides`

func (r *PostgresCustomerRepository) Get(id string) (*models.Customer, error) {
	var c models.Customer
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email,
		&c.Phone, &c.Balance, &c.RegisteredDate, &c.TotalRides)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("customer " + id + " not found")
		}
		return nil, fmt.Errorf("error querying customer: %w", err)
	}
	return &c, nil
}

func (r *PostgresCustomerRepository) List() ([]models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email,
			&c.Phone, &c.Balance, &c.RegisteredDate, &c.TotalRides); err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *PostgresCustomerRepository) Create(c *models.Customer) error {
	var seq int64
	if err := r.DB.QueryRow(`SELECT nextval('customers_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("error reserving customer id: %w", err)
	}
	c.ID = fmt.Sprintf("C%03d", seq)

	query := `INSERT INTO customers (` + customerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(query, c.ID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.Balance, c.RegisteredDate, c.TotalRides)
	if err != nil {
		return fmt.Errorf("error creating customer: %w", err)
	}
	return nil
}

func (r *PostgresCustomerRepository) Update(c *models.Customer) error {
	query := `UPDATE customers SET first_name = $2, last_name = $3, email = $4, phone = $5, balance = $6, total_rides = $7 WHERE id = $1`
	result, err := r.DB.Exec(query, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Balance, c.TotalRides)
	if err != nil {
		return fmt.Errorf("error updating customer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFound("customer " + c.ID + " not found")
	}
	return nil
}

func (r *PostgresCustomerRepository) Delete(id string) error {
	result, err := r.DB.Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting customer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFound("customer " + id + " not found")
	}
	return nil
}
