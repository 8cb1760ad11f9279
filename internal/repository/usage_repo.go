package repository

import (
	"database/sql"
	"fmt"

	"scootershare/internal/models"
)

type PostgresUsageRepository struct {
	DB *sql.DB
}

func NewPostgresUsageRepository(db *sql.DB) *PostgresUsageRepository {
	return &PostgresUsageRepository{DB: db}
}

const usageColumns = `id, customer_id, customer_name, scooter_id, scooter_make, scooter_color, start_time, end_time, start_location, end_location, duration_minutes, cost, power_used`

func (r *PostgresUsageRepository) list(where string, args ...any) ([]models.UsageRecord, error) {
	query := `SELECT ` + usageColumns + ` FROM usage_records ` + where + ` ORDER BY start_time, id`
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying usage records: %w", err)
	}
	defer rows.Close()

	var records []models.UsageRecord
	for rows.Next() {
		var u models.UsageRecord
		if err := rows.Scan(&u.ID, &u.CustomerID, &u.CustomerName, &u.ScooterID, &u.ScooterMake,
			&u.ScooterColor, &u.StartTime, &u.EndTime, &u.StartLocation, &u.EndLocation,
			&u.DurationMinutes, &u.Cost, &u.PowerUsed); err != nil {
			return nil, fmt.Errorf("error scanning usage record: %w", err)
		}
		records = append(records, u)
	}
	return records, rows.Err()
}

func (r *PostgresUsageRepository) List() ([]models.UsageRecord, error) {
	return r.list("")
}

func (r *PostgresUsageRepository) ListByCustomer(customerID string) ([]models.UsageRecord, error) {
	return r.list(`WHERE customer_id = $1`, customerID)
}

func (r *PostgresUsageRepository) Create(u *models.UsageRecord) error {
	var seq int64
	if err := r.DB.QueryRow(`SELECT nextval('usage_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("error reserving usage id: %w", err)
	}
	u.ID = fmt.Sprintf("U%03d", seq)

	query := `INSERT INTO usage_records (` + usageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.DB.Exec(query, u.ID, u.CustomerID, u.CustomerName, u.ScooterID, u.ScooterMake,
		u.ScooterColor, u.StartTime, u.EndTime, u.StartLocation, u.EndLocation,
		u.DurationMinutes, u.Cost, u.PowerUsed)
	if err != nil {
		return fmt.Errorf("error creating usage record: %w", err)
	}
	return nil
}
