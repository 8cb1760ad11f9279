package repository

import (
	"database/sql"
	"errors"
	"fmt"

	errs "scootershare/internal/errors"
	"scootershare/internal/models"
)

type PostgresScooterRepository struct {
	DB *sql.DB
}

func NewPostgresScooterRepository(db *sql.DB) *PostgresScooterRepository {
	return &PostgresScooterRepository{DB: db}
}

func (r *PostgresScooterRepository) Get(id string) (*models.Scooter, error) {
	var s models.Scooter
	query := `SELECT id, make, color, location, power, cost_per_minute, status FROM scooters WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.Make, &s.Color, &s.Location, &s.Power, &s.CostPerMinute, &s.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("scooter " + id + " not found")
		}
		return nil, fmt.Errorf("error querying scooter: %w", err)
	}
	return &s, nil
}

func (r *PostgresScooterRepository) List() ([]models.Scooter, error) {
	query := `SELECT id, make, color, location, power, cost_per_minute, status FROM scooters ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying scooters: %w", err)
	}
	defer rows.Close()

	var scooters []models.Scooter
	for rows.Next() {
		var s models.Scooter
		if err := rows.Scan(&s.ID, &s.Make, &s.Color, &s.Location, &s.Power, &s.CostPerMinute, &s.Status); err != nil {
			return nil, fmt.Errorf("error scanning scooter: %w", err)
		}
		scooters = append(scooters, s)
	}
	return scooters, rows.Err()
}

func (r *PostgresScooterRepository) Create(s *models.Scooter) error {
	query := `INSERT INTO scooters (id, make, color, location, power, cost_per_minute, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.Exec(query, s.ID, s.Make, s.Color, s.Location, s.Power, s.CostPerMinute, s.Status)
	if err != nil {
		return fmt.Errorf("error creating scooter: %w", err)
	}
	return nil
}

func (r *PostgresScooterRepository) Update(s *models.Scooter) error {
	query := `UPDATE scooters SET make = $2, color = $3, location = $4, power = $5, cost_per_minute = $6, status = $7 WHERE id = $1`
	result, err := r.DB.Exec(query, s.ID, s.Make, s.Color, s.Location, s.Power, s.CostPerMinute, s.Status)
	if err != nil {
		return fmt.Errorf("error updating scooter: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFound("scooter " + s.ID + " not found")
	}
	return nil
}

func (r *PostgresScooterRepository) Delete(id string) error {
	result, err := r.DB.Exec(`DELETE FROM scooters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting scooter: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFound("scooter " + id + " not found")
	}
	return nil
}
