package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	errs "scootershare/internal/errors"
	"scootershare/internal/models"
)

type PostgresBookingRepository struct {
	DB *sql.DB
}

func NewPostgresBookingRepository(db *sql.DB) *PostgresBookingRepository {
	return &PostgresBookingRepository{DB: db}
}

const bookingColumns = `id, scooter_id, customer_id, date, start_time, duration_minutes, cost, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.ScooterID, &b.CustomerID, &b.Date, &b.StartTime,
		&b.DurationMinutes, &b.Cost, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBookingRepository) Get(id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("booking " + id + " not found")
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return b, nil
}

func (r *PostgresBookingRepository) list(where string, args ...any) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ` + where + ` ORDER BY created_at, id`
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PostgresBookingRepository) List() ([]models.Booking, error) {
	return r.list("")
}

func (r *PostgresBookingRepository) ListByCustomer(customerID string) ([]models.Booking, error) {
	return r.list(`WHERE customer_id = $1`, customerID)
}

func (r *PostgresBookingRepository) ListActiveByScooter(scooterID string) ([]models.Booking, error) {
	return r.list(`WHERE scooter_id = $1 AND status = $2`, scooterID, models.BookingActive)
}

func (r *PostgresBookingRepository) Create(b *models.Booking) error {
	var seq int64
	if err := r.DB.QueryRow(`SELECT nextval('bookings_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("error reserving booking id: %w", err)
	}
	b.ID = fmt.Sprintf("BK-%04d", seq)

	query := `INSERT INTO bookings (` + bookingColumns + `, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	endsAt, err := b.EndsAt()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(query, b.ID, b.ScooterID, b.CustomerID, b.Date, b.StartTime,
		b.DurationMinutes, b.Cost, b.Status, b.CreatedAt, b.UpdatedAt, endsAt)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (r *PostgresBookingRepository) Update(b *models.Booking) error {
	query := `UPDATE bookings SET status = $2, cost = $3, updated_at = $4 WHERE id = $1`
	result, err := r.DB.Exec(query, b.ID, b.Status, b.Cost, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error updating booking: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFound("booking " + b.ID + " not found")
	}
	return nil
}

func (r *PostgresBookingRepository) Delete(id string) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFound("booking " + id + " not found")
	}
	return nil
}

func (r *PostgresBookingRepository) DeleteMany(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error deleting bookings: %w", err)
	}
	return result.RowsAffected()
}

func (r *PostgresBookingRepository) ExpiredActiveIDs(now time.Time) ([]string, error) {
	query := `SELECT id FROM bookings WHERE status = $1 AND ends_at < $2 ORDER BY ends_at`
	rows, err := r.DB.Query(query, models.BookingActive, now)
	if err != nil {
		return nil, fmt.Errorf("error querying expired bookings: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
