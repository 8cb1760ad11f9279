package repository

import (
	"database/sql"
	"errors"
	"fmt"

	errs "scootershare/internal/errors"
	"scootershare/internal/models"
)

type PostgresIssueRepository struct {
	DB *sql.DB
}

func NewPostgresIssueRepository(db *sql.DB) *PostgresIssueRepository {
	return &PostgresIssueRepository{DB: db}
}

const issueColumns = `id, scooter_id, scooter_make, reported_by, reported_at, issue_type, priority, description, status, resolution, resolved_at`

func scanIssue(row interface{ Scan(...any) error }) (*models.MaintenanceIssue, error) {
	var i models.MaintenanceIssue
	var resolution sql.NullString
	var resolvedAt sql.NullTime
	err := row.Scan(&i.ID, &i.ScooterID, &i.ScooterMake, &i.ReportedBy, &i.ReportedAt,
		&i.IssueType, &i.Priority, &i.Description, &i.Status, &resolution, &resolvedAt)
	if err != nil {
		return nil, err
	}
	if resolution.Valid {
		i.Resolution = resolution.String
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		i.ResolvedAt = &t
	}
	return &i, nil
}

func (r *PostgresIssueRepository) Get(id string) (*models.MaintenanceIssue, error) {
	query := `SELECT ` + issueColumns + ` FROM maintenance_issues WHERE id = $1`
	issue, err := scanIssue(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("issue " + id + " not found")
		}
		return nil, fmt.Errorf("error querying issue: %w", err)
	}
	return issue, nil
}

func (r *PostgresIssueRepository) list(where string, args ...any) ([]models.MaintenanceIssue, error) {
	query := `SELECT ` + issueColumns + ` FROM maintenance_issues ` + where + ` ORDER BY reported_at, id`
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying issues: %w", err)
	}
	defer rows.Close()

	var issues []models.MaintenanceIssue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning issue: %w", err)
		}
		issues = append(issues, *issue)
	}
	return issues, rows.Err()
}

func (r *PostgresIssueRepository) List() ([]models.MaintenanceIssue, error) {
	return r.list("")
}

func (r *PostgresIssueRepository) ListOpenByScooter(scooterID string) ([]models.MaintenanceIssue, error) {
	return r.list(`WHERE scooter_id = $1 AND status <> $2`, scooterID, models.IssueCompleted)
}

func (r *PostgresIssueRepository) Create(i *models.MaintenanceIssue) error {
	var seq int64
	if err := r.DB.QueryRow(`SELECT nextval('issues_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("error reserving issue id: %w", err)
	}
	i.ID = fmt.Sprintf("ISSUE-%03d", seq)

	query := `INSERT INTO maintenance_issues (` + issueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.Exec(query, i.ID, i.ScooterID, i.ScooterMake, i.ReportedBy, i.ReportedAt,
		i.IssueType, i.Priority, i.Description, i.Status, nullIfEmpty(i.Resolution), i.ResolvedAt)
	if err != nil {
		return fmt.Errorf("error creating issue: %w", err)
	}
	return nil
}

func (r *PostgresIssueRepository) Update(i *models.MaintenanceIssue) error {
	query := `UPDATE maintenance_issues SET status = $2, resolution = $3, resolved_at = $4, priority = $5 WHERE id = $1`
	result, err := r.DB.Exec(query, i.ID, i.Status, nullIfEmpty(i.Resolution), i.ResolvedAt, i.Priority)
	if err != nil {
		return fmt.Errorf("error updating issue: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFound("issue " + i.ID + " not found")
	}
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
