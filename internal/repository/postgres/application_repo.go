package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"labournet-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const applicationSelect = `
	SELECT
		a.id, a.worker_id, a.project_id, a.contractor_id, a.status, a.skills,
		a.experience, a.availability, a.cover_letter, a.expected_rate,
		a.contractor_snapshot, a.applied_at,
		w.full_name AS worker_name,
		p.title AS project_title
	FROM worker_applications a
	LEFT JOIN workers w ON a.worker_id = w.id
	LEFT JOIN projects p ON a.project_id = p.id`

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	app.ID = uuid.NewString()
	app.AppliedAt = time.Now()
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}
	if app.Skills == nil {
		app.Skills = []string{}
	}

	var snapshot []byte
	if app.ContractorSnapshot != nil {
		raw, err := json.Marshal(app.ContractorSnapshot)
		if err != nil {
			return err
		}
		snapshot = raw
	}

	query := `
		INSERT INTO worker_applications (id, worker_id, project_id, contractor_id, status, skills,
			experience, availability, cover_letter, expected_rate, contractor_snapshot, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		app.ID, app.Worker, app.Project, app.Contractor, app.Status, pq.Array(app.Skills),
		app.Experience, app.Availability, app.CoverLetter, app.ExpectedRate, snapshot, app.AppliedAt,
	)
	return err
}

// GetByID retrieves an application by ID with joined worker and project data
func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

// ListByContractor returns newest first, optionally restricted to one status
func (r *applicationRepo) ListByContractor(ctx context.Context, contractorID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	query := applicationSelect + ` WHERE a.contractor_id = $1`
	args := []interface{}{contractorID}
	if filter.Status != "" {
		query += ` AND a.status = $2`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY a.applied_at DESC`

	return r.list(ctx, query, args...)
}

func (r *applicationRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.worker_id = $1 ORDER BY a.applied_at DESC`, workerID)
}

func (r *applicationRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.project_id = $1 ORDER BY a.applied_at DESC`, projectID)
}

func (r *applicationRepo) CountByContractor(ctx context.Context, contractorID, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM worker_applications WHERE contractor_id = $1 AND status = $2`,
		contractorID, status,
	).Scan(&count)
	return count, err
}

// UpdateStatus overwrites the status without looking at the previous value
func (r *applicationRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Application, error) {
	result, err := r.db.Exec(ctx, `UPDATE worker_applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *applicationRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *app)
	}
	return applications, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		app      domain.Application
		snapshot []byte
	)
	err := row.Scan(
		&app.ID, &app.Worker, &app.Project, &app.Contractor, &app.Status, pq.Array(&app.Skills),
		&app.Experience, &app.Availability, &app.CoverLetter, &app.ExpectedRate,
		&snapshot, &app.AppliedAt,
		&app.WorkerName, &app.ProjectTitle,
	)
	if err != nil {
		return nil, err
	}
	if len(snapshot) > 0 {
		app.ContractorSnapshot = &domain.ContractorSnapshot{}
		if err := json.Unmarshal(snapshot, app.ContractorSnapshot); err != nil {
			return nil, err
		}
	}
	return &app, nil
}
