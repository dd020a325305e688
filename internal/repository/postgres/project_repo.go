package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"labournet-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// projectSelect joins the poster from whichever collection posted_by_role names
const projectSelect = `
	SELECT
		p.id, p.title, p.location, p.employment_type, p.hourly_rate, p.job_description,
		p.requirements, p.company, p.project_type, p.timeline, p.expires_after, p.posted_date,
		p.status, p.posted_by, p.posted_by_role, p.created_at, p.updated_at,
		COALESCE(c.id, b.id) AS poster_id,
		COALESCE(c.full_name, b.full_name),
		COALESCE(c.email, b.email),
		COALESCE(c.business_name, b.business_name),
		c.business_type,
		COALESCE(c.years_of_experience, b.years_of_experience),
		COALESCE(c.license_number, b.license_number),
		COALESCE(c.insurance_info, b.insurance_info),
		c.project_types,
		COALESCE(c.phone_number, b.phone_number)
	FROM projects p
	LEFT JOIN contractors c ON p.posted_by_role = 'contractor' AND c.id = p.posted_by
	LEFT JOIN builders b ON p.posted_by_role = 'professional' AND b.id = p.posted_by`

type projectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) domain.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) error {
	now := time.Now()
	p.ID = uuid.NewString()
	p.PostedDate = now
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectStatusActive
	}

	query := `INSERT INTO projects (id, title, location, employment_type, hourly_rate, job_description,
			requirements, company, project_type, timeline, expires_after, posted_date, status,
			posted_by, posted_by_role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Title, p.Location, p.EmploymentType, p.HourlyRate, p.JobDescription,
		p.Requirements, p.Company, p.ProjectType, p.Timeline, p.ExpiresAfter, p.PostedDate, p.Status,
		p.PostedBy, string(p.PostedByRole), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRow(ctx, projectSelect+` WHERE p.id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *projectRepo) List(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.PostedBy != "" {
		args = append(args, filter.PostedBy)
		conds = append(conds, fmt.Sprintf("p.posted_by = $%d", len(args)))
	}
	if filter.PostedByRole != "" {
		args = append(args, string(filter.PostedByRole))
		conds = append(conds, fmt.Sprintf("p.posted_by_role = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("p.status = $%d", len(args)))
	}

	query := projectSelect
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Update writes only the supplied columns and returns the refreshed document
func (r *projectRepo) Update(ctx context.Context, id string, u domain.ProjectUpdate) (*domain.Project, error) {
	sets := []string{}
	args := []interface{}{}
	set := func(column string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	set("title", u.Title)
	set("location", u.Location)
	set("employment_type", u.EmploymentType)
	set("hourly_rate", u.HourlyRate)
	set("job_description", u.JobDescription)
	set("requirements", u.Requirements)
	set("company", u.Company)
	set("project_type", u.ProjectType)
	set("timeline", u.Timeline)
	set("expires_after", u.ExpiresAfter)
	set("status", u.Status)

	args = append(args, time.Now())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p        domain.Project
		role     string
		posterID *string
		fullName, email, businessName, businessType,
		licenseNumber, insuranceInfo, projectTypes, phoneNumber *string
		years *float64
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Location, &p.EmploymentType, &p.HourlyRate, &p.JobDescription,
		&p.Requirements, &p.Company, &p.ProjectType, &p.Timeline, &p.ExpiresAfter, &p.PostedDate,
		&p.Status, &p.PostedBy, &role, &p.CreatedAt, &p.UpdatedAt,
		&posterID, &fullName, &email, &businessName, &businessType,
		&years, &licenseNumber, &insuranceInfo, &projectTypes, &phoneNumber,
	)
	if err != nil {
		return nil, err
	}
	p.PostedByRole = domain.Role(role)

	if posterID != nil {
		p.ContractorDetails = &domain.PosterDetails{
			ID:            *posterID,
			FullName:      deref(fullName),
			Email:         deref(email),
			BusinessName:  deref(businessName),
			BusinessType:  deref(businessType),
			LicenseNumber: deref(licenseNumber),
			InsuranceInfo: deref(insuranceInfo),
			ProjectTypes:  deref(projectTypes),
			PhoneNumber:   deref(phoneNumber),
		}
		if years != nil {
			p.ContractorDetails.YearsOfExperience = *years
		}
	}
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
