package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labournet-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// Each role is its own table; the repository dispatches on the role tag.
var accountTables = map[domain.Role]string{
	domain.RoleWorker:     "workers",
	domain.RoleContractor: "contractors",
	domain.RoleBuilder:    "builders",
}

const (
	workerColumns = `id, email, password_hash, full_name, created_at, updated_at,
		years_of_experience, skills, certifications, phone_number, hourly_rate, availability, description, address`
	contractorColumns = `id, email, password_hash, full_name, created_at, updated_at,
		business_name, business_license, business_type, years_of_experience, license_number, insurance_info,
		project_types, phone_number, address, team_size`
	builderColumns = `id, email, password_hash, full_name, created_at, updated_at,
		business_name, business_license, years_of_experience, license_number, insurance_info, phone_number, address`
)

type accountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) domain.AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, a *domain.Account) error {
	now := time.Now()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now

	var err error
	switch {
	case a.Role == domain.RoleWorker && a.Worker != nil:
		p := a.Worker
		_, err = r.db.Exec(ctx, `INSERT INTO workers (`+workerColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			a.ID, a.Email, a.PasswordHash, a.FullName, a.CreatedAt, a.UpdatedAt,
			p.YearsOfExperience, pq.Array(p.Skills), pq.Array(p.Certifications), p.PhoneNumber,
			p.HourlyRate, p.Availability, p.Description, p.Address)
	case a.Role == domain.RoleContractor && a.Contractor != nil:
		p := a.Contractor
		_, err = r.db.Exec(ctx, `INSERT INTO contractors (`+contractorColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			a.ID, a.Email, a.PasswordHash, a.FullName, a.CreatedAt, a.UpdatedAt,
			p.BusinessName, p.BusinessLicense, p.BusinessType, p.YearsOfExperience, p.LicenseNumber,
			p.InsuranceInfo, p.ProjectTypes, p.PhoneNumber, p.Address, p.TeamSize)
	case a.Role == domain.RoleBuilder && a.Builder != nil:
		p := a.Builder
		_, err = r.db.Exec(ctx, `INSERT INTO builders (`+builderColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			a.ID, a.Email, a.PasswordHash, a.FullName, a.CreatedAt, a.UpdatedAt,
			p.BusinessName, p.BusinessLicense, p.YearsOfExperience, p.LicenseNumber,
			p.InsuranceInfo, p.PhoneNumber, p.Address)
	default:
		return fmt.Errorf("account %q has no profile for its role", a.Role)
	}

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, role domain.Role, id string) (*domain.Account, error) {
	return r.getOne(ctx, role, "id", id)
}

func (r *accountRepo) GetByEmail(ctx context.Context, role domain.Role, email string) (*domain.Account, error) {
	return r.getOne(ctx, role, "email", email)
}

// EmailExists checks every collection, not only the one being registered into
func (r *accountRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM contractors WHERE email = $1)
		OR EXISTS(SELECT 1 FROM workers WHERE email = $1)
		OR EXISTS(SELECT 1 FROM builders WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *accountRepo) getOne(ctx context.Context, role domain.Role, column, value string) (*domain.Account, error) {
	if _, ok := accountTables[role]; !ok {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	a := &domain.Account{Role: role}
	var (
		query string
		dest  []interface{}
	)
	common := []interface{}{&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.CreatedAt, &a.UpdatedAt}

	switch role {
	case domain.RoleWorker:
		p := &domain.WorkerProfile{}
		a.Worker = p
		query = `SELECT ` + workerColumns + ` FROM workers WHERE ` + column + ` = $1`
		dest = append(common, &p.YearsOfExperience, pq.Array(&p.Skills), pq.Array(&p.Certifications),
			&p.PhoneNumber, &p.HourlyRate, &p.Availability, &p.Description, &p.Address)
	case domain.RoleContractor:
		p := &domain.ContractorProfile{}
		a.Contractor = p
		query = `SELECT ` + contractorColumns + ` FROM contractors WHERE ` + column + ` = $1`
		dest = append(common, &p.BusinessName, &p.BusinessLicense, &p.BusinessType, &p.YearsOfExperience,
			&p.LicenseNumber, &p.InsuranceInfo, &p.ProjectTypes, &p.PhoneNumber, &p.Address, &p.TeamSize)
	case domain.RoleBuilder:
		p := &domain.BuilderProfile{}
		a.Builder = p
		query = `SELECT ` + builderColumns + ` FROM builders WHERE ` + column + ` = $1`
		dest = append(common, &p.BusinessName, &p.BusinessLicense, &p.YearsOfExperience,
			&p.LicenseNumber, &p.InsuranceInfo, &p.PhoneNumber, &p.Address)
	}

	if err := r.db.QueryRow(ctx, query, value).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
