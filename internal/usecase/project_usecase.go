package usecase

import (
	"context"
	"errors"
	"strings"

	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"
	"labournet-backend/pkg/cache"
	"labournet-backend/pkg/logger"
	"labournet-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type projectUsecase struct {
	projectRepo     domain.ProjectRepository
	accountRepo     domain.AccountRepository
	applicationRepo domain.ApplicationRepository
	cache           cache.Store
	validate        *validator.Validate
}

// NewProjectUsecase creates a new project usecase. The application repository
// and cache are used to evict applicants' active-jobs views when a posting changes.
func NewProjectUsecase(
	projectRepo domain.ProjectRepository,
	accountRepo domain.AccountRepository,
	applicationRepo domain.ApplicationRepository,
	store cache.Store,
	validate *validator.Validate,
) domain.ProjectUsecase {
	return &projectUsecase{
		projectRepo:     projectRepo,
		accountRepo:     accountRepo,
		applicationRepo: applicationRepo,
		cache:           store,
		validate:        validate,
	}
}

func (u *projectUsecase) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	projects, err := u.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return projects, nil
}

func (u *projectUsecase) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, projectError(err)
	}
	return project, nil
}

// CreateProject persists a posting only when its poster account exists
func (u *projectUsecase) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	trimProject(project)

	// 1. Resolve the poster
	if project.PostedByRole == "" {
		project.PostedByRole = domain.RoleContractor
	}
	if project.PostedByRole != domain.RoleContractor && project.PostedByRole != domain.RoleBuilder {
		return nil, apperror.BadRequest("Invalid poster role")
	}
	if err := u.ensurePoster(ctx, project.Poster()); err != nil {
		return nil, err
	}

	// 2. Validate the posting
	if err := u.validate.Struct(project); err != nil {
		return nil, apperror.BadRequest("Validation error").WithDetails("details", validation.FieldErrors(err))
	}

	// 3. Persist and reload with poster details
	if err := u.projectRepo.Create(ctx, project); err != nil {
		return nil, apperror.Internal(err)
	}
	logger.Log.WithFields(logrus.Fields{
		"project_id": project.ID,
		"posted_by":  project.PostedBy,
		"role":       project.PostedByRole,
	}).Info("project created")

	created, err := u.projectRepo.GetByID(ctx, project.ID)
	if err != nil {
		return nil, projectError(err)
	}
	return created, nil
}

func (u *projectUsecase) ensurePoster(ctx context.Context, poster domain.AccountRef) error {
	notFound := apperror.NotFound("Contractor not found").
		WithDetails("details", "Please complete your contractor profile before posting a job")
	if poster.ID == "" {
		return notFound
	}
	if _, err := u.accountRepo.GetByID(ctx, poster.Role, poster.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound
		}
		return apperror.Internal(err)
	}
	return nil
}

// UpdateProject applies the supplied fields only. Any caller may update any project.
func (u *projectUsecase) UpdateProject(ctx context.Context, id string, update domain.ProjectUpdate) (*domain.Project, error) {
	update = trimUpdate(update)
	// Unlike create there is no default to fall back on, so an empty status is refused
	if update.Status != nil {
		if err := u.validate.Var(*update.Status, "required,project_status"); err != nil {
			return nil, apperror.BadRequest("Validation error").
				WithDetails("details", map[string]string{"status": "must be one of: active, completed, cancelled"})
		}
	}
	if blank := blankUpdateFields(update); len(blank) > 0 {
		return nil, apperror.BadRequest("Validation error").WithDetails("details", blank)
	}

	project, err := u.projectRepo.Update(ctx, id, update)
	if err != nil {
		return nil, projectError(err)
	}
	u.evictApplicants(ctx, id)
	return project, nil
}

func (u *projectUsecase) DeleteProject(ctx context.Context, id string) error {
	if err := u.projectRepo.Delete(ctx, id); err != nil {
		return projectError(err)
	}
	logger.Log.WithField("project_id", id).Info("project deleted")
	u.evictApplicants(ctx, id)
	return nil
}

// evictApplicants drops the active-jobs view of every worker who applied to the
// project, since those views embed the project. Failures are logged only.
func (u *projectUsecase) evictApplicants(ctx context.Context, projectID string) {
	if u.applicationRepo == nil || u.cache == nil {
		return
	}
	apps, err := u.applicationRepo.ListByProject(ctx, projectID)
	if err != nil {
		logger.Log.WithError(err).WithField("project_id", projectID).Warn("failed to list applicants for cache eviction")
		return
	}
	seen := make(map[string]bool, len(apps))
	for _, app := range apps {
		if seen[app.Worker] {
			continue
		}
		seen[app.Worker] = true
		invalidateActiveJobs(ctx, u.cache, app.Worker)
	}
}

func trimProject(p *domain.Project) {
	for _, f := range []*string{
		&p.Title, &p.Location, &p.EmploymentType, &p.HourlyRate, &p.JobDescription,
		&p.Requirements, &p.Company, &p.ProjectType, &p.Timeline, &p.ExpiresAfter,
		&p.Status, &p.PostedBy,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// trimUpdate returns a copy whose supplied fields are trimmed; the caller's strings are left alone
func trimUpdate(u domain.ProjectUpdate) domain.ProjectUpdate {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	return domain.ProjectUpdate{
		Title:          trim(u.Title),
		Location:       trim(u.Location),
		EmploymentType: trim(u.EmploymentType),
		HourlyRate:     trim(u.HourlyRate),
		JobDescription: trim(u.JobDescription),
		Requirements:   trim(u.Requirements),
		Company:        trim(u.Company),
		ProjectType:    trim(u.ProjectType),
		Timeline:       trim(u.Timeline),
		ExpiresAfter:   trim(u.ExpiresAfter),
		Status:         trim(u.Status),
	}
}

// blankUpdateFields reports required fields that were supplied but are empty after trimming
func blankUpdateFields(u domain.ProjectUpdate) map[string]string {
	blank := map[string]string{}
	for name, v := range map[string]*string{
		"title":          u.Title,
		"location":       u.Location,
		"employmentType": u.EmploymentType,
		"hourlyRate":     u.HourlyRate,
		"jobDescription": u.JobDescription,
		"company":        u.Company,
		"projectType":    u.ProjectType,
		"timeline":       u.Timeline,
		"expiresAfter":   u.ExpiresAfter,
	} {
		if v != nil && *v == "" {
			blank[name] = "is required"
		}
	}
	return blank
}

func projectError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Project not found")
	}
	return apperror.Internal(err)
}
