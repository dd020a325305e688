package usecase

import (
	"context"
	"errors"
	"time"

	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"
	"labournet-backend/pkg/cache"
	"labournet-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

func activeJobsKey(workerID string) string {
	return "active-jobs:" + workerID
}

// invalidateActiveJobs drops the cached view. A cache failure is logged only;
// the database stays authoritative and the entry expires on its own.
func invalidateActiveJobs(ctx context.Context, store cache.Store, workerID string) {
	if store == nil || workerID == "" {
		return
	}
	if err := store.Delete(ctx, activeJobsKey(workerID)); err != nil {
		logger.Log.WithError(err).WithField("worker_id", workerID).Warn("failed to invalidate active jobs cache")
	}
}

type dashboardUsecase struct {
	projectRepo     domain.ProjectRepository
	applicationRepo domain.ApplicationRepository
	cache           cache.Store
	ttl             time.Duration
}

func NewDashboardUsecase(
	projectRepo domain.ProjectRepository,
	applicationRepo domain.ApplicationRepository,
	store cache.Store,
	ttl time.Duration,
) domain.DashboardUsecase {
	return &dashboardUsecase{
		projectRepo:     projectRepo,
		applicationRepo: applicationRepo,
		cache:           store,
		ttl:             ttl,
	}
}

// JobBoard lists active postings whose poster still exists and that the worker
// has not applied to yet.
func (u *dashboardUsecase) JobBoard(ctx context.Context, workerID string, preview bool) (*domain.JobBoard, error) {
	projects, err := u.projectRepo.List(ctx, domain.ProjectFilter{Status: domain.ProjectStatusActive})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	applied, err := u.applicationRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	seen := make(map[string]struct{}, len(applied))
	for _, app := range applied {
		seen[app.Project] = struct{}{}
	}

	jobs := []domain.Project{}
	for _, p := range projects {
		if p.ContractorDetails == nil {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		jobs = append(jobs, p)
	}

	board := &domain.JobBoard{Total: len(jobs), View: "all"}
	if preview {
		board.View = "preview"
		if len(jobs) > domain.DashboardPreviewSize {
			jobs = jobs[:domain.DashboardPreviewSize]
		}
	}
	board.Jobs = jobs
	return board, nil
}

// Apply creates a pending application carrying a copy of the poster's profile
func (u *dashboardUsecase) Apply(ctx context.Context, workerID, projectID string, in domain.DashboardApplyInput) (*domain.Application, error) {
	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, projectError(err)
	}
	details := project.ContractorDetails
	if details == nil {
		return nil, apperror.NotFound("Contractor not found")
	}

	app := &domain.Application{
		Worker:       workerID,
		Project:      project.ID,
		Contractor:   project.PostedBy,
		Status:       domain.ApplicationStatusPending,
		CoverLetter:  in.CoverLetter,
		ExpectedRate: in.ExpectedRate,
		ContractorSnapshot: &domain.ContractorSnapshot{
			BusinessName:      details.BusinessName,
			BusinessType:      details.BusinessType,
			YearsOfExperience: details.YearsOfExperience,
			LicenseNumber:     details.LicenseNumber,
			InsuranceInfo:     details.InsuranceInfo,
			ProjectTypes:      details.ProjectTypes,
			PhoneNumber:       details.PhoneNumber,
		},
	}
	if app.CoverLetter == "" {
		app.CoverLetter = domain.DefaultCoverLetter
	}
	if app.ExpectedRate == "" {
		app.ExpectedRate = project.HourlyRate
	}

	if err := u.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	logger.Log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"worker_id":      workerID,
		"project_id":     project.ID,
	}).Info("worker applied from dashboard")

	invalidateActiveJobs(ctx, u.cache, workerID)
	return app, nil
}

// ActiveJobs returns the worker's pending and accepted applications, read through the cache
func (u *dashboardUsecase) ActiveJobs(ctx context.Context, workerID string) ([]domain.ActiveJob, error) {
	key := activeJobsKey(workerID)

	var cached []domain.ActiveJob
	found, err := u.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("cache read failed")
	} else if found {
		return cached, nil
	}

	apps, err := u.applicationRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	jobs := []domain.ActiveJob{}
	for _, app := range apps {
		if app.Status != domain.ApplicationStatusPending && app.Status != domain.ApplicationStatusAccepted {
			continue
		}
		job := domain.ActiveJob{Application: app}
		project, err := u.projectRepo.GetByID(ctx, app.Project)
		switch {
		case err == nil:
			job.Project = project
		case !errors.Is(err, domain.ErrNotFound):
			return nil, apperror.Internal(err)
		}
		jobs = append(jobs, job)
	}

	if err := u.cache.Set(ctx, key, jobs, u.ttl); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
	return jobs, nil
}
