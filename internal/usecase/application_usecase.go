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

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	cache           cache.Store
	validate        *validator.Validate
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	store cache.Store,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		cache:           store,
		validate:        validate,
	}
}

// CreateApplication stores a new pending application for the calling worker.
// Neither the project nor the contractor reference is checked.
func (uc *applicationUsecase) CreateApplication(ctx context.Context, workerID string, in domain.CreateApplicationInput) (*domain.Application, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest("Validation error").WithDetails("details", validation.FieldErrors(err))
	}

	app := &domain.Application{
		Worker:       workerID,
		Project:      in.Project,
		Contractor:   in.Contractor,
		Status:       domain.ApplicationStatusPending,
		Skills:       in.Skills,
		Experience:   in.Experience,
		Availability: in.Availability,
		CoverLetter:  in.CoverLetter,
		ExpectedRate: in.ExpectedRate,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}

	invalidateActiveJobs(ctx, uc.cache, workerID)
	return app, nil
}

func (uc *applicationUsecase) ListWorkerApplications(ctx context.Context, workerID string) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) ListByContractor(ctx context.Context, contractorID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.ListByContractor(ctx, contractorID, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) CountPending(ctx context.Context, contractorID string) (int64, error) {
	count, err := uc.applicationRepo.CountByContractor(ctx, contractorID, domain.ApplicationStatusPending)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

func (uc *applicationUsecase) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, applicationError(err)
	}
	return app, nil
}

func (uc *applicationUsecase) AcceptApplication(ctx context.Context, callerID, applicationID string) (*domain.Application, error) {
	return uc.decide(ctx, callerID, applicationID, domain.ApplicationStatusAccepted)
}

func (uc *applicationUsecase) RejectApplication(ctx context.Context, callerID, applicationID string) (*domain.Application, error) {
	return uc.decide(ctx, callerID, applicationID, domain.ApplicationStatusRejected)
}

// decide is the owner-gated status change. The current status is not consulted,
// so a later decision overwrites an earlier one.
func (uc *applicationUsecase) decide(ctx context.Context, callerID, applicationID, status string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, applicationError(err)
	}

	if app.Contractor != callerID {
		logger.Log.WithFields(logrus.Fields{
			"application_id": applicationID,
			"caller_id":      callerID,
		}).Warn("application decision by non-owner refused")
		return nil, apperror.Forbidden("Not authorized")
	}

	updated, err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, applicationError(err)
	}

	invalidateActiveJobs(ctx, uc.cache, app.Worker)
	return updated, nil
}

// PatchStatus overwrites the status with any non-empty value. No identity check.
func (uc *applicationUsecase) PatchStatus(ctx context.Context, applicationID, status string) (*domain.Application, error) {
	if strings.TrimSpace(status) == "" {
		return nil, apperror.BadRequest("Status is required")
	}

	updated, err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, applicationError(err)
	}

	invalidateActiveJobs(ctx, uc.cache, updated.Worker)
	return updated, nil
}

func applicationError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Application not found")
	}
	return apperror.Internal(err)
}
