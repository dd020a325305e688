package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application links a worker to a project and the contractor who posted it.
// References are stored as-is and are not checked against their collections.
type Application struct {
	ID           string   `json:"id"`
	Worker       string   `json:"worker"`
	Project      string   `json:"project"`
	Contractor   string   `json:"contractor"`
	Status       string   `json:"status"` // pending → accepted / rejected
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience,omitempty"`
	Availability string   `json:"availability,omitempty"`
	CoverLetter  string   `json:"coverLetter,omitempty"`
	ExpectedRate string   `json:"expectedRate,omitempty"`
	// Copy of the contractor profile at apply time; later profile edits do not change it
	ContractorSnapshot *ContractorSnapshot `json:"contractorSnapshot,omitempty"`
	AppliedAt          time.Time           `json:"appliedAt"`

	// Joined data for list responses
	WorkerName   *string `json:"workerName,omitempty"`
	ProjectTitle *string `json:"projectTitle,omitempty"`
}

type ContractorSnapshot struct {
	BusinessName      string  `json:"businessName"`
	BusinessType      string  `json:"businessType,omitempty"`
	YearsOfExperience float64 `json:"yearsOfExperience"`
	LicenseNumber     string  `json:"licenseNumber"`
	InsuranceInfo     string  `json:"insuranceInfo"`
	ProjectTypes      string  `json:"projectTypes,omitempty"`
	PhoneNumber       string  `json:"phoneNumber"`
}

// ApplicationFilter narrows contractor listings; empty Status means all
type ApplicationFilter struct {
	Status string
}

type CreateApplicationInput struct {
	Project      string   `json:"project" validate:"required"`
	Contractor   string   `json:"contractor" validate:"required"`
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience"`
	Availability string   `json:"availability"`
	CoverLetter  string   `json:"coverLetter"`
	ExpectedRate string   `json:"expectedRate"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	ListByContractor(ctx context.Context, contractorID string, filter ApplicationFilter) ([]Application, error)
	ListByWorker(ctx context.Context, workerID string) ([]Application, error)
	ListByProject(ctx context.Context, projectID string) ([]Application, error)
	CountByContractor(ctx context.Context, contractorID, status string) (int64, error)
	// UpdateStatus writes status unconditionally and returns the stored document
	UpdateStatus(ctx context.Context, id, status string) (*Application, error)
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Worker operations
	CreateApplication(ctx context.Context, workerID string, in CreateApplicationInput) (*Application, error)
	ListWorkerApplications(ctx context.Context, workerID string) ([]Application, error)

	// Contractor operations
	ListByContractor(ctx context.Context, contractorID string, filter ApplicationFilter) ([]Application, error)
	CountPending(ctx context.Context, contractorID string) (int64, error)
	GetApplication(ctx context.Context, id string) (*Application, error)
	AcceptApplication(ctx context.Context, callerID, applicationID string) (*Application, error)
	RejectApplication(ctx context.Context, callerID, applicationID string) (*Application, error)
	PatchStatus(ctx context.Context, applicationID, status string) (*Application, error)
}
