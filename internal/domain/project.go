package domain

import (
	"context"
	"time"
)

// Project status constants
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Project is a job posting advertised by a contractor or builder
type Project struct {
	ID             string    `json:"id"`
	Title          string    `json:"title" validate:"required"`
	Location       string    `json:"location" validate:"required"`
	EmploymentType string    `json:"employmentType" validate:"required"`
	HourlyRate     string    `json:"hourlyRate" validate:"required"`
	JobDescription string    `json:"jobDescription" validate:"required"`
	Requirements   string    `json:"requirements,omitempty"`
	Company        string    `json:"company" validate:"required"`
	ProjectType    string    `json:"projectType" validate:"required"`
	Timeline       string    `json:"timeline" validate:"required"`
	ExpiresAfter   string    `json:"expiresAfter" validate:"required"`
	PostedDate     time.Time `json:"postedDate"`
	Status         string    `json:"status" validate:"project_status"`
	PostedBy       string    `json:"postedBy" validate:"required"`
	PostedByRole   Role      `json:"postedByRole" validate:"required"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Populated from the poster's account, nil when the poster no longer exists
	ContractorDetails *PosterDetails `json:"contractorDetails,omitempty"`
}

func (p *Project) Poster() AccountRef {
	return AccountRef{Role: p.PostedByRole, ID: p.PostedBy}
}

// PosterDetails is the denormalized poster profile embedded in project responses
type PosterDetails struct {
	ID                string  `json:"id"`
	FullName          string  `json:"fullName"`
	Email             string  `json:"email"`
	BusinessName      string  `json:"businessName"`
	BusinessType      string  `json:"businessType,omitempty"`
	YearsOfExperience float64 `json:"yearsOfExperience"`
	LicenseNumber     string  `json:"licenseNumber"`
	InsuranceInfo     string  `json:"insuranceInfo"`
	ProjectTypes      string  `json:"projectTypes,omitempty"`
	PhoneNumber       string  `json:"phoneNumber"`
}

// ProjectFilter narrows List; zero value lists everything
type ProjectFilter struct {
	PostedBy     string
	PostedByRole Role
	Status       string
}

// ProjectUpdate carries only the fields supplied by the caller
type ProjectUpdate struct {
	Title          *string `json:"title"`
	Location       *string `json:"location"`
	EmploymentType *string `json:"employmentType"`
	HourlyRate     *string `json:"hourlyRate"`
	JobDescription *string `json:"jobDescription"`
	Requirements   *string `json:"requirements"`
	Company        *string `json:"company"`
	ProjectType    *string `json:"projectType"`
	Timeline       *string `json:"timeline"`
	ExpiresAfter   *string `json:"expiresAfter"`
	Status         *string `json:"status"`
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]Project, error)
	Update(ctx context.Context, id string, update ProjectUpdate) (*Project, error)
	Delete(ctx context.Context, id string) error
}

type ProjectUsecase interface {
	ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	CreateProject(ctx context.Context, project *Project) (*Project, error)
	UpdateProject(ctx context.Context, id string, update ProjectUpdate) (*Project, error)
	DeleteProject(ctx context.Context, id string) error
}
