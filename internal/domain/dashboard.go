package domain

import "context"

// DashboardPreviewSize is how many postings the dashboard preview shows
const DashboardPreviewSize = 3

// DefaultCoverLetter is used when a worker applies from the dashboard without one
const DefaultCoverLetter = "I am interested in working on this project"

// JobBoard is the worker dashboard listing
type JobBoard struct {
	Jobs  []Project `json:"jobs"`
	Total int       `json:"total"`
	View  string    `json:"view"`
}

// ActiveJob is one entry of a worker's active jobs view
type ActiveJob struct {
	Application Application `json:"application"`
	Project     *Project    `json:"project,omitempty"`
}

type DashboardApplyInput struct {
	CoverLetter  string `json:"coverLetter"`
	ExpectedRate string `json:"expectedRate"`
}

type DashboardUsecase interface {
	JobBoard(ctx context.Context, workerID string, preview bool) (*JobBoard, error)
	Apply(ctx context.Context, workerID, projectID string, in DashboardApplyInput) (*Application, error)
	ActiveJobs(ctx context.Context, workerID string) ([]ActiveJob, error)
}
