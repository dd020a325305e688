package v1

import (
	"errors"
	"io"
	"net/http"

	"labournet-backend/internal/delivery/http/middleware"
	"labournet-backend/internal/delivery/http/response"
	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUC domain.DashboardUsecase
}

func NewDashboardHandler(protected *gin.RouterGroup, dashboardUC domain.DashboardUsecase) {
	handler := &DashboardHandler{dashboardUC: dashboardUC}

	dashboard := protected.Group("/worker-dashboard", middleware.RequireRole(domain.RoleWorker))
	{
		dashboard.GET("/jobs", handler.Jobs)
		dashboard.POST("/jobs/:id/apply", handler.Apply)
		dashboard.GET("/active-jobs", handler.ActiveJobs)
	}
}

// Jobs godoc
// @Summary      Worker job board
// @Description  Postings the worker has not applied to. preview returns the first three.
// @Tags         dashboard
// @Produce      json
// @Param        view  query     string  false  "preview or all"  default(all)
// @Success      200   {object}  domain.JobBoard
// @Failure      400   {object}  response.Response
// @Router       /worker-dashboard/jobs [get]
// @Security     BearerAuth
func (h *DashboardHandler) Jobs(c *gin.Context) {
	var preview bool
	switch c.DefaultQuery("view", "all") {
	case "preview":
		preview = true
	case "all":
	default:
		c.Error(apperror.BadRequest("view must be preview or all"))
		return
	}

	board, err := h.dashboardUC.JobBoard(c, c.GetString(string(domain.KeyUserID)), preview)
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, board)
}

// Apply godoc
// @Summary      Apply from the dashboard
// @Description  Stores a pending application with a copy of the poster's profile
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true   "Project ID"
// @Param        body  body      domain.DashboardApplyInput  false  "Optional cover letter and rate"
// @Success      201   {object}  domain.Application
// @Failure      404   {object}  response.Response
// @Router       /worker-dashboard/jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *DashboardHandler) Apply(c *gin.Context) {
	var req domain.DashboardApplyInput
	// The body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.dashboardUC.Apply(c, c.GetString(string(domain.KeyUserID)), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusCreated, app)
}

// ActiveJobs godoc
// @Summary      Active jobs
// @Description  The worker's pending and accepted applications with their postings
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   domain.ActiveJob
// @Router       /worker-dashboard/active-jobs [get]
// @Security     BearerAuth
func (h *DashboardHandler) ActiveJobs(c *gin.Context) {
	jobs, err := h.dashboardUC.ActiveJobs(c, c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, jobs)
}
