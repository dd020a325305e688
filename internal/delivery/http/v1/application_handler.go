package v1

import (
	"net/http"

	"labournet-backend/internal/delivery/http/middleware"
	"labournet-backend/internal/delivery/http/response"
	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	apps := r.Group("/worker-applications")
	{
		// Worker routes
		apps.POST("", middleware.RequireRole(domain.RoleWorker), handler.Create)
		apps.GET("/mine", middleware.RequireRole(domain.RoleWorker), handler.ListMine)

		// Contractor routes
		apps.GET("/contractor/count", handler.CountPending)
		apps.GET("/contractor/:id", handler.ListByContractor)
		apps.PUT("/:id/accept", handler.Accept)
		apps.PUT("/:id/reject", handler.Reject)

		apps.GET("/:id", handler.GetDetail)
		apps.PATCH("/:id/status", handler.PatchStatus)
	}
}

// Create godoc
// @Summary      Apply to a posting
// @Description  The authenticated worker becomes the applicant. References are not checked.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateApplicationInput  true  "Application"
// @Success      201   {object}  domain.Application
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /worker-applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.CreateApplicationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.applicationUC.CreateApplication(c, userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusCreated, app)
}

// ListMine godoc
// @Summary      My applications
// @Tags         applications
// @Produce      json
// @Success      200  {array}   domain.Application
// @Failure      401  {object}  response.Response
// @Router       /worker-applications/mine [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationUC.ListWorkerApplications(c, c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, apps)
}

// ListByContractor godoc
// @Summary      Applications for a contractor
// @Description  Newest first, every status unless status is given
// @Tags         applications
// @Produce      json
// @Param        id      path      string  true   "Contractor ID"
// @Param        status  query     string  false  "pending, accepted or rejected"
// @Success      200     {array}   domain.Application
// @Failure      401     {object}  response.Response
// @Router       /worker-applications/contractor/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByContractor(c *gin.Context) {
	filter := domain.ApplicationFilter{Status: c.Query("status")}

	apps, err := h.applicationUC.ListByContractor(c, c.Param("id"), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, apps)
}

// CountPending godoc
// @Summary      Pending application count
// @Description  For the authenticated contractor
// @Tags         applications
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Failure      401  {object}  response.Response
// @Router       /worker-applications/contractor/count [get]
// @Security     BearerAuth
func (h *ApplicationHandler) CountPending(c *gin.Context) {
	count, err := h.applicationUC.CountPending(c, c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, gin.H{"count": count})
}

// GetDetail godoc
// @Summary      Get application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  domain.Application
// @Failure      404  {object}  response.Response
// @Router       /worker-applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetail(c *gin.Context) {
	app, err := h.applicationUC.GetApplication(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, app)
}

// Accept godoc
// @Summary      Accept application
// @Description  Only the contractor named on the application may accept it
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  domain.Application
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /worker-applications/{id}/accept [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Accept(c *gin.Context) {
	app, err := h.applicationUC.AcceptApplication(c, c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, app)
}

// Reject godoc
// @Summary      Reject application
// @Description  Only the contractor named on the application may reject it
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  domain.Application
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /worker-applications/{id}/reject [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Reject(c *gin.Context) {
	app, err := h.applicationUC.RejectApplication(c, c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, app)
}

type PatchStatusRequest struct {
	Status string `json:"status" example:"accepted"`
}

// PatchStatus godoc
// @Summary      Overwrite application status
// @Description  Stores any non-empty status as given
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Application ID"
// @Param        body  body      PatchStatusRequest  true  "New status"
// @Success      200   {object}  domain.Application
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /worker-applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) PatchStatus(c *gin.Context) {
	var req PatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.applicationUC.PatchStatus(c, c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, app)
}
