package v1

import (
	"net/http"

	"labournet-backend/internal/delivery/http/response"
	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectUC domain.ProjectUsecase
}

// NewProjectHandler registers posting routes. They are public: the poster is
// named in the body and edits carry no ownership check.
func NewProjectHandler(public *gin.RouterGroup, projectUC domain.ProjectUsecase) {
	handler := &ProjectHandler{projectUC: projectUC}

	projects := public.Group("/projects")
	{
		projects.GET("", handler.List)
		projects.GET("/:id", handler.GetDetails)
		projects.POST("", handler.Create)
		projects.PUT("/:id", handler.Update)
		projects.DELETE("/:id", handler.Delete)
	}
}

type CreateProjectRequest struct {
	Title          string `json:"title"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
	HourlyRate     string `json:"hourlyRate"`
	JobDescription string `json:"jobDescription"`
	Requirements   string `json:"requirements"`
	Company        string `json:"company"`
	ProjectType    string `json:"projectType"`
	Timeline       string `json:"timeline"`
	ExpiresAfter   string `json:"expiresAfter"`
	Status         string `json:"status"`
	PostedBy       string `json:"postedBy"`
	PostedByRole   string `json:"postedByRole" example:"contractor"`
	// Older clients send only the contractor id
	Contractor string `json:"contractor"`
}

func (r CreateProjectRequest) toProject() *domain.Project {
	p := &domain.Project{
		Title:          r.Title,
		Location:       r.Location,
		EmploymentType: r.EmploymentType,
		HourlyRate:     r.HourlyRate,
		JobDescription: r.JobDescription,
		Requirements:   r.Requirements,
		Company:        r.Company,
		ProjectType:    r.ProjectType,
		Timeline:       r.Timeline,
		ExpiresAfter:   r.ExpiresAfter,
		Status:         r.Status,
		PostedBy:       r.PostedBy,
		PostedByRole:   domain.Role(r.PostedByRole),
	}
	if p.PostedBy == "" && r.Contractor != "" {
		p.PostedBy = r.Contractor
		p.PostedByRole = domain.RoleContractor
	}
	if role, ok := domain.ParseRole(r.PostedByRole); ok {
		p.PostedByRole = role
	}
	return p
}

// List godoc
// @Summary      List postings
// @Description  Newest first. Filter by poster with postedBy, contractor or builder.
// @Tags         projects
// @Produce      json
// @Param        postedBy    query     string  false  "Poster id (any role)"
// @Param        contractor  query     string  false  "Contractor id"
// @Param        builder     query     string  false  "Builder id"
// @Param        status      query     string  false  "active, completed or cancelled"
// @Success      200         {array}   domain.Project
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	filter := domain.ProjectFilter{
		PostedBy: c.Query("postedBy"),
		Status:   c.Query("status"),
	}
	if id := c.Query("contractor"); id != "" {
		filter.PostedBy, filter.PostedByRole = id, domain.RoleContractor
	}
	if id := c.Query("builder"); id != "" {
		filter.PostedBy, filter.PostedByRole = id, domain.RoleBuilder
	}

	projects, err := h.projectUC.ListProjects(c, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, projects)
}

// GetDetails godoc
// @Summary      Get posting
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  response.Response
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetDetails(c *gin.Context) {
	project, err := h.projectUC.GetProject(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, project)
}

// Create godoc
// @Summary      Create posting
// @Description  The poster account must exist; nothing is stored otherwise
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      CreateProjectRequest  true  "Posting"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	project, err := h.projectUC.CreateProject(c, req.toProject())
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusCreated, project)
}

// Update godoc
// @Summary      Update posting
// @Description  Only the supplied fields change
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project ID"
// @Param        body  body      domain.ProjectUpdate  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req domain.ProjectUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	project, err := h.projectUC.UpdateProject(c, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Resource(c, http.StatusOK, project)
}

// Delete godoc
// @Summary      Delete posting
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectUC.DeleteProject(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Project deleted", nil)
}
