package v1

import (
	"net/http"

	"labournet-backend/internal/delivery/http/response"
	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/signup", handler.Signup)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

// Presence is checked by the usecase so the error message stays the same for every missing field
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role" example:"worker"`
}

// AuthResponse is returned by login and signup
type AuthResponse struct {
	Message string          `json:"message"`
	User    domain.Identity `json:"user"`
	Token   string          `json:"token"`
}

// Login godoc
// @Summary      Login
// @Description  Authenticate against the collection named by role (worker, contractor, professional)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  AuthResponse
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.authUC.Login(c, domain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":  result.User,
		"token": result.Token,
	})
}

// Signup godoc
// @Summary      Signup
// @Description  Create an account. Role-specific profile fields sit next to the common ones;
// @Description  skills and certifications may be comma separated strings.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signup  body      object  true  "email, password, fullName, role and profile fields"
// @Success      201     {object}  AuthResponse
// @Failure      400     {object}  response.Response
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	str := func(key string) string {
		s, _ := body[key].(string)
		return s
	}

	result, err := h.authUC.Signup(c, domain.SignupInput{
		Email:    str("email"),
		Password: str("password"),
		FullName: str("fullName"),
		Role:     str("role"),
		Profile:  body,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created successfully", gin.H{
		"user":  result.User,
		"token": result.Token,
	})
}

// Me godoc
// @Summary      Current user
// @Description  Identity of the bearer token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := domain.Role(c.GetString(string(domain.KeyUserRole)))

	user, err := h.authUC.GetCurrentUser(c, role, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", gin.H{"user": user})
}
