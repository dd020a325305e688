package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"labournet-backend/internal/delivery/http/middleware"
	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"
	"labournet-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

// stubAuth resolves only the accounts it was given
type stubAuth struct {
	users map[string]domain.Identity
	fail  error
}

func (s *stubAuth) Login(context.Context, domain.LoginInput) (*domain.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) Signup(context.Context, domain.SignupInput) (*domain.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) GetCurrentUser(_ context.Context, role domain.Role, id string) (*domain.Identity, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	u, ok := s.users[id]
	if !ok || u.Role != role {
		return nil, apperror.NotFound("User does not exist")
	}
	return &u, nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.BadRequest("Missing required fields").WithDetails("missingFields", []string{"email"}))
	})
	r.GET("/internal", func(c *gin.Context) {
		_ = c.Error(apperror.Internal(errors.New("connection refused")).WithDetails("query", "SELECT"))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	t.Run("client error carries details", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Missing required fields", body["message"])
		assert.Equal(t, []interface{}{"email"}, body["missingFields"])
		assert.NotEmpty(t, body["request_id"])
	})

	t.Run("server error hides details", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/internal", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Internal Server Error", body["message"])
		assert.NotContains(t, body, "query")
	})

	t.Run("unknown error is generic", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/plain", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An unexpected error occurred. Please try again later.", decode(t, w)["message"])
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(string(domain.KeyRequestID))) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := serve(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestCORSMiddleware(t *testing.T) {
	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
		req.Header.Set("Origin", origin)
		return serve(r, req)
	}

	dev := gin.New()
	dev.Use(middleware.CORSMiddleware("https://app.example.com/, https://admin.example.com", false))
	prod := gin.New()
	prod.Use(middleware.CORSMiddleware("https://app.example.com", true))

	w := preflight(dev, "https://admin.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(dev, "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = preflight(prod, "http://localhost:3000")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(prod, "https://app.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	users := &stubAuth{users: map[string]domain.Identity{
		"w1": {ID: "w1", Email: "sam@example.com", FullName: "Sam", Role: domain.RoleWorker},
		"c1": {ID: "c1", Email: "cy@example.com", FullName: "Cy", Role: domain.RoleContractor},
	}}

	r := gin.New()
	protected := r.Group("/", middleware.AuthMiddleware(tokens, users))
	protected.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   c.GetString(string(domain.KeyUserID)),
			"role": c.GetString(string(domain.KeyUserRole)),
		})
	})
	protected.GET("/workers-only", middleware.RequireRole(domain.RoleWorker), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	issue := func(id, email string, role domain.Role) string {
		tok, err := tokens.Issue(id, email, string(role))
		require.NoError(t, err)
		return tok
	}
	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return serve(r, req)
	}

	t.Run("no credentials", func(t *testing.T) {
		w := get("/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := get("/whoami", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", decode(t, w)["message"])
	})

	t.Run("token signed elsewhere", func(t *testing.T) {
		other, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue("w1", "sam@example.com", "worker")
		require.NoError(t, err)
		w := get("/whoami", other)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown role claim", func(t *testing.T) {
		w := get("/whoami", issue("w1", "sam@example.com", "admin"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid claims", decode(t, w)["message"])
	})

	t.Run("deleted account", func(t *testing.T) {
		w := get("/whoami", issue("gone", "gone@example.com", domain.RoleWorker))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "User not found", decode(t, w)["message"])
	})

	t.Run("lookup failure is a server error", func(t *testing.T) {
		broken := gin.New()
		broken.GET("/whoami", middleware.AuthMiddleware(tokens, &stubAuth{fail: apperror.Internal(errors.New("connection refused"))}), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+issue("w1", "sam@example.com", domain.RoleWorker))
		w := serve(broken, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An unexpected error occurred. Please try again later.", decode(t, w)["message"])

		broken = gin.New()
		broken.GET("/whoami", middleware.AuthMiddleware(tokens, &stubAuth{fail: domain.ErrNotFound}), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+issue("w1", "sam@example.com", domain.RoleWorker))
		w = serve(broken, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		w := get("/whoami", issue("w1", "sam@example.com", domain.RoleWorker))
		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "w1", body["id"])
		assert.Equal(t, "worker", body["role"])
	})

	t.Run("cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: issue("c1", "cy@example.com", domain.RoleContractor)})
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "contractor", decode(t, w)["role"])
	})

	t.Run("role gate", func(t *testing.T) {
		w := get("/workers-only", issue("c1", "cy@example.com", domain.RoleContractor))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Access denied", decode(t, w)["message"])

		w = get("/workers-only", issue("w1", "sam@example.com", domain.RoleWorker))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
