package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"labournet-backend/internal/domain"
	"labournet-backend/internal/usecase"
	"labournet-backend/pkg/apperror"
	"labournet-backend/pkg/auth"
	"labournet-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func requireAppError(t *testing.T, err error, code int, message string) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
	return appErr
}

func newAuthUsecase(repo *MockAccountRepo) (domain.AuthUsecase, *auth.PasswordHasher, *auth.TokenIssuer) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return usecase.NewAuthUsecase(repo, hasher, tokens, validation.New()), hasher, tokens
}

// unusedEmails makes every email look available
func unusedEmails(repo *MockAccountRepo) *MockAccountRepo {
	repo.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	return repo
}

func workerSignup() domain.SignupInput {
	return domain.SignupInput{
		Email:    "  Sam@Example.com ",
		Password: "hunter22",
		FullName: "Sam Welder",
		Role:     "worker",
		Profile: map[string]interface{}{
			"yearsOfExperience": "5",
			"skills":            "welding, carpentry",
			"certifications":    []interface{}{"OSHA 10", " "},
			"phoneNumber":       "555-123-4567",
			"hourlyRate":        float64(25),
			"availability":      "weekdays",
			"description":       "Structural welder",
			"address":           "12 Dock Rd",
		},
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report missing top-level fields in order", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, _, _ := newAuthUsecase(repo)

		_, err := uc.Signup(ctx, domain.SignupInput{Password: "x"})
		appErr := requireAppError(t, err, http.StatusBadRequest, "Missing required fields")
		assert.Equal(t, []string{"email", "fullName", "role"}, appErr.Details["missingFields"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject unknown role", func(t *testing.T) {
		uc, _, _ := newAuthUsecase(unusedEmails(new(MockAccountRepo)))
		in := workerSignup()
		in.Role = "admin"

		_, err := uc.Signup(ctx, in)
		requireAppError(t, err, http.StatusBadRequest, "Invalid role")
	})

	t.Run("Should report missing worker fields in list order", func(t *testing.T) {
		repo := unusedEmails(new(MockAccountRepo))
		uc, _, _ := newAuthUsecase(repo)
		in := workerSignup()
		in.Profile = map[string]interface{}{"skills": "welding", "hourlyRate": "30"}

		_, err := uc.Signup(ctx, in)
		appErr := requireAppError(t, err, http.StatusBadRequest, "Missing required worker fields")
		assert.Equal(t, []string{
			"yearsOfExperience", "certifications", "phoneNumber",
			"availability", "description", "address",
		}, appErr.Details["missingFields"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should label builder field errors with the builder role", func(t *testing.T) {
		uc, _, _ := newAuthUsecase(unusedEmails(new(MockAccountRepo)))

		_, err := uc.Signup(ctx, domain.SignupInput{
			Email: "b@example.com", Password: "pw", FullName: "Bo", Role: "builder",
			Profile: map[string]interface{}{"businessName": "Bo Builds"},
		})
		appErr := requireAppError(t, err, http.StatusBadRequest, "Missing required builder fields")
		assert.Equal(t, []string{
			"businessLicense", "yearsOfExperience", "licenseNumber",
			"insuranceInfo", "phoneNumber", "address",
		}, appErr.Details["missingFields"])
	})

	t.Run("Should reject non-numeric experience", func(t *testing.T) {
		uc, _, _ := newAuthUsecase(unusedEmails(new(MockAccountRepo)))
		in := workerSignup()
		in.Profile["yearsOfExperience"] = "lots"

		_, err := uc.Signup(ctx, in)
		appErr := requireAppError(t, err, http.StatusBadRequest, "Validation error")
		assert.Equal(t, map[string]string{"yearsOfExperience": "must be a number"}, appErr.Details["details"])
	})

	t.Run("Should reject malformed phone number", func(t *testing.T) {
		uc, _, _ := newAuthUsecase(unusedEmails(new(MockAccountRepo)))
		in := workerSignup()
		in.Profile["phoneNumber"] = "call me"

		_, err := uc.Signup(ctx, in)
		appErr := requireAppError(t, err, http.StatusBadRequest, "Validation error")
		assert.Contains(t, appErr.Details["details"], "phoneNumber")
	})

	t.Run("Should reject email present in any collection", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, _, _ := newAuthUsecase(repo)
		repo.On("EmailExists", mock.Anything, "sam@example.com").Return(true, nil)

		_, err := uc.Signup(ctx, workerSignup())
		requireAppError(t, err, http.StatusBadRequest, "Email already exists")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should report a taken email before role and profile problems", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, _, _ := newAuthUsecase(repo)
		repo.On("EmailExists", mock.Anything, "sam@example.com").Return(true, nil)

		in := workerSignup()
		in.Role = "admin"
		_, err := uc.Signup(ctx, in)
		requireAppError(t, err, http.StatusBadRequest, "Email already exists")

		in = workerSignup()
		in.Profile = map[string]interface{}{}
		_, err = uc.Signup(ctx, in)
		requireAppError(t, err, http.StatusBadRequest, "Email already exists")
	})

	t.Run("Should map unique violation race to duplicate email", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, _, _ := newAuthUsecase(repo)
		repo.On("EmailExists", mock.Anything, "sam@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)

		_, err := uc.Signup(ctx, workerSignup())
		requireAppError(t, err, http.StatusBadRequest, "Email already exists")
	})

	t.Run("Should create worker with split skills and hashed password", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, hasher, tokens := newAuthUsecase(repo)

		var stored *domain.Account
		repo.On("EmailExists", mock.Anything, "sam@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Account")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.Account)
				stored.ID = "w-1"
			}).
			Return(nil)

		result, err := uc.Signup(ctx, workerSignup())
		require.NoError(t, err)
		require.NotNil(t, stored)

		assert.Equal(t, domain.RoleWorker, stored.Role)
		assert.Equal(t, "sam@example.com", stored.Email)
		require.NotNil(t, stored.Worker)
		assert.Equal(t, []string{"welding", "carpentry"}, stored.Worker.Skills)
		assert.Equal(t, []string{"OSHA 10"}, stored.Worker.Certifications)
		assert.Equal(t, float64(5), stored.Worker.YearsOfExperience)
		assert.NotEqual(t, "hunter22", stored.PasswordHash)
		assert.True(t, hasher.Matches(stored.PasswordHash, "hunter22"))

		assert.Equal(t, domain.Identity{ID: "w-1", Email: "sam@example.com", FullName: "Sam Welder", Role: domain.RoleWorker}, result.User)
		claims, err := tokens.Parse(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "w-1", claims.Subject)
		assert.Equal(t, "worker", claims.Role)
	})

	t.Run("Should store builder alias as professional", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, _, _ := newAuthUsecase(repo)
		repo.On("EmailExists", mock.Anything, "bo@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
			return a.Role == domain.RoleBuilder && a.Builder != nil && a.Builder.YearsOfExperience == 12
		})).Return(nil)

		result, err := uc.Signup(ctx, domain.SignupInput{
			Email: "bo@example.com", Password: "pw", FullName: "Bo", Role: "builder",
			Profile: map[string]interface{}{
				"businessName":      "Bo Builds",
				"businessLicense":   "BL-1",
				"yearsOfExperience": float64(12),
				"licenseNumber":     "LN-9",
				"insuranceInfo":     "Acme Mutual",
				"phoneNumber":       "+1 (555) 010-2000",
				"address":           "1 Main St",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleBuilder, result.User.Role)
		repo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require every field", func(t *testing.T) {
		uc, _, _ := newAuthUsecase(new(MockAccountRepo))
		_, err := uc.Login(ctx, domain.LoginInput{Email: "a@x.com", Password: "pw"})
		requireAppError(t, err, http.StatusBadRequest, "Email, password, and role are required")
	})

	t.Run("Should reject builder alias and unknown roles", func(t *testing.T) {
		uc, _, _ := newAuthUsecase(new(MockAccountRepo))
		for _, role := range []string{"builder", "admin"} {
			_, err := uc.Login(ctx, domain.LoginInput{Email: "a@x.com", Password: "pw", Role: role})
			requireAppError(t, err, http.StatusBadRequest, "Invalid role")
		}
	})

	t.Run("Should return 404 for unknown email", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, _, _ := newAuthUsecase(repo)
		repo.On("GetByEmail", mock.Anything, domain.RoleContractor, "nobody@x.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, domain.LoginInput{Email: "Nobody@x.com", Password: "pw", Role: "contractor"})
		requireAppError(t, err, http.StatusNotFound, "User does not exist")
	})

	t.Run("Should return 500 on repository failure", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, _, _ := newAuthUsecase(repo)
		repo.On("GetByEmail", mock.Anything, domain.RoleWorker, "a@x.com").Return(nil, errors.New("conn reset"))

		_, err := uc.Login(ctx, domain.LoginInput{Email: "a@x.com", Password: "pw", Role: "worker"})
		requireAppError(t, err, http.StatusInternalServerError, "Internal Server Error")
	})

	t.Run("Should return 401 for wrong password", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, hasher, _ := newAuthUsecase(repo)
		hash, err := hasher.Hash("right")
		require.NoError(t, err)
		repo.On("GetByEmail", mock.Anything, domain.RoleWorker, "a@x.com").
			Return(&domain.Account{ID: "w-1", Role: domain.RoleWorker, Email: "a@x.com", PasswordHash: hash}, nil)

		_, err = uc.Login(ctx, domain.LoginInput{Email: "a@x.com", Password: "wrong", Role: "worker"})
		requireAppError(t, err, http.StatusUnauthorized, "Invalid password")
	})

	t.Run("Should issue token on success", func(t *testing.T) {
		repo := new(MockAccountRepo)
		uc, hasher, tokens := newAuthUsecase(repo)
		hash, err := hasher.Hash("right")
		require.NoError(t, err)
		repo.On("GetByEmail", mock.Anything, domain.RoleBuilder, "b@x.com").
			Return(&domain.Account{ID: "b-1", Role: domain.RoleBuilder, Email: "b@x.com", FullName: "Bo", PasswordHash: hash}, nil)

		result, err := uc.Login(ctx, domain.LoginInput{Email: "b@x.com", Password: "right", Role: "professional"})
		require.NoError(t, err)
		assert.Equal(t, domain.Identity{ID: "b-1", Email: "b@x.com", FullName: "Bo", Role: domain.RoleBuilder}, result.User)

		claims, err := tokens.Parse(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "b-1", claims.Subject)
	})
}

func TestGetCurrentUser(t *testing.T) {
	repo := new(MockAccountRepo)
	uc, _, _ := newAuthUsecase(repo)
	repo.On("GetByID", mock.Anything, domain.RoleContractor, "c-1").
		Return(&domain.Account{ID: "c-1", Role: domain.RoleContractor, Email: "c@x.com", FullName: "Cy"}, nil)
	repo.On("GetByID", mock.Anything, domain.RoleContractor, "gone").Return(nil, domain.ErrNotFound)

	identity, err := uc.GetCurrentUser(context.Background(), domain.RoleContractor, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", identity.Email)

	_, err = uc.GetCurrentUser(context.Background(), domain.RoleContractor, "gone")
	requireAppError(t, err, http.StatusNotFound, "User does not exist")
}
