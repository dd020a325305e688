package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"
	"labournet-backend/pkg/auth"
	"labournet-backend/pkg/logger"
	"labournet-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type authUsecase struct {
	accountRepo domain.AccountRepository
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenIssuer
	validate    *validator.Validate
}

func NewAuthUsecase(
	accountRepo domain.AccountRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	validate *validator.Validate,
) domain.AuthUsecase {
	return &authUsecase{
		accountRepo: accountRepo,
		hasher:      hasher,
		tokens:      tokens,
		validate:    validate,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.AuthResult, error) {
	if in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, apperror.BadRequest("Email, password, and role are required")
	}

	role, ok := domain.ParseLoginRole(in.Role)
	if !ok {
		return nil, apperror.BadRequest("Invalid role")
	}

	account, err := u.accountRepo.GetByEmail(ctx, role, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User does not exist")
		}
		return nil, apperror.Internal(err)
	}

	if !u.hasher.Matches(account.PasswordHash, in.Password) {
		logger.Log.WithFields(logrus.Fields{"role": role, "account_id": account.ID}).Warn("login rejected: password mismatch")
		return nil, apperror.Unauthorized("Invalid password")
	}

	return u.issue(account)
}

func (u *authUsecase) Signup(ctx context.Context, in domain.SignupInput) (*domain.AuthResult, error) {
	// 1. Top-level fields
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"email", in.Email},
		{"password", in.Password},
		{"fullName", in.FullName},
		{"role", in.Role},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, apperror.BadRequest("Missing required fields").WithDetails("missingFields", missing)
	}

	// 2. Email must be unique across every collection, whatever the role
	email := normalizeEmail(in.Email)
	exists, err := u.accountRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("Email already exists")
	}

	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, apperror.BadRequest("Invalid role")
	}

	// 3. Role-specific fields
	if missing := missingFields(in.Profile, requiredProfileFields[role]); len(missing) > 0 {
		msg := fmt.Sprintf("Missing required %s fields", roleLabels[role])
		return nil, apperror.BadRequest(msg).WithDetails("missingFields", missing)
	}

	// 4. Coerce and validate the profile
	account := &domain.Account{
		Role:     role,
		Email:    email,
		FullName: strings.TrimSpace(in.FullName),
	}
	profile, fieldErrs := buildProfile(account, in.Profile)
	if fieldErrs != nil {
		return nil, apperror.BadRequest("Validation error").WithDetails("details", fieldErrs)
	}
	if err := u.validate.Struct(profile); err != nil {
		return nil, apperror.BadRequest("Validation error").WithDetails("details", validation.FieldErrors(err))
	}

	// 5. Persist
	account.PasswordHash, err = u.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := u.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, apperror.BadRequest("Email already exists")
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.WithFields(logrus.Fields{"role": role, "account_id": account.ID}).Info("account created")
	return u.issue(account)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, role domain.Role, id string) (*domain.Identity, error) {
	account, err := u.accountRepo.GetByID(ctx, role, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User does not exist")
		}
		return nil, apperror.Internal(err)
	}
	identity := account.Identity()
	return &identity, nil
}

func (u *authUsecase) issue(account *domain.Account) (*domain.AuthResult, error) {
	token, err := u.tokens.Issue(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{User: account.Identity(), Token: token}, nil
}
