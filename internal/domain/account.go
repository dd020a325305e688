package domain

import (
	"context"
	"strings"
	"time"
)

// Role selects the account collection. Each role is a disjoint collection.
type Role string

const (
	RoleWorker     Role = "worker"
	RoleContractor Role = "contractor"
	RoleBuilder    Role = "professional"
)

// Roles lists every collection, in the order signup checks them for duplicates
var Roles = []Role{RoleContractor, RoleWorker, RoleBuilder}

// ParseLoginRole accepts exactly the role tags the login form sends
func ParseLoginRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleWorker, RoleContractor, RoleBuilder:
		return Role(s), true
	}
	return "", false
}

// ParseRole is ParseLoginRole plus the "builder" alias used by the signup form
func ParseRole(s string) (Role, bool) {
	if strings.EqualFold(s, "builder") {
		return RoleBuilder, true
	}
	return ParseLoginRole(s)
}

// AccountRef is a polymorphic reference to an account in one of the collections
type AccountRef struct {
	Role Role   `json:"role"`
	ID   string `json:"id"`
}

type WorkerProfile struct {
	YearsOfExperience float64  `json:"yearsOfExperience" validate:"gte=0"`
	Skills            []string `json:"skills" validate:"required,min=1"`
	Certifications    []string `json:"certifications" validate:"required,min=1"`
	PhoneNumber       string   `json:"phoneNumber" validate:"required,valid_phone"`
	HourlyRate        float64  `json:"hourlyRate" validate:"gte=0"`
	Availability      string   `json:"availability" validate:"required"`
	Description       string   `json:"description" validate:"required"`
	Address           string   `json:"address" validate:"required"`
}

type ContractorProfile struct {
	BusinessName      string  `json:"businessName" validate:"required"`
	BusinessLicense   string  `json:"businessLicense" validate:"required"`
	BusinessType      string  `json:"businessType" validate:"required"`
	YearsOfExperience float64 `json:"yearsOfExperience" validate:"gte=0"`
	LicenseNumber     string  `json:"licenseNumber" validate:"required"`
	InsuranceInfo     string  `json:"insuranceInfo" validate:"required"`
	ProjectTypes      string  `json:"projectTypes" validate:"required"`
	PhoneNumber       string  `json:"phoneNumber" validate:"required,valid_phone"`
	Address           string  `json:"address,omitempty"`
	TeamSize          float64 `json:"teamSize,omitempty" validate:"gte=0"`
}

type BuilderProfile struct {
	BusinessName      string  `json:"businessName" validate:"required"`
	BusinessLicense   string  `json:"businessLicense" validate:"required"`
	YearsOfExperience float64 `json:"yearsOfExperience" validate:"gte=0"`
	LicenseNumber     string  `json:"licenseNumber" validate:"required"`
	InsuranceInfo     string  `json:"insuranceInfo" validate:"required"`
	PhoneNumber       string  `json:"phoneNumber" validate:"required,valid_phone"`
	Address           string  `json:"address" validate:"required"`
}

// Account is one document of a role collection. Exactly one profile is set,
// matching Role.
type Account struct {
	ID           string    `json:"id"`
	Role         Role      `json:"role"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Worker     *WorkerProfile     `json:"worker,omitempty"`
	Contractor *ContractorProfile `json:"contractor,omitempty"`
	Builder    *BuilderProfile    `json:"builder,omitempty"`
}

func (a *Account) Ref() AccountRef {
	return AccountRef{Role: a.Role, ID: a.ID}
}

func (a *Account) Identity() Identity {
	return Identity{ID: a.ID, Email: a.Email, FullName: a.FullName, Role: a.Role}
}

// Identity is the denormalized session object returned by login and signup
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// AccountRepository gives a single lookup keyed by role over the three collections
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, role Role, id string) (*Account, error)
	GetByEmail(ctx context.Context, role Role, email string) (*Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type LoginInput struct {
	Email    string
	Password string
	Role     string
}

// SignupInput keeps the profile loosely typed: the form posts numbers as
// strings and skills as comma separated text.
type SignupInput struct {
	Email    string
	Password string
	FullName string
	Role     string
	Profile  map[string]interface{}
}

type AuthResult struct {
	User  Identity `json:"user"`
	Token string   `json:"token"`
}

type AuthUsecase interface {
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, role Role, id string) (*Identity, error)
}
