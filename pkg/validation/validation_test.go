package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FullName    string  `json:"fullName" validate:"required"`
	PhoneNumber string  `json:"phoneNumber" validate:"valid_phone"`
	HourlyRate  float64 `json:"hourlyRate" validate:"gte=0"`
	Status      string  `json:"status" validate:"project_status"`
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	v := New()
	err := v.Struct(sample{PhoneNumber: "call me", HourlyRate: -1, Status: "archived"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "is required", fields["fullName"])
	assert.Equal(t, "must be a valid phone number", fields["phoneNumber"])
	assert.Equal(t, "must be greater than or equal to 0", fields["hourlyRate"])
	assert.Equal(t, "must be one of: active, completed, cancelled", fields["status"])
}

func TestValidSampleHasNoErrors(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(sample{FullName: "A", PhoneNumber: "+1 (555) 123-4567", Status: "completed"}))
	assert.NoError(t, v.Struct(sample{FullName: "A"}))
}

func TestFieldErrorsNonValidationError(t *testing.T) {
	fields := FieldErrors(errors.New("unexpected EOF"))
	assert.Equal(t, map[string]string{"body": "unexpected EOF"}, fields)
}
