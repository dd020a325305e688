package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"labournet-backend/internal/domain"
)

// Required signup fields per role, in the order they are reported back
var requiredProfileFields = map[domain.Role][]string{
	domain.RoleWorker: {
		"yearsOfExperience", "skills", "certifications", "phoneNumber",
		"hourlyRate", "availability", "description", "address",
	},
	domain.RoleContractor: {
		"businessName", "businessLicense", "businessType", "yearsOfExperience",
		"licenseNumber", "insuranceInfo", "projectTypes", "phoneNumber",
	},
	domain.RoleBuilder: {
		"businessName", "businessLicense", "yearsOfExperience", "licenseNumber",
		"insuranceInfo", "phoneNumber", "address",
	},
}

var roleLabels = map[domain.Role]string{
	domain.RoleWorker:     "worker",
	domain.RoleContractor: "contractor",
	domain.RoleBuilder:    "builder",
}

// isBlank reports whether a form value counts as not provided:
// absent, null, empty string, zero or false.
func isBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0
	case int:
		return t == 0
	case json.Number:
		return t == "" || t == "0"
	case bool:
		return !t
	}
	return false
}

func missingFields(values map[string]interface{}, required []string) []string {
	missing := []string{}
	for _, field := range required {
		if isBlank(values[field]) {
			missing = append(missing, field)
		}
	}
	return missing
}

// profileReader coerces loosely typed form values and collects per-field errors
type profileReader struct {
	values map[string]interface{}
	errs   map[string]string
}

func newProfileReader(values map[string]interface{}) *profileReader {
	return &profileReader{values: values, errs: map[string]string{}}
}

func (r *profileReader) String(field string) string {
	switch t := r.values[field].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		r.errs[field] = "must be a string"
		return ""
	}
}

func (r *profileReader) Number(field string) float64 {
	switch t := r.values[field].(type) {
	case nil:
		return 0
	case float64:
		return t
	case int:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			r.errs[field] = "must be a number"
		}
		return f
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			r.errs[field] = "must be a number"
		}
		return f
	default:
		r.errs[field] = "must be a number"
		return 0
	}
}

// List accepts a comma separated string or an array and returns trimmed, non-empty items
func (r *profileReader) List(field string) []string {
	out := []string{}
	switch t := r.values[field].(type) {
	case nil:
	case string:
		out = appendTrimmed(out, strings.Split(t, ",")...)
	case []string:
		out = appendTrimmed(out, t...)
	case []interface{}:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				r.errs[field] = "must be a list of strings"
				return []string{}
			}
			out = appendTrimmed(out, s)
		}
	default:
		r.errs[field] = "must be a list of strings"
	}
	return out
}

func (r *profileReader) Err() map[string]string {
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs
}

func appendTrimmed(dst []string, items ...string) []string {
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			dst = append(dst, s)
		}
	}
	return dst
}

// buildProfile fills the role's profile on account from the signup form values
func buildProfile(account *domain.Account, values map[string]interface{}) (interface{}, map[string]string) {
	r := newProfileReader(values)
	var profile interface{}

	switch account.Role {
	case domain.RoleWorker:
		account.Worker = &domain.WorkerProfile{
			YearsOfExperience: r.Number("yearsOfExperience"),
			Skills:            r.List("skills"),
			Certifications:    r.List("certifications"),
			PhoneNumber:       r.String("phoneNumber"),
			HourlyRate:        r.Number("hourlyRate"),
			Availability:      r.String("availability"),
			Description:       r.String("description"),
			Address:           r.String("address"),
		}
		profile = account.Worker
	case domain.RoleContractor:
		account.Contractor = &domain.ContractorProfile{
			BusinessName:      r.String("businessName"),
			BusinessLicense:   r.String("businessLicense"),
			BusinessType:      r.String("businessType"),
			YearsOfExperience: r.Number("yearsOfExperience"),
			LicenseNumber:     r.String("licenseNumber"),
			InsuranceInfo:     r.String("insuranceInfo"),
			ProjectTypes:      r.String("projectTypes"),
			PhoneNumber:       r.String("phoneNumber"),
			Address:           r.String("address"),
			TeamSize:          r.Number("teamSize"),
		}
		profile = account.Contractor
	case domain.RoleBuilder:
		account.Builder = &domain.BuilderProfile{
			BusinessName:      r.String("businessName"),
			BusinessLicense:   r.String("businessLicense"),
			YearsOfExperience: r.Number("yearsOfExperience"),
			LicenseNumber:     r.String("licenseNumber"),
			InsuranceInfo:     r.String("insuranceInfo"),
			PhoneNumber:       r.String("phoneNumber"),
			Address:           r.String("address"),
		}
		profile = account.Builder
	default:
		return nil, map[string]string{"role": fmt.Sprintf("unsupported role %q", account.Role)}
	}

	return profile, r.Err()
}
