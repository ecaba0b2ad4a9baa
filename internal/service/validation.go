package service

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const (
	maxNameLen       = 100
	maxRoleLen       = 100
	maxDepartmentLen = 100
	maxRating        = 5.0
)

// EmployeeCreateInput describes a creation payload. Salary is a pointer so a
// missing field is distinguishable from an explicit zero.
type EmployeeCreateInput struct {
	Name              string
	Role              string
	Salary            *float64
	Email             *string
	Department        *string
	PerformanceRating *float64
	Skills            *string
}

// EmployeeUpdateInput describes a partial update. Nil fields keep their
// stored values.
type EmployeeUpdateInput struct {
	Name              *string
	Role              *string
	Salary            *float64
	Email             *string
	Department        *string
	PerformanceRating *float64
	Skills            *string
}

func validateCreateInput(in EmployeeCreateInput) error {
	details := map[string]any{}

	if n := utf8.RuneCountInString(in.Name); n < 1 || n > maxNameLen {
		details["name"] = "must be between 1 and 100 characters"
	}
	if n := utf8.RuneCountInString(in.Role); n < 1 || n > maxRoleLen {
		details["role"] = "must be between 1 and 100 characters"
	}
	if in.Salary == nil {
		details["salary"] = "is required"
	} else if *in.Salary < 0 {
		details["salary"] = "must not be negative"
	}
	validateOptionalFields(details, in.Email, in.Department, in.PerformanceRating)

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid employee payload", details)
	}
	return nil
}

func validateUpdateInput(in EmployeeUpdateInput) error {
	details := map[string]any{}

	if in.Name != nil {
		if n := utf8.RuneCountInString(*in.Name); n < 1 || n > maxNameLen {
			details["name"] = "must be between 1 and 100 characters"
		}
	}
	if in.Role != nil {
		if n := utf8.RuneCountInString(*in.Role); n < 1 || n > maxRoleLen {
			details["role"] = "must be between 1 and 100 characters"
		}
	}
	if in.Salary != nil && *in.Salary < 0 {
		details["salary"] = "must not be negative"
	}
	validateOptionalFields(details, in.Email, in.Department, in.PerformanceRating)

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid employee payload", details)
	}
	return nil
}

func validateOptionalFields(details map[string]any, email, department *string, rating *float64) {
	if email != nil && !validEmail(*email) {
		details["email"] = "must be a valid email address"
	}
	if department != nil && utf8.RuneCountInString(*department) > maxDepartmentLen {
		details["department"] = "must be at most 100 characters"
	}
	if rating != nil && (*rating < 0 || *rating > maxRating) {
		details["performance_rating"] = "must be between 0 and 5"
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}
