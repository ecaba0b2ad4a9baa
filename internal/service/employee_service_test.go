package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/events"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

func newTestEmployeeService() (*EmployeeService, *fakeEmployeeRepo) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(EmployeeDependencies{
		EmployeeRepo: repo,
		Dispatcher:   events.NewInMemoryDispatcher(),
	})
	return svc, repo
}

func validCreateInput() EmployeeCreateInput {
	return EmployeeCreateInput{
		Name:   "Ada Lovelace",
		Role:   "Engineer",
		Salary: floatPtr(90000),
	}
}

func domainCode(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a DomainError, got %v", err)
	return domainErr
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	svc, _ := newTestEmployeeService()
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)
	second, err := svc.Create(ctx, EmployeeCreateInput{Name: "Grace Hopper", Role: "Engineer", Salary: floatPtr(95000)})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Nil(t, first.UpdatedAt)
	assert.Equal(t, 0.0, first.PerformanceRating, "rating defaults to 0 when omitted")
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestEmployeeService()
	ctx := context.Background()

	cases := []struct {
		name  string
		input EmployeeCreateInput
		field string
	}{
		{"missing name", EmployeeCreateInput{Role: "Engineer", Salary: floatPtr(1)}, "name"},
		{"missing role", EmployeeCreateInput{Name: "Ada", Salary: floatPtr(1)}, "role"},
		{"missing salary", EmployeeCreateInput{Name: "Ada", Role: "Engineer"}, "salary"},
		{"negative salary", EmployeeCreateInput{Name: "Ada", Role: "Engineer", Salary: floatPtr(-1)}, "salary"},
		{"malformed email", EmployeeCreateInput{Name: "Ada", Role: "Engineer", Salary: floatPtr(1), Email: strPtr("nope")}, "email"},
		{"rating out of range", EmployeeCreateInput{Name: "Ada", Role: "Engineer", Salary: floatPtr(1), PerformanceRating: floatPtr(5.5)}, "performance_rating"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			domainErr := domainCode(t, err)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
			assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
			assert.Contains(t, domainErr.Details, tc.field)
		})
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _ := newTestEmployeeService()
	ctx := context.Background()

	input := validCreateInput()
	input.Email = strPtr("ada@example.com")
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	second := validCreateInput()
	second.Name = "Someone Else"
	second.Email = strPtr("ada@example.com")
	_, err = svc.Create(ctx, second)

	domainErr := domainCode(t, err)
	assert.Equal(t, "DUPLICATE_EMAIL", domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "ada@example.com", domainErr.Details["email"])
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestEmployeeService()

	_, err := svc.Get(context.Background(), 42)
	domainErr := domainCode(t, err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestUpdatePartialKeepsOtherFields(t *testing.T) {
	svc, _ := newTestEmployeeService()
	ctx := context.Background()

	input := validCreateInput()
	input.Email = strPtr("ada@example.com")
	input.Department = strPtr("R&D")
	input.Skills = strPtr("math, analytical engines")
	created, err := svc.Create(ctx, input)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, EmployeeUpdateInput{Salary: floatPtr(90000)})
	require.NoError(t, err)

	assert.Equal(t, 90000.0, updated.Salary)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Role, updated.Role)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "ada@example.com", *updated.Email)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "R&D", *updated.Department)
	require.NotNil(t, updated.UpdatedAt)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt), "updated_at must not precede created_at")
}

func TestUpdateEmailConflict(t *testing.T) {
	svc, _ := newTestEmployeeService()
	ctx := context.Background()

	first := validCreateInput()
	first.Email = strPtr("ada@example.com")
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validCreateInput()
	second.Name = "Grace Hopper"
	second.Email = strPtr("grace@example.com")
	created, err := svc.Create(ctx, second)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, EmployeeUpdateInput{Email: strPtr("ada@example.com")})
	domainErr := domainCode(t, err)
	assert.Equal(t, "DUPLICATE_EMAIL", domainErr.Code)

	// Re-submitting the stored email is not a conflict.
	_, err = svc.Update(ctx, created.ID, EmployeeUpdateInput{Email: strPtr("grace@example.com")})
	assert.NoError(t, err)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestEmployeeService()

	_, err := svc.Update(context.Background(), 99, EmployeeUpdateInput{Salary: floatPtr(1)})
	domainErr := domainCode(t, err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestDeleteLifecycle(t *testing.T) {
	svc, _ := newTestEmployeeService()
	ctx := context.Background()

	err := svc.Delete(ctx, 7)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err).Code)

	created, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err).Code)
}

func TestListPagination(t *testing.T) {
	svc, _ := newTestEmployeeService()
	ctx := context.Background()

	for _, name := range []string{"Ada", "Grace", "Edsger"} {
		input := validCreateInput()
		input.Name = name
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	total, page, err := svc.List(ctx, EmployeeListInput{Skip: 0, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 3)

	total, page, err = svc.List(ctx, EmployeeListInput{Skip: 0, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total, "total reflects the filtered set before pagination")
	assert.Len(t, page, 1)
}

func TestListParamBounds(t *testing.T) {
	svc, _ := newTestEmployeeService()
	ctx := context.Background()

	_, _, err := svc.List(ctx, EmployeeListInput{Skip: -1, Limit: 10})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err).Code)

	_, _, err = svc.List(ctx, EmployeeListInput{Skip: 0, Limit: 0})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err).Code)

	_, _, err = svc.List(ctx, EmployeeListInput{Skip: 0, Limit: 1001})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err).Code)
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestEmployeeService()
	ctx := context.Background()

	records := []struct {
		name, role string
		department *string
	}{
		{"Ada Lovelace", "Engineer", strPtr("R&D")},
		{"Grace Hopper", "Compiler Engineer", strPtr("R&D")},
		{"Jean Bartik", "Operator", strPtr("Operations")},
	}
	for _, rec := range records {
		input := validCreateInput()
		input.Name = rec.name
		input.Role = rec.role
		input.Department = rec.department
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	total, page, err := svc.List(ctx, EmployeeListInput{Skip: 0, Limit: 100, Search: strPtr("Engineer")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "search matches role substring")
	assert.Len(t, page, 2)

	// Substring match is literal, no case folding.
	total, _, err = svc.List(ctx, EmployeeListInput{Skip: 0, Limit: 100, Search: strPtr("engineer")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	total, page, err = svc.List(ctx, EmployeeListInput{
		Skip: 0, Limit: 100,
		Search:     strPtr("Engineer"),
		Department: strPtr("R&D"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "filters compose with AND")

	total, _, err = svc.List(ctx, EmployeeListInput{Skip: 0, Limit: 100, Department: strPtr("Operations")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
