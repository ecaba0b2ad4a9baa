package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// EmployeeService coordinates single-record employee workflows.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
}

// EmployeeDependencies bundles requirements for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
}

// EmployeeListInput describes listing parameters.
type EmployeeListInput struct {
	Skip       int
	Limit      int
	Search     *string
	Department *string
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		dispatcher: deps.Dispatcher,
	}
}

// List returns the filtered total and one page of employees.
func (s *EmployeeService) List(ctx context.Context, in EmployeeListInput) (int64, []domain.Employee, error) {
	if in.Skip < 0 {
		return 0, nil, apperrors.NewValidationError("invalid query parameters",
			map[string]any{"skip": "must not be negative"})
	}
	if in.Limit < 1 || in.Limit > 1000 {
		return 0, nil, apperrors.NewValidationError("invalid query parameters",
			map[string]any{"limit": "must be between 1 and 1000"})
	}

	return s.employees.List(ctx, repository.EmployeeFilter{
		Search:     in.Search,
		Department: in.Department,
		Limit:      in.Limit,
		Offset:     in.Skip,
	})
}

// Get fetches a single employee by id.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return nil, err
	}
	return emp, nil
}

// Create validates and inserts a new employee record.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeCreateInput) (*domain.Employee, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}
	if in.Email != nil {
		if err := ensureEmailFree(ctx, s.employees, *in.Email, 0); err != nil {
			return nil, err
		}
	}

	emp := newEmployee(in)
	if err := s.employees.Create(ctx, emp); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewDuplicateEmail(derefString(in.Email))
		}
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventEmployeeCreated,
		events.EmployeeMutatedPayload{EmployeeID: emp.ID}))
	return emp, nil
}

// Update applies only the supplied fields to an existing record.
func (s *EmployeeService) Update(ctx context.Context, id int64, in EmployeeUpdateInput) (*domain.Employee, error) {
	if err := validateUpdateInput(in); err != nil {
		return nil, err
	}

	current, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return nil, err
	}

	if in.Email != nil && (current.Email == nil || *current.Email != *in.Email) {
		if err := ensureEmailFree(ctx, s.employees, *in.Email, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.employees.Update(ctx, id, repository.EmployeePatch{
		Name:              in.Name,
		Role:              in.Role,
		Salary:            in.Salary,
		Email:             in.Email,
		Department:        in.Department,
		PerformanceRating: in.PerformanceRating,
		Skills:            in.Skills,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewDuplicateEmail(derefString(in.Email))
		}
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventEmployeeUpdated,
		events.EmployeeMutatedPayload{EmployeeID: id}))
	return updated, nil
}

// Delete removes a record irrecoverably.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventEmployeeDeleted,
		events.EmployeeMutatedPayload{EmployeeID: id}))
	return nil
}

// ensureEmailFree rejects emails already used by a record other than selfID.
// The unique index on employees.email remains the authoritative guard; this
// check only produces the friendlier error.
func ensureEmailFree(ctx context.Context, repo repository.EmployeeRepository, email string, selfID int64) error {
	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewDuplicateEmail(email)
	}
	return nil
}

func newEmployee(in EmployeeCreateInput) *domain.Employee {
	rating := 0.0
	if in.PerformanceRating != nil {
		rating = *in.PerformanceRating
	}
	return &domain.Employee{
		Name:              in.Name,
		Role:              in.Role,
		Salary:            *in.Salary,
		Email:             in.Email,
		Department:        in.Department,
		PerformanceRating: rating,
		Skills:            in.Skills,
	}
}

func derefString(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}
