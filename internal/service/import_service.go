package service

import (
	"context"
	"errors"

	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// ImportService applies a batch of creations with per-item failure isolation.
type ImportService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
}

// ImportDependencies bundles requirements for the import service.
type ImportDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
}

// BulkItemError reports one skipped entry.
type BulkItemError struct {
	Index   int
	Email   string
	Message string
}

// BulkImportResult summarizes a batch outcome.
type BulkImportResult struct {
	Created     int
	EmployeeIDs []int64
	Errors      []BulkItemError
}

// NewImportService constructs the service.
func NewImportService(deps ImportDependencies) *ImportService {
	return &ImportService{
		employees:  deps.EmployeeRepo,
		dispatcher: deps.Dispatcher,
	}
}

// BulkImport processes entries independently in input order; a failing entry
// is recorded and skipped, never aborting the batch. Emails accepted earlier
// in the same batch count as taken for later entries.
func (s *ImportService) BulkImport(ctx context.Context, inputs []EmployeeCreateInput) (*BulkImportResult, error) {
	result := &BulkImportResult{
		EmployeeIDs: make([]int64, 0, len(inputs)),
		Errors:      make([]BulkItemError, 0),
	}
	accepted := make(map[string]struct{})

	for idx, in := range inputs {
		if err := validateCreateInput(in); err != nil {
			result.Errors = append(result.Errors, BulkItemError{Index: idx, Message: err.Error()})
			continue
		}

		if in.Email != nil {
			email := *in.Email
			if _, taken := accepted[email]; taken {
				result.Errors = append(result.Errors, duplicateItemError(idx, email))
				continue
			}
			if err := ensureEmailFree(ctx, s.employees, email, 0); err != nil {
				result.Errors = append(result.Errors, itemError(idx, email, err))
				continue
			}
		}

		emp := newEmployee(in)
		if err := s.employees.Create(ctx, emp); err != nil {
			result.Errors = append(result.Errors, itemError(idx, derefString(in.Email), err))
			continue
		}

		if in.Email != nil {
			accepted[*in.Email] = struct{}{}
		}
		result.EmployeeIDs = append(result.EmployeeIDs, emp.ID)
	}

	result.Created = len(result.EmployeeIDs)
	if result.Created > 0 {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventEmployeesImported,
			events.EmployeesImportedPayload{Created: result.Created, EmployeeIDs: result.EmployeeIDs}))
	}
	return result, nil
}

func itemError(idx int, email string, err error) BulkItemError {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == "DUPLICATE_EMAIL" {
		return duplicateItemError(idx, email)
	}
	if repository.IsUniqueViolation(err) {
		return duplicateItemError(idx, email)
	}
	return BulkItemError{Index: idx, Message: err.Error()}
}

func duplicateItemError(idx int, email string) BulkItemError {
	return BulkItemError{Index: idx, Email: email, Message: "email already registered"}
}
