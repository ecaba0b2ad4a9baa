package dto

import (
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/service"
)

// CreateEmployeeRequest payload. Salary is a pointer so a missing field is
// rejected instead of defaulting to zero.
type CreateEmployeeRequest struct {
	Name              string   `json:"name"`
	Role              string   `json:"role"`
	Salary            *float64 `json:"salary"`
	Email             *string  `json:"email"`
	Department        *string  `json:"department"`
	PerformanceRating *float64 `json:"performance_rating"`
	Skills            *string  `json:"skills"`
}

// UpdateEmployeeRequest payload; absent fields keep their stored values.
type UpdateEmployeeRequest struct {
	Name              *string  `json:"name"`
	Role              *string  `json:"role"`
	Salary            *float64 `json:"salary"`
	Email             *string  `json:"email"`
	Department        *string  `json:"department"`
	PerformanceRating *float64 `json:"performance_rating"`
	Skills            *string  `json:"skills"`
}

// EmployeeResponse is the full record shape.
type EmployeeResponse struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Role              string     `json:"role"`
	Salary            float64    `json:"salary"`
	Email             *string    `json:"email"`
	Department        *string    `json:"department"`
	PerformanceRating float64    `json:"performance_rating"`
	Skills            *string    `json:"skills"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// ListEmployeesResponse carries the filtered total plus one page.
type ListEmployeesResponse struct {
	Total     int64              `json:"total"`
	Employees []EmployeeResponse `json:"employees"`
}

// DeleteEmployeeResponse confirms a deletion.
type DeleteEmployeeResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// DepartmentStat is one group of the department breakdown.
type DepartmentStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// StatsResponse is the summary statistics shape.
type StatsResponse struct {
	TotalEmployees     int64            `json:"total_employees"`
	AverageSalary      float64          `json:"average_salary"`
	AveragePerformance float64          `json:"average_performance"`
	GrowthRate         float64          `json:"growth_rate"`
	RecentHires        int64            `json:"recent_hires"`
	Departments        []DepartmentStat `json:"departments"`
}

// BulkError reports one skipped bulk entry.
type BulkError struct {
	Index int    `json:"index"`
	Email string `json:"email,omitempty"`
	Error string `json:"error"`
}

// BulkCreateResponse summarizes a bulk import.
type BulkCreateResponse struct {
	Created     int         `json:"created"`
	EmployeeIDs []int64     `json:"employee_ids"`
	Errors      []BulkError `json:"errors"`
}

// ToCreateInput converts the request to a service input.
func (r CreateEmployeeRequest) ToCreateInput() service.EmployeeCreateInput {
	return service.EmployeeCreateInput{
		Name:              r.Name,
		Role:              r.Role,
		Salary:            r.Salary,
		Email:             r.Email,
		Department:        r.Department,
		PerformanceRating: r.PerformanceRating,
		Skills:            r.Skills,
	}
}

// ToUpdateInput converts the request to a service input.
func (r UpdateEmployeeRequest) ToUpdateInput() service.EmployeeUpdateInput {
	return service.EmployeeUpdateInput{
		Name:              r.Name,
		Role:              r.Role,
		Salary:            r.Salary,
		Email:             r.Email,
		Department:        r.Department,
		PerformanceRating: r.PerformanceRating,
		Skills:            r.Skills,
	}
}

// NewEmployeeResponse maps a domain record.
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                emp.ID,
		Name:              emp.Name,
		Role:              emp.Role,
		Salary:            emp.Salary,
		Email:             emp.Email,
		Department:        emp.Department,
		PerformanceRating: emp.PerformanceRating,
		Skills:            emp.Skills,
		CreatedAt:         emp.CreatedAt,
		UpdatedAt:         emp.UpdatedAt,
	}
}

// NewListResponse maps a listing page.
func NewListResponse(total int64, employees []domain.Employee) ListEmployeesResponse {
	items := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, NewEmployeeResponse(&employees[i]))
	}
	return ListEmployeesResponse{Total: total, Employees: items}
}

// NewStatsResponse maps the summary.
func NewStatsResponse(stats *domain.EmployeeStats) StatsResponse {
	departments := make([]DepartmentStat, 0, len(stats.Departments))
	for _, dept := range stats.Departments {
		departments = append(departments, DepartmentStat{Name: dept.Name, Count: dept.Count})
	}
	return StatsResponse{
		TotalEmployees:     stats.TotalEmployees,
		AverageSalary:      stats.AverageSalary,
		AveragePerformance: stats.AveragePerformance,
		GrowthRate:         stats.GrowthRate,
		RecentHires:        stats.RecentHires,
		Departments:        departments,
	}
}

// NewBulkCreateResponse maps a batch outcome.
func NewBulkCreateResponse(result *service.BulkImportResult) BulkCreateResponse {
	errs := make([]BulkError, 0, len(result.Errors))
	for _, item := range result.Errors {
		errs = append(errs, BulkError{Index: item.Index, Email: item.Email, Error: item.Message})
	}
	ids := result.EmployeeIDs
	if ids == nil {
		ids = []int64{}
	}
	return BulkCreateResponse{
		Created:     result.Created,
		EmployeeIDs: ids,
		Errors:      errs,
	}
}
