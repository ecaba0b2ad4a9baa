package domain

import "time"

// Employee is the persisted workforce record.
type Employee struct {
	ID                int64
	Name              string
	Role              string
	Salary            float64
	Email             *string
	Department        *string
	PerformanceRating float64
	Skills            *string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// UnassignedDepartment labels records that carry no department value in
// department breakdowns.
const UnassignedDepartment = "Unassigned"

// DepartmentCount is one group in the department breakdown.
type DepartmentCount struct {
	Name  string
	Count int64
}

// EmployeeStats is a point-in-time summary of the workforce.
type EmployeeStats struct {
	TotalEmployees     int64
	AverageSalary      float64
	AveragePerformance float64
	GrowthRate         float64
	RecentHires        int64
	Departments        []DepartmentCount
}
