package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

// fakeEmployeeRepo is an in-memory stand-in for the Postgres repository. It
// mirrors the storage-level behavior the services rely on: pgx.ErrNoRows for
// missing rows and a 23505 PgError for email collisions.
type fakeEmployeeRepo struct {
	mu        sync.Mutex
	nextID    int64
	employees map[int64]*domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[int64]*domain.Employee)}
}

// seed inserts a record directly, preserving the given timestamps.
func (f *fakeEmployeeRepo) seed(emp domain.Employee) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	emp.ID = f.nextID
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now()
	}
	f.employees[emp.ID] = &emp
	return emp.ID
}

// sortedLocked returns records in id order; callers hold the mutex.
func (f *fakeEmployeeRepo) sortedLocked() []*domain.Employee {
	result := make([]*domain.Employee, 0, len(f.employees))
	for id := int64(1); id <= f.nextID; id++ {
		if emp, ok := f.employees[id]; ok {
			result = append(result, emp)
		}
	}
	return result
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if emp.Email != nil {
		for _, existing := range f.employees {
			if existing.Email != nil && *existing.Email == *emp.Email {
				return &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"}
			}
		}
	}
	f.nextID++
	emp.ID = f.nextID
	emp.CreatedAt = time.Now()
	emp.UpdatedAt = nil
	stored := *emp
	f.employees[emp.ID] = &stored
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, id int64, patch repository.EmployeePatch) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if patch.Email != nil {
		for _, existing := range f.employees {
			if existing.ID != id && existing.Email != nil && *existing.Email == *patch.Email {
				return nil, &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"}
			}
		}
	}
	if patch.Name != nil {
		emp.Name = *patch.Name
	}
	if patch.Role != nil {
		emp.Role = *patch.Role
	}
	if patch.Salary != nil {
		emp.Salary = *patch.Salary
	}
	if patch.Email != nil {
		email := *patch.Email
		emp.Email = &email
	}
	if patch.Department != nil {
		department := *patch.Department
		emp.Department = &department
	}
	if patch.PerformanceRating != nil {
		emp.PerformanceRating = *patch.PerformanceRating
	}
	if patch.Skills != nil {
		skills := *patch.Skills
		emp.Skills = &skills
	}
	now := time.Now()
	emp.UpdatedAt = &now
	copied := *emp
	return &copied, nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.employees[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *emp
	return &copied, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, emp := range f.sortedLocked() {
		if emp.Email != nil && *emp.Email == email {
			copied := *emp
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) (int64, []domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]domain.Employee, 0)
	for _, emp := range f.sortedLocked() {
		if filter.Search != nil && *filter.Search != "" {
			if !strings.Contains(emp.Name, *filter.Search) && !strings.Contains(emp.Role, *filter.Search) {
				continue
			}
		}
		if filter.Department != nil && *filter.Department != "" {
			if emp.Department == nil || *emp.Department != *filter.Department {
				continue
			}
		}
		matched = append(matched, *emp)
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return total, nil, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return total, matched[filter.Offset:end], nil
}

func (f *fakeEmployeeRepo) ListAll(_ context.Context) ([]domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.Employee, 0, len(f.employees))
	for _, emp := range f.sortedLocked() {
		result = append(result, *emp)
	}
	return result, nil
}

func (f *fakeEmployeeRepo) Aggregate(_ context.Context, recentSince time.Time) (*repository.StatsAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	agg := &repository.StatsAggregate{}
	type group struct {
		department *string
		count      int64
	}
	groups := map[string]*group{}

	var salarySum, ratingSum float64
	for _, emp := range f.employees {
		agg.TotalEmployees++
		salarySum += emp.Salary
		ratingSum += emp.PerformanceRating
		if !emp.CreatedAt.Before(recentSince) {
			agg.RecentHires++
		}

		key := "\x00nil"
		if emp.Department != nil {
			key = *emp.Department
		}
		if _, ok := groups[key]; !ok {
			groups[key] = &group{department: emp.Department}
		}
		groups[key].count++
	}

	if agg.TotalEmployees > 0 {
		agg.AverageSalary = salarySum / float64(agg.TotalEmployees)
		agg.AveragePerformance = ratingSum / float64(agg.TotalEmployees)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := groups[keys[i]], groups[keys[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return keys[i] < keys[j]
	})
	for _, key := range keys {
		agg.Departments = append(agg.Departments, repository.DepartmentGroup{
			Department: groups[key].department,
			Count:      groups[key].count,
		})
	}
	return agg, nil
}

func strPtr(val string) *string { return &val }

func floatPtr(val float64) *float64 { return &val }
