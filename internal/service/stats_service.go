package service

import (
	"context"
	"math"
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

// recentHireWindow is the trailing period counted as a recent hire.
const recentHireWindow = 30 * 24 * time.Hour

// StatsService computes the point-in-time workforce summary.
type StatsService struct {
	employees repository.EmployeeRepository
	cache     *StatsCache
	now       func() time.Time
}

// StatsDependencies bundles requirements for the stats service.
type StatsDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Cache        *StatsCache
}

// NewStatsService constructs the service.
func NewStatsService(deps StatsDependencies) *StatsService {
	return &StatsService{
		employees: deps.EmployeeRepo,
		cache:     deps.Cache,
		now:       time.Now,
	}
}

// Summary aggregates counts, averages, growth rate and the department
// breakdown over the full current record set.
func (s *StatsService) Summary(ctx context.Context) (*domain.EmployeeStats, error) {
	if stats, ok := s.cache.Get(ctx); ok {
		return stats, nil
	}

	cutoff := s.now().Add(-recentHireWindow)
	agg, err := s.employees.Aggregate(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	stats := buildStats(agg)
	s.cache.Set(ctx, stats)
	return stats, nil
}

func buildStats(agg *repository.StatsAggregate) *domain.EmployeeStats {
	stats := &domain.EmployeeStats{
		TotalEmployees: agg.TotalEmployees,
		RecentHires:    agg.RecentHires,
		Departments:    make([]domain.DepartmentCount, 0, len(agg.Departments)),
	}

	if agg.TotalEmployees > 0 {
		stats.AverageSalary = round2(agg.AverageSalary)
		stats.AveragePerformance = round1(agg.AveragePerformance)
		stats.GrowthRate = round1(float64(agg.RecentHires) / float64(agg.TotalEmployees) * 100)
	}

	for _, group := range agg.Departments {
		name := domain.UnassignedDepartment
		if group.Department != nil && *group.Department != "" {
			name = *group.Department
		}
		stats.Departments = append(stats.Departments, domain.DepartmentCount{
			Name:  name,
			Count: group.Count,
		})
	}
	return stats
}

func round2(val float64) float64 {
	return math.Round(val*100) / 100
}

func round1(val float64) float64 {
	return math.Round(val*10) / 10
}
