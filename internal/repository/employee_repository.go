package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeFilter captures listing parameters. Search matches name or role by
// literal substring; Department is an exact match. Filters compose with AND.
type EmployeeFilter struct {
	Search     *string
	Department *string
	Limit      int
	Offset     int
}

// EmployeePatch carries the fields of a partial update. Nil means the field
// was absent from the request and keeps its stored value.
type EmployeePatch struct {
	Name              *string
	Role              *string
	Salary            *float64
	Email             *string
	Department        *string
	PerformanceRating *float64
	Skills            *string
}

// DepartmentGroup is one raw GROUP BY department row. Department is nil for
// records without one.
type DepartmentGroup struct {
	Department *string
	Count      int64
}

// StatsAggregate holds unrounded aggregates over the full employee set.
type StatsAggregate struct {
	TotalEmployees     int64
	AverageSalary      float64
	AveragePerformance float64
	RecentHires        int64
	Departments        []DepartmentGroup
}

// EmployeeRepository encapsulates employee persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, id int64, patch EmployeePatch) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) (int64, []domain.Employee, error)
	ListAll(ctx context.Context) ([]domain.Employee, error)
	Aggregate(ctx context.Context, recentSince time.Time) (*StatsAggregate, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, e.g. from the employees_email_key index.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const employeeColumns = `id, name, role, salary, email, department, performance_rating, skills, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, role, salary, email, department, performance_rating, skills)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		emp.Name,
		emp.Role,
		emp.Salary,
		emp.Email,
		emp.Department,
		emp.PerformanceRating,
		emp.Skills,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, id int64, patch EmployeePatch) (*domain.Employee, error) {
	sets, args := buildPatchClauses(patch)
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), employeeColumns)

	return r.scanOne(r.pool.QueryRow(ctx, query, args...))
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id=$1`, employeeColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE email=$1`, employeeColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) (int64, []domain.Employee, error) {
	where, args := buildFilterClauses(filter)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, nil, err
	}

	pageQuery := fmt.Sprintf(`SELECT %s FROM employees WHERE %s ORDER BY id LIMIT %d OFFSET %d`,
		employeeColumns, where, filter.Limit, filter.Offset)
	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	employees, err := scanEmployees(rows)
	if err != nil {
		return 0, nil, err
	}
	return total, employees, nil
}

func (r *employeeRepository) ListAll(ctx context.Context) ([]domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees ORDER BY id`, employeeColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *employeeRepository) Aggregate(ctx context.Context, recentSince time.Time) (*StatsAggregate, error) {
	agg := &StatsAggregate{}

	const totalsQuery = `
        SELECT COUNT(*), COALESCE(AVG(salary), 0), COALESCE(AVG(performance_rating), 0)
        FROM employees`
	if err := r.pool.QueryRow(ctx, totalsQuery).Scan(
		&agg.TotalEmployees,
		&agg.AverageSalary,
		&agg.AveragePerformance,
	); err != nil {
		return nil, err
	}

	const recentQuery = `SELECT COUNT(*) FROM employees WHERE created_at >= $1`
	if err := r.pool.QueryRow(ctx, recentQuery, recentSince).Scan(&agg.RecentHires); err != nil {
		return nil, err
	}

	const departmentsQuery = `
        SELECT department, COUNT(*)
        FROM employees
        GROUP BY department
        ORDER BY COUNT(*) DESC, department ASC`
	rows, err := r.pool.Query(ctx, departmentsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var group DepartmentGroup
		if err := rows.Scan(&group.Department, &group.Count); err != nil {
			return nil, err
		}
		agg.Departments = append(agg.Departments, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *employeeRepository) scanOne(row pgx.Row) (*domain.Employee, error) {
	var emp domain.Employee
	if err := row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Role,
		&emp.Salary,
		&emp.Email,
		&emp.Department,
		&emp.PerformanceRating,
		&emp.Skills,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func scanEmployees(rows pgx.Rows) ([]domain.Employee, error) {
	var result []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(
			&emp.ID,
			&emp.Name,
			&emp.Role,
			&emp.Salary,
			&emp.Email,
			&emp.Department,
			&emp.PerformanceRating,
			&emp.Skills,
			&emp.CreatedAt,
			&emp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

// buildFilterClauses renders the WHERE clause for List. LIKE keeps literal
// substring semantics, no case normalization.
func buildFilterClauses(filter EmployeeFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(name LIKE %s OR role LIKE %s)", placeholder, placeholder))
	}
	if filter.Department != nil && *filter.Department != "" {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("department=$%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// buildPatchClauses renders SET clauses for Update. Absent fields are left
// untouched; updated_at always refreshes.
func buildPatchClauses(patch EmployeePatch) ([]string, []any) {
	sets := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.Role != nil {
		appendSet("role", *patch.Role)
	}
	if patch.Salary != nil {
		appendSet("salary", *patch.Salary)
	}
	if patch.Email != nil {
		appendSet("email", *patch.Email)
	}
	if patch.Department != nil {
		appendSet("department", *patch.Department)
	}
	if patch.PerformanceRating != nil {
		appendSet("performance_rating", *patch.PerformanceRating)
	}
	if patch.Skills != nil {
		appendSet("skills", *patch.Skills)
	}

	sets = append(sets, "updated_at=NOW()")
	return sets, args
}
