package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/spec-kit/employee-service/internal/repository"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"ID", "Name", "Email", "Role", "Department",
	"Salary", "Performance Rating", "Skills", "Created At",
}

// ExportService serializes the full employee set to CSV.
type ExportService struct {
	employees repository.EmployeeRepository
}

// NewExportService constructs the service.
func NewExportService(repo repository.EmployeeRepository) *ExportService {
	return &ExportService{employees: repo}
}

// WriteCSV streams every record to w, one row per employee. Optional fields
// render as empty strings; an empty store yields the header row only.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for i := range employees {
		emp := &employees[i]
		record := []string{
			strconv.FormatInt(emp.ID, 10),
			emp.Name,
			derefString(emp.Email),
			emp.Role,
			derefString(emp.Department),
			formatFloat(emp.Salary),
			formatFloat(emp.PerformanceRating),
			derefString(emp.Skills),
			emp.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
