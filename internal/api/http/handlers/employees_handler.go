package handlers

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// EmployeesHandler manages employee endpoints.
type EmployeesHandler struct {
	employees *service.EmployeeService
	stats     *service.StatsService
	importer  *service.ImportService
	exporter  *service.ExportService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService, stats *service.StatsService,
	importer *service.ImportService, exporter *service.ExportService) *EmployeesHandler {
	return &EmployeesHandler{
		employees: employees,
		stats:     stats,
		importer:  importer,
		exporter:  exporter,
	}
}

// List GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		return err
	}

	total, employees, err := h.employees.List(c.UserContext(), service.EmployeeListInput{
		Skip:       skip,
		Limit:      limit,
		Search:     optionalQuery(c, "search"),
		Department: optionalQuery(c, "department"),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(total, employees))
}

// Get GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}
	emp, err := h.employees.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(emp))
}

// Create POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	emp, err := h.employees.Create(c.UserContext(), req.ToCreateInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewEmployeeResponse(emp))
}

// Update PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	emp, err := h.employees.Update(c.UserContext(), id, req.ToUpdateInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(emp))
}

// Delete DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}
	if err := h.employees.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.DeleteEmployeeResponse{
		Message: "Employee deleted successfully",
		ID:      id,
	})
}

// Stats GET /employees/stats/summary.
func (h *EmployeesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.stats.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStatsResponse(stats))
}

// BulkCreate POST /employees/bulk.
func (h *EmployeesHandler) BulkCreate(c *fiber.Ctx) error {
	var reqs []dto.CreateEmployeeRequest
	if err := c.BodyParser(&reqs); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	inputs := make([]service.EmployeeCreateInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, req.ToCreateInput())
	}

	result, err := h.importer.BulkImport(c.UserContext(), inputs)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBulkCreateResponse(result))
}

// ExportCSV GET /employees/export/csv.
func (h *EmployeesHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.exporter.WriteCSV(c.UserContext(), &buf); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=employees.csv`)
	return c.SendStream(bytes.NewReader(buf.Bytes()))
}

func parseEmployeeID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid employee id", map[string]any{"id": raw})
	}
	return id, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid query parameters",
			map[string]any{key: "must be an integer"})
	}
	return parsed, nil
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	return &raw
}
