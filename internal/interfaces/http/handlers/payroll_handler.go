package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/interfaces/http/response"
	"studio-ops.backend/pkg/utils"
)

type payrollService interface {
	List(ctx context.Context, filter entities.PayrollFilter) ([]*entities.Payroll, utils.ListMeta, error)
	Create(ctx context.Context, input *entities.CreatePayrollInput) (*entities.Payroll, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdatePayrollInput) (*entities.Payroll, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PayrollHandler struct {
	service payrollService
}

func NewPayrollHandler(service payrollService) *PayrollHandler {
	return &PayrollHandler{service: service}
}

// ListPayrolls returns a page of payrolls.
// GET /payroll/list?id_eq=&status_eq=&team_id_eq=&with=team&with=projects&skip=&limit=&sort=
func (h *PayrollHandler) ListPayrolls(c *gin.Context) {
	var (
		filter entities.PayrollFilter
		err    error
	)
	if filter.ID, err = queryUUID(c, "id_eq"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.TeamID, err = queryUUID(c, "team_id_eq"); err != nil {
		response.Error(c, err)
		return
	}
	if raw := strings.TrimSpace(c.Query("status_eq")); raw != "" {
		status := entities.PayrollStatus(strings.ToUpper(raw))
		if !status.Valid() {
			response.Error(c, domainerrors.BadRequest("Invalid status_eq"))
			return
		}
		filter.Status = &status
	}
	with := withSet(c)
	filter.WithTeam = with["team"]
	filter.WithProjects = with["projects"]
	filter.Page = listParams(c)

	payrolls, meta, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Docs(c, payrolls, meta)
}

// CreatePayroll bundles projects into a payroll.
// POST /payroll
func (h *PayrollHandler) CreatePayroll(c *gin.Context) {
	var input entities.CreatePayrollInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	payroll, err := h.service.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, payroll)
}

// UpdatePayroll marks a payroll paid.
// PATCH /payroll/:id
func (h *PayrollHandler) UpdatePayroll(c *gin.Context) {
	id, err := pathUUID(c, "id", "payroll")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.UpdatePayrollInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	payroll, err := h.service.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, payroll)
}

// DeletePayroll soft deletes a payroll and releases its projects.
// DELETE /payroll/:id
func (h *PayrollHandler) DeletePayroll(c *gin.Context) {
	id, err := pathUUID(c, "id", "payroll")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, gin.H{"id": id})
}
