package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/internal/interfaces/http/response"
)

type offeringLister interface {
	List(ctx context.Context, filter entities.OfferingFilter) ([]*entities.Offering, error)
}

type OfferingHandler struct {
	service offeringLister
}

func NewOfferingHandler(service offeringLister) *OfferingHandler {
	return &OfferingHandler{service: service}
}

// ListOfferings returns the offer history of a project.
// GET /offering/list?project_id_eq=&with=team&sort=created_at:desc
func (h *OfferingHandler) ListOfferings(c *gin.Context) {
	projectID, err := queryUUID(c, "project_id_eq")
	if err != nil {
		response.Error(c, err)
		return
	}

	offerings, err := h.service.List(c.Request.Context(), entities.OfferingFilter{
		ProjectID: projectID,
		WithTeam:  withSet(c)["team"],
		SortDesc:  sortDesc(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Docs(c, offerings, nil)
}
