package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/interfaces/http/response"
)

type statisticService interface {
	ImageProductionPerWeek(ctx context.Context, monthIndex, year int) ([]entities.WeeklyProduction, error)
	RecordVisit(ctx context.Context) (*entities.VisitCounter, error)
	ListVisits(ctx context.Context, from, to time.Time) ([]*entities.VisitCounter, error)
}

type StatisticHandler struct {
	service statisticService
}

func NewStatisticHandler(service statisticService) *StatisticHandler {
	return &StatisticHandler{service: service}
}

// ImageProductionPerWeek returns finished images per team for each week of a month.
// GET /statistic/image-production-per-week?monthIndex=0&year=2025
func (h *StatisticHandler) ImageProductionPerWeek(c *gin.Context) {
	monthIndex, err := strconv.Atoi(c.Query("monthIndex"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("monthIndex must be a number"))
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("year must be a number"))
		return
	}

	weeks, err := h.service.ImageProductionPerWeek(c.Request.Context(), monthIndex, year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Docs(c, weeks, nil)
}

// RecordVisit bumps today's dashboard visit counter.
// POST /statistic/visit
func (h *StatisticHandler) RecordVisit(c *gin.Context) {
	counter, err := h.service.RecordVisit(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, counter)
}

// ListVisits returns daily visit counters.
// GET /statistic/visits?from=2025-01-01&to=2025-01-31
func (h *StatisticHandler) ListVisits(c *gin.Context) {
	from, err := queryTime(c, "from")
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := queryTime(c, "to")
	if err != nil {
		response.Error(c, err)
		return
	}

	var fromT, toT time.Time
	if from != nil {
		fromT = *from
	}
	if to != nil {
		toT = *to
	}
	visits, err := h.service.ListVisits(c.Request.Context(), fromT, toT)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Docs(c, visits, nil)
}
