package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/internal/infrastructure/models"
)

const visitDayLayout = "2006-01-02"

// StatisticRepository implements reporting queries
type StatisticRepository struct {
	db *gorm.DB
}

func NewStatisticRepository(db *gorm.DB) *StatisticRepository {
	return &StatisticRepository{db: db}
}

func (r *StatisticRepository) DoneImageCountByTeam(ctx context.Context, from, to time.Time) (map[uuid.UUID]int, error) {
	var rows []struct {
		TeamID uuid.UUID
		Total  int
	}
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Project{}).
		Select("team_id, COALESCE(SUM(image_count), 0) AS total").
		Where("status = ?", string(entities.ProjectStatusDone)).
		Where("team_id IS NOT NULL").
		Where("done_at >= ? AND done_at <= ?", from.UTC(), to.UTC()).
		Group("team_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.TeamID] = row.Total
	}
	return counts, nil
}

func (r *StatisticRepository) IncrementVisit(ctx context.Context, day time.Time) (*entities.VisitCounter, error) {
	key := day.Format(visitDayLayout)
	now := time.Now()
	db := GetDB(ctx, r.db).WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":      gorm.Expr("visit_counters.count + 1"),
			"updated_at": now,
		}),
	}).Create(&models.VisitCounter{Day: key, Count: 1, UpdatedAt: now}).Error
	if err != nil {
		return nil, err
	}

	var m models.VisitCounter
	if err := db.Where("day = ?", key).First(&m).Error; err != nil {
		return nil, err
	}
	return visitToEntity(&m, day.Location()), nil
}

func (r *StatisticRepository) ListVisits(ctx context.Context, from, to time.Time) ([]*entities.VisitCounter, error) {
	var ms []models.VisitCounter
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("day >= ? AND day <= ?", from.Format(visitDayLayout), to.Format(visitDayLayout)).
		Order("day ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.VisitCounter, 0, len(ms))
	for i := range ms {
		items = append(items, visitToEntity(&ms[i], from.Location()))
	}
	return items, nil
}

func visitToEntity(m *models.VisitCounter, loc *time.Location) *entities.VisitCounter {
	day, _ := time.ParseInLocation(visitDayLayout, m.Day, loc)
	return &entities.VisitCounter{Day: day, Count: m.Count, UpdatedAt: m.UpdatedAt}
}
