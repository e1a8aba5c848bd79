package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/repositories"
)

const weekDays = 7

// StatisticUsecase answers reporting queries
type StatisticUsecase struct {
	statRepo repositories.StatisticRepository
	teamRepo repositories.TeamRepository
	cache    *cache.Cache
	loc      *time.Location
	now      func() time.Time
}

// NewStatisticUsecase caches weekly production for ttl; a non-positive ttl disables caching.
func NewStatisticUsecase(statRepo repositories.StatisticRepository, teamRepo repositories.TeamRepository, loc *time.Location, ttl time.Duration) *StatisticUsecase {
	if loc == nil {
		loc = time.UTC
	}
	var c *cache.Cache
	if ttl > 0 {
		c = cache.New(ttl, 2*ttl)
	}
	return &StatisticUsecase{statRepo: statRepo, teamRepo: teamRepo, cache: c, loc: loc, now: time.Now}
}

// SetClock overrides the time source.
func (u *StatisticUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Location is the studio time zone used for bucketing.
func (u *StatisticUsecase) Location() *time.Location {
	return u.loc
}

// ImageProductionPerWeek splits the month into 7-day buckets from day 1 and
// reports the finished image count of every artist team per bucket.
func (u *StatisticUsecase) ImageProductionPerWeek(ctx context.Context, monthIndex, year int) ([]entities.WeeklyProduction, error) {
	if monthIndex < 0 || monthIndex > 11 {
		return nil, domainerrors.BadRequest("Month must be between 0 and 11")
	}
	if year < 1 {
		return nil, domainerrors.BadRequest("Invalid year")
	}

	key := fmt.Sprintf("image-production:%04d-%02d", year, monthIndex)
	if u.cache != nil {
		if cached, ok := u.cache.Get(key); ok {
			return cached.([]entities.WeeklyProduction), nil
		}
	}

	role := entities.TeamRoleArtist
	teams, err := u.teamRepo.List(ctx, entities.TeamFilter{Role: &role})
	if err != nil {
		return nil, err
	}

	buckets := weekBuckets(year, time.Month(monthIndex+1), u.loc)
	out := make([]entities.WeeklyProduction, 0, len(buckets))
	for _, b := range buckets {
		counts, err := u.statRepo.DoneImageCountByTeam(ctx, b.Start.UTC(), b.End.UTC())
		if err != nil {
			return nil, err
		}
		week := entities.WeeklyProduction{
			Start: b.Start,
			End:   b.End,
			Teams: make([]entities.TeamProduction, 0, len(teams)),
		}
		for _, t := range teams {
			week.Teams = append(week.Teams, entities.TeamProduction{ID: t.ID, Name: t.Name, Count: counts[t.ID]})
		}
		out = append(out, week)
	}

	if u.cache != nil {
		u.cache.SetDefault(key, out)
	}
	return out, nil
}

// RecordVisit bumps today's counter in the studio time zone.
func (u *StatisticUsecase) RecordVisit(ctx context.Context) (*entities.VisitCounter, error) {
	return u.statRepo.IncrementVisit(ctx, u.now().In(u.loc))
}

// ListVisits returns counters between two days; zero bounds default to the last 30 days.
func (u *StatisticUsecase) ListVisits(ctx context.Context, from, to time.Time) ([]*entities.VisitCounter, error) {
	if to.IsZero() {
		to = u.now().In(u.loc)
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if to.Before(from) {
		return nil, domainerrors.BadRequest("Invalid date range")
	}
	return u.statRepo.ListVisits(ctx, from, to)
}

type dayRange struct {
	Start time.Time
	End   time.Time
}

// weekBuckets covers the whole month; the last bucket ends on the month's last day.
func weekBuckets(year int, month time.Month, loc *time.Location) []dayRange {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lastDay := first.AddDate(0, 1, -1).Day()

	var out []dayRange
	for day := 1; day <= lastDay; day += weekDays {
		endDay := day + weekDays - 1
		if endDay > lastDay {
			endDay = lastDay
		}
		start := time.Date(year, month, day, 0, 0, 0, 0, loc)
		end := time.Date(year, month, endDay, 23, 59, 59, int(time.Second-time.Millisecond), loc)
		out = append(out, dayRange{Start: start, End: end})
	}
	return out
}
