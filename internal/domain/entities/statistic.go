package entities

import (
	"time"

	"github.com/google/uuid"
)

// TeamProduction is one team's finished image count inside a week bucket
type TeamProduction struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Count int       `json:"count"`
}

// WeeklyProduction is one 7-day bucket of a month
type WeeklyProduction struct {
	Start time.Time        `json:"start"`
	End   time.Time        `json:"end"`
	Teams []TeamProduction `json:"teams"`
}

// Total sums the bucket's team counts.
func (w WeeklyProduction) Total() int {
	total := 0
	for _, t := range w.Teams {
		total += t.Count
	}
	return total
}

// VisitCounter is the number of dashboard visits recorded on one day
type VisitCounter struct {
	Day       time.Time `json:"day"`
	Count     int64     `json:"count"`
	UpdatedAt time.Time `json:"updatedAt"`
}
