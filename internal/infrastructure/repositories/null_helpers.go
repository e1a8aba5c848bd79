package repositories

import (
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

func stringPtr(s null.String) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullString(p *string) null.String {
	return null.StringFromPtr(p)
}

func timePtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func nullTime(p *time.Time) null.Time {
	return null.TimeFromPtr(p)
}

func deletedAtPtr(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	v := d.Time
	return &v
}
