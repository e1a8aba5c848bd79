package models

import "time"

type VisitCounter struct {
	Day       string `gorm:"type:varchar(10);primaryKey"`
	Count     int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (VisitCounter) TableName() string {
	return "visit_counters"
}

// All lists every model owned by the schema, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Team{},
		&User{},
		&Payroll{},
		&Project{},
		&ProjectAttachment{},
		&Task{},
		&TaskAttachment{},
		&Offering{},
		&VisitCounter{},
	}
}
