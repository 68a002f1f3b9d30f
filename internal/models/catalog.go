package models

import (
	"time"
)

// Project is a row of the local catalog cache, mirrored from the Work Hours
// server by `tracker sync`.
type Project struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	Name   string `gorm:"not null" json:"name"`
	Client string `json:"client"`

	// Relationships
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks"`
}

// Task is a row of the local catalog cache. Only open tasks are offered by
// the picker; the status field mirrors whatever the server reports.
type Task struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID uint   `gorm:"index;not null" json:"project_id"`
	Title     string `gorm:"not null" json:"title"`
	Status    string `json:"status"`
}

// TimeLogRecord is the local history of sessions that were successfully
// persisted to the server. It exists so `tracker log` works offline; the
// server copy stays authoritative.
type TimeLogRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ProjectID   uint   `gorm:"not null" json:"project_id"`
	ProjectName string `json:"project_name"`
	TaskID      *uint  `json:"task_id"`
	TaskTitle   string `json:"task_title"`

	StartedAt       time.Time `gorm:"not null" json:"started_at"`
	EndedAt         time.Time `gorm:"not null" json:"ended_at"`
	DurationSeconds int       `json:"duration_seconds"`
	Note            string    `json:"note"`
}
