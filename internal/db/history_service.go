package db

import (
	"time"

	"github.com/work-hours/tracker/internal/models"
	"github.com/work-hours/tracker/internal/session"
)

// RecordTimeLog mirrors a successfully submitted session into the local
// history table.
func RecordTimeLog(sess session.SubmittedSession) (*models.TimeLogRecord, error) {
	record := models.TimeLogRecord{
		ProjectID:       sess.ProjectID,
		ProjectName:     sess.ProjectName,
		TaskID:          sess.TaskID,
		TaskTitle:       sess.TaskTitle,
		StartedAt:       sess.StartedAt,
		EndedAt:         sess.EndedAt,
		DurationSeconds: int(sess.Duration().Seconds()),
		Note:            sess.Note,
	}

	if err := DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// GetTimeLogsInRange returns recorded logs that started within the range,
// oldest first.
func GetTimeLogsInRange(startTime, endTime time.Time) ([]models.TimeLogRecord, error) {
	var records []models.TimeLogRecord

	err := DB.Where("started_at >= ? AND started_at <= ?", startTime, endTime).
		Order("started_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// RecentTimeLogs returns the most recent recorded logs, newest first.
func RecentTimeLogs(limit int) ([]models.TimeLogRecord, error) {
	var records []models.TimeLogRecord

	err := DB.Order("started_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
