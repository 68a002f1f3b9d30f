package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/work-hours/tracker/internal/models"
)

// ReplaceProjects swaps the cached project catalog for the given rows.
func ReplaceProjects(projects []models.Project) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if len(projects) == 0 {
			return nil
		}
		return tx.Create(&projects).Error
	})
}

// ReplaceTasks swaps the cached task catalog for the given rows.
func ReplaceTasks(tasks []models.Task) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		return tx.Create(&tasks).Error
	})
}

// ListProjects returns the cached projects ordered by name.
func ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := DB.Order("name ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListTasks returns cached tasks, optionally limited to one project.
func ListTasks(projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	q := DB.Order("title ASC")
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetProjectByID retrieves a cached project by ID.
func GetProjectByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := DB.First(&project, id).Error; err != nil {
		return nil, fmt.Errorf("project #%d not found in catalog (run 'tracker sync')", id)
	}
	return &project, nil
}

// GetTaskByID retrieves a cached task by ID.
func GetTaskByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := DB.First(&task, id).Error; err != nil {
		return nil, fmt.Errorf("task #%d not found in catalog (run 'tracker sync')", id)
	}
	return &task, nil
}
