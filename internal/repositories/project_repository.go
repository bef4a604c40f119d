package repositories

import (
	"freelance_backend/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(db *gorm.DB, project *models.Project) error
	FindUnassigned(db *gorm.DB) ([]models.Project, error)
	// AssignManager не перезаписывает уже назначенного менеджера; false: проект успели занять
	AssignManager(db *gorm.DB, projectID, managerID string) (bool, error)
	CountByManager(db *gorm.DB) (map[string]int64, error)
}

type ProjectRepositoryImpl struct{}

func NewProjectRepository() ProjectRepository {
	return &ProjectRepositoryImpl{}
}

func (r *ProjectRepositoryImpl) Create(db *gorm.DB, project *models.Project) error {
	return db.Create(project).Error
}

func (r *ProjectRepositoryImpl) FindUnassigned(db *gorm.DB) ([]models.Project, error) {
	var projects []models.Project
	err := db.Where("manager_id IS NULL").
		Order("created_at ASC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) AssignManager(db *gorm.DB, projectID, managerID string) (bool, error) {
	result := db.Model(&models.Project{}).
		Where("id = ? AND manager_id IS NULL", projectID).
		Update("manager_id", managerID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ProjectRepositoryImpl) CountByManager(db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		ManagerID string
		Total     int64
	}
	err := db.Model(&models.Project{}).
		Select("manager_id, COUNT(*) AS total").
		Where("manager_id IS NOT NULL").
		Group("manager_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ManagerID] = row.Total
	}
	return counts, nil
}
