package services

import (
	"context"
	"errors"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"

	"gorm.io/gorm"
)

// ErrNoActiveManagers: backfill без менеджеров невозможен, задача должна упасть
var ErrNoActiveManagers = errors.New("no active project managers found")

const assignmentJob = "assign-managers"

// Assignment: одна запланированная пара проект -> менеджер
type Assignment struct {
	ProjectID string `json:"projectId"`
	ManagerID string `json:"managerId"`
}

// AssignmentReport: итог прогона backfill
type AssignmentReport struct {
	Projects int          `json:"projects"`
	Managers int          `json:"managers"`
	Assigned int          `json:"assigned"`
	Skipped  int          `json:"skipped"`
	DryRun   bool         `json:"dryRun"`
	Plan     []Assignment `json:"plan,omitempty"`
	// ManagerLoad: сколько проектов у каждого активного менеджера после прогона
	ManagerLoad map[string]int64 `json:"managerLoad,omitempty"`
}

type AssignmentService interface {
	AssignUnassigned(ctx context.Context, db *gorm.DB, dryRun bool) (*AssignmentReport, error)
}

type AssignmentServiceImpl struct {
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
}

func NewAssignmentService(
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
) AssignmentService {
	return &AssignmentServiceImpl{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// PlanRoundRobin раздаёт проекты по кругу: i-й проект уходит менеджеру i mod M.
// Порядок обоих списков сохраняется как есть.
func PlanRoundRobin(projectIDs, managerIDs []string) []Assignment {
	if len(managerIDs) == 0 {
		return nil
	}

	plan := make([]Assignment, 0, len(projectIDs))
	for i, projectID := range projectIDs {
		plan = append(plan, Assignment{
			ProjectID: projectID,
			ManagerID: managerIDs[i%len(managerIDs)],
		})
	}
	return plan
}

// AssignUnassigned закрепляет все проекты без менеджера за активными менеджерами.
// Запись защищена условием manager_id IS NULL, поэтому уже назначенные проекты
// не перезаписываются и попадают в Skipped.
func (s *AssignmentServiceImpl) AssignUnassigned(ctx context.Context, db *gorm.DB, dryRun bool) (*AssignmentReport, error) {
	db = db.WithContext(ctx)

	managers, err := s.userRepo.FindActiveByRole(db, models.UserRoleProjectManager)
	if err != nil {
		logger.JobLog(assignmentJob, "load_managers", err)
		return nil, err
	}
	if len(managers) == 0 {
		return nil, ErrNoActiveManagers
	}

	projects, err := s.projectRepo.FindUnassigned(db)
	if err != nil {
		logger.JobLog(assignmentJob, "load_projects", err)
		return nil, err
	}

	managerIDs := make([]string, len(managers))
	for i := range managers {
		managerIDs[i] = managers[i].ID
	}
	projectIDs := make([]string, len(projects))
	for i := range projects {
		projectIDs[i] = projects[i].ID
	}

	plan := PlanRoundRobin(projectIDs, managerIDs)
	report := &AssignmentReport{
		Projects: len(projects),
		Managers: len(managers),
		DryRun:   dryRun,
	}
	logger.JobLog(assignmentJob, "plan", nil, "projects", report.Projects, "managers", report.Managers)

	if dryRun {
		report.Plan = plan
		return report, nil
	}

	for _, a := range plan {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		assigned, err := s.projectRepo.AssignManager(db, a.ProjectID, a.ManagerID)
		if err != nil {
			logger.JobLog(assignmentJob, "assign", err, "project_id", a.ProjectID, "manager_id", a.ManagerID)
			return report, err
		}
		if !assigned {
			// кто-то успел назначить менеджера между выборкой и записью
			report.Skipped++
			logger.Warn("project already has a manager, skipped", "job", assignmentJob, "project_id", a.ProjectID)
			continue
		}
		report.Assigned++
		logger.Debug("project assigned", "job", assignmentJob, "project_id", a.ProjectID, "manager_id", a.ManagerID)
	}

	logger.JobLog(assignmentJob, "apply", nil, "assigned", report.Assigned, "skipped", report.Skipped)

	counts, err := s.projectRepo.CountByManager(db)
	if err != nil {
		logger.JobLog(assignmentJob, "count_load", err)
		return report, err
	}
	report.ManagerLoad = make(map[string]int64, len(managerIDs))
	for _, id := range managerIDs {
		report.ManagerLoad[id] = counts[id]
	}
	return report, nil
}
