package services

import (
	"context"
	"fmt"
	"testing"

	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ids(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return out
}

func TestPlanRoundRobin(t *testing.T) {
	tests := []struct {
		name     string
		projects int
		managers int
	}{
		{"поровну", 6, 3},
		{"с остатком", 7, 3},
		{"один менеджер", 5, 1},
		{"проектов меньше, чем менеджеров", 2, 5},
		{"нет проектов", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanRoundRobin(ids("p", tt.projects), ids("m", tt.managers))
			require.Len(t, plan, tt.projects)

			perManager := map[string]int{}
			for _, a := range plan {
				perManager[a.ManagerID]++
			}

			if tt.projects >= tt.managers {
				lo, hi := tt.projects/tt.managers, (tt.projects+tt.managers-1)/tt.managers
				require.Len(t, perManager, tt.managers)
				for m, n := range perManager {
					assert.GreaterOrEqual(t, n, lo, m)
					assert.LessOrEqual(t, n, hi, m)
				}
			} else {
				for _, n := range perManager {
					assert.Equal(t, 1, n)
				}
			}
		})
	}
}

func TestPlanRoundRobin_Order(t *testing.T) {
	plan := PlanRoundRobin([]string{"p1", "p2", "p3"}, []string{"a", "b"})
	assert.Equal(t, []Assignment{
		{ProjectID: "p1", ManagerID: "a"},
		{ProjectID: "p2", ManagerID: "b"},
		{ProjectID: "p3", ManagerID: "a"},
	}, plan)

	assert.Nil(t, PlanRoundRobin([]string{"p1"}, nil))
}

func newAssignmentService() AssignmentService {
	return NewAssignmentService(repositories.NewProjectRepository(), repositories.NewUserRepository())
}

func countByManager(t *testing.T, db *gorm.DB) map[string]int64 {
	t.Helper()
	counts, err := repositories.NewProjectRepository().CountByManager(db)
	require.NoError(t, err)
	return counts
}

func TestAssignmentService_NoActiveManagers(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@test.com", "password123", models.UserRoleClient)
	testutil.CreateProject(t, db, owner.ID, "Landing page")

	suspended := testutil.CreateUser(t, db, "pm@test.com", "password123", models.UserRoleProjectManager)
	require.NoError(t, db.Model(suspended).Update("status", models.UserStatusSuspended).Error)

	report, err := newAssignmentService().AssignUnassigned(context.Background(), db, false)
	assert.ErrorIs(t, err, ErrNoActiveManagers)
	assert.Nil(t, report)
	assert.Empty(t, countByManager(t, db))
}

func TestAssignmentService_AssignsEvenly(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@test.com", "password123", models.UserRoleClient)
	for i := 0; i < 3; i++ {
		testutil.CreateUser(t, db, fmt.Sprintf("pm%d@test.com", i), "password123", models.UserRoleProjectManager)
	}

	// уже назначенный проект не трогаем
	preassigned := testutil.CreateProject(t, db, owner.ID, "Already managed")
	keeper := testutil.CreateUser(t, db, "keeper@test.com", "password123", models.UserRoleAdmin)
	require.NoError(t, db.Model(preassigned).Update("manager_id", keeper.ID).Error)

	for i := 0; i < 8; i++ {
		testutil.CreateProject(t, db, owner.ID, fmt.Sprintf("Project %d", i))
	}

	report, err := newAssignmentService().AssignUnassigned(context.Background(), db, false)
	require.NoError(t, err)
	assert.Equal(t, 8, report.Projects)
	assert.Equal(t, 3, report.Managers)
	assert.Equal(t, 8, report.Assigned)
	assert.Zero(t, report.Skipped)

	require.Len(t, report.ManagerLoad, 3)
	assert.NotContains(t, report.ManagerLoad, keeper.ID)
	for _, n := range report.ManagerLoad {
		assert.True(t, n == 2 || n == 3, "got %d projects per manager", n)
	}

	counts := countByManager(t, db)
	assert.Equal(t, int64(1), counts[keeper.ID])
	delete(counts, keeper.ID)
	require.Len(t, counts, 3)
	for _, n := range counts {
		assert.True(t, n == 2 || n == 3, "got %d projects per manager", n)
	}

	var unassigned int64
	require.NoError(t, db.Model(&models.Project{}).Where("manager_id IS NULL").Count(&unassigned).Error)
	assert.Zero(t, unassigned)

	// второй прогон: назначать уже нечего
	again, err := newAssignmentService().AssignUnassigned(context.Background(), db, false)
	require.NoError(t, err)
	assert.Zero(t, again.Projects)
	assert.Zero(t, again.Assigned)
}

func TestAssignmentService_DryRun(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@test.com", "password123", models.UserRoleClient)
	testutil.CreateUser(t, db, "pm@test.com", "password123", models.UserRoleProjectManager)
	testutil.CreateProject(t, db, owner.ID, "A")
	testutil.CreateProject(t, db, owner.ID, "B")

	report, err := newAssignmentService().AssignUnassigned(context.Background(), db, true)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Len(t, report.Plan, 2)
	assert.Zero(t, report.Assigned)
	assert.Nil(t, report.ManagerLoad)
	assert.Empty(t, countByManager(t, db))
}
