package repositories

import (
	"testing"

	"freelance_backend/internal/models"
	"freelance_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_AssignManagerIsGuarded(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProjectRepository()
	owner := testutil.CreateUser(t, db, "client@test.com", "password123", models.UserRoleClient)
	pm1 := testutil.CreateUser(t, db, "pm1@test.com", "password123", models.UserRoleProjectManager)
	pm2 := testutil.CreateUser(t, db, "pm2@test.com", "password123", models.UserRoleProjectManager)
	project := testutil.CreateProject(t, db, owner.ID, "Landing page")

	ok, err := repo.AssignManager(db, project.ID, pm1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AssignManager(db, project.ID, pm2.ID)
	require.NoError(t, err)
	assert.False(t, ok, "assigned manager must never be rewritten")

	unassigned, err := repo.FindUnassigned(db)
	require.NoError(t, err)
	assert.Empty(t, unassigned)

	counts, err := repo.CountByManager(db)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{pm1.ID: 1}, counts)
}

func TestUserRepository_FindActiveByRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()
	active := testutil.CreateUser(t, db, "pm@test.com", "password123", models.UserRoleProjectManager)
	suspended := testutil.CreateUser(t, db, "pm-s@test.com", "password123", models.UserRoleProjectManager)
	require.NoError(t, db.Model(suspended).Update("status", models.UserStatusSuspended).Error)
	testutil.CreateUser(t, db, "dev@test.com", "password123", models.UserRoleFreelancer)

	managers, err := repo.FindActiveByRole(db, models.UserRoleProjectManager)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, active.ID, managers[0].ID)
}
