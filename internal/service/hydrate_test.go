package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symphogen/mimer-admin/internal/domain"
)

func TestHydrateTeam(t *testing.T) {
	u1 := domain.NewUser("u1")
	u2 := domain.NewUser("u2")
	users := UsersByID([]*domain.User{u1, u2})
	configs := ConfigsByID([]*domain.WorkflowConfiguration{domain.NewWorkflowConfiguration("wc1")})

	t.Run("resolves known IDs in order", func(t *testing.T) {
		team := domain.NewTeam("t1")
		team.UserIDs = []string{"u2", "u1"}
		team.WorkflowConfigurationIDs = []string{"wc1"}

		HydrateTeam(team, users, configs)

		require.Len(t, team.Users(), 2)
		assert.Same(t, u2, team.Users()[0])
		assert.Same(t, u1, team.Users()[1])
		assert.True(t, team.WorkflowConfigurations()[0].Exists)
	})

	t.Run("dangling IDs become placeholders", func(t *testing.T) {
		team := domain.NewTeam("t1")
		team.UserIDs = []string{"u1", "ghost"}
		team.SuperUserIDs = []string{"ghost"}
		team.WorkflowConfigurationIDs = []string{"wc-ghost"}

		HydrateTeam(team, users, configs)

		require.Len(t, team.Users(), 2)
		assert.False(t, team.Users()[1].Exists)
		assert.Equal(t, "ghost", team.Users()[1].ID)
		assert.False(t, team.SuperUsers()[0].Exists)
		assert.False(t, team.WorkflowConfigurations()[0].Exists)
	})

	t.Run("duplicate IDs hydrate one entry per occurrence", func(t *testing.T) {
		team := domain.NewTeam("t1")
		team.UserIDs = []string{"u1", "u1"}

		HydrateTeam(team, users, configs)

		require.Len(t, team.Users(), 2)
		assert.Same(t, team.Users()[0], team.Users()[1])
		assert.Equal(t, []string{"u1", "u1"}, team.UserIDs)
	})
}

func TestHydrateUser(t *testing.T) {
	teams := TeamsByID([]*domain.Team{domain.NewTeam("t1")})

	user := domain.NewUser("u1")
	user.TeamIDs = []string{"t1", "t-ghost"}

	HydrateUser(user, teams)

	require.Len(t, user.Teams(), 2)
	assert.True(t, user.Teams()[0].Exists)
	assert.False(t, user.Teams()[1].Exists)
	assert.Equal(t, []string{"t1", "t-ghost"}, user.TeamIDs)
}
