package service

import "github.com/symphogen/mimer-admin/internal/domain"

// Hydration resolves persisted ID lists into navigation lists so the
// validators can inspect them. Only IDs are stored; an ID the lookup cannot
// resolve becomes a placeholder entity carrying that ID with Exists == false,
// and a duplicated ID yields one entry per occurrence. List order is
// preserved throughout.

// UsersByID indexes users for hydration lookups.
func UsersByID(users []*domain.User) map[string]*domain.User {
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}

// TeamsByID indexes teams for hydration lookups.
func TeamsByID(teams []*domain.Team) map[string]*domain.Team {
	byID := make(map[string]*domain.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	return byID
}

// ConfigsByID indexes workflow configurations for hydration lookups.
func ConfigsByID(configs []*domain.WorkflowConfiguration) map[string]*domain.WorkflowConfiguration {
	byID := make(map[string]*domain.WorkflowConfiguration, len(configs))
	for _, wc := range configs {
		byID[wc.ID] = wc
	}
	return byID
}

// HydrateTeam populates a team's Users, SuperUsers and
// WorkflowConfigurations navigation lists from its ID lists.
func HydrateTeam(team *domain.Team, users map[string]*domain.User, configs map[string]*domain.WorkflowConfiguration) {
	team.SetUsers(resolveUsers(team.UserIDs, users))
	team.SetSuperUsers(resolveUsers(team.SuperUserIDs, users))

	resolved := make([]*domain.WorkflowConfiguration, len(team.WorkflowConfigurationIDs))
	for i, id := range team.WorkflowConfigurationIDs {
		if wc, ok := configs[id]; ok {
			resolved[i] = wc
		} else {
			resolved[i] = &domain.WorkflowConfiguration{ID: id}
		}
	}
	team.SetWorkflowConfigurations(resolved)
}

// HydrateUser populates a user's Teams navigation list from TeamIDs.
func HydrateUser(user *domain.User, teams map[string]*domain.Team) {
	resolved := make([]*domain.Team, len(user.TeamIDs))
	for i, id := range user.TeamIDs {
		if t, ok := teams[id]; ok {
			resolved[i] = t
		} else {
			resolved[i] = &domain.Team{ID: id}
		}
	}
	user.SetTeams(resolved)
}

func resolveUsers(ids []string, users map[string]*domain.User) []*domain.User {
	resolved := make([]*domain.User, len(ids))
	for i, id := range ids {
		if u, ok := users[id]; ok {
			resolved[i] = u
		} else {
			resolved[i] = &domain.User{ID: id}
		}
	}
	return resolved
}
