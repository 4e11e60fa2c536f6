package service

import (
	"context"
	"log/slog"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/validation"
)

// ConsistencyService sweeps one environment, hydrates every aggregate and
// reports the entities whose references do not hold up: dangling IDs,
// duplicates, super users outside the member list. The report is advisory;
// nothing is corrected automatically.
type ConsistencyService struct {
	logger  *slog.Logger
	users   *UserService
	teams   *TeamService
	configs *WorkflowConfigurationService
}

// NewConsistencyService creates a ConsistencyService.
func NewConsistencyService(logger *slog.Logger, users *UserService, teams *TeamService, configs *WorkflowConfigurationService) *ConsistencyService {
	return &ConsistencyService{logger: logger, users: users, teams: teams, configs: configs}
}

// Finding is one invalid aggregate and its validation messages by field.
type Finding struct {
	ID       string              `json:"id"`
	Name     string              `json:"name,omitempty"`
	Messages map[string][]string `json:"messages"`
}

// Report summarizes a consistency sweep of one environment.
type Report struct {
	Environment  domain.Environment `json:"environment"`
	UsersChecked int                `json:"usersChecked"`
	TeamsChecked int                `json:"teamsChecked"`
	Users        []Finding          `json:"users,omitempty"`
	Teams        []Finding          `json:"teams,omitempty"`
}

// Report checks every user and team in the environment.
func (s *ConsistencyService) Report(ctx context.Context, env domain.Environment) (*Report, error) {
	users, err := s.users.Get(ctx, env, nil)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.Get(ctx, env, nil)
	if err != nil {
		return nil, err
	}
	configs, err := s.configs.Get(ctx, env, nil)
	if err != nil {
		return nil, err
	}

	usersByID := UsersByID(users)
	teamsByID := TeamsByID(teams)
	configsByID := ConfigsByID(configs)

	report := &Report{
		Environment:  env,
		UsersChecked: len(users),
		TeamsChecked: len(teams),
	}

	for _, team := range teams {
		HydrateTeam(team, usersByID, configsByID)
		result, err := validation.ValidateTeam(team)
		if err != nil {
			return nil, err
		}
		if !result.Valid() {
			report.Teams = append(report.Teams, Finding{
				ID:       team.ID,
				Name:     team.Name,
				Messages: result.ByField(),
			})
		}
	}

	for _, user := range users {
		HydrateUser(user, teamsByID)
		result, err := validation.ValidateUser(user)
		if err != nil {
			return nil, err
		}
		if !result.Valid() {
			report.Users = append(report.Users, Finding{
				ID:       user.ID,
				Name:     user.FullName,
				Messages: result.ByField(),
			})
		}
	}

	s.logger.Info("consistency sweep completed",
		"environment", env,
		"teams_flagged", len(report.Teams),
		"users_flagged", len(report.Users))
	return report, nil
}
