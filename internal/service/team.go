package service

import (
	"context"
	"log/slog"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/metrics"
	"github.com/symphogen/mimer-admin/internal/prefs"
)

// TeamService serves teams through a per-environment read-through cache.
type TeamService struct {
	logger   *slog.Logger
	prefs    *prefs.Preferences
	store    DocumentStore
	testData TestDataSource
	cache    *envCache[domain.Team]
}

// NewTeamService creates a TeamService.
func NewTeamService(logger *slog.Logger, p *prefs.Preferences, store DocumentStore, testData TestDataSource) *TeamService {
	return &TeamService{
		logger:   logger,
		prefs:    p,
		store:    store,
		testData: testData,
		cache:    newEnvCache[domain.Team](),
	}
}

// Get returns the teams for an environment, read-through cached.
func (s *TeamService) Get(ctx context.Context, env domain.Environment, filter func(*domain.Team) bool) ([]*domain.Team, error) {
	if s.prefs.Environment() == domain.EnvTestData {
		s.logger.Debug("serving teams from test data", "environment", env)
		teams, err := s.testData.Teams(ctx)
		if err != nil {
			return nil, err
		}
		return filterList(teams, filter), nil
	}

	if teams, ok := s.cache.get(env); ok {
		s.logger.Debug("returning cached teams", "environment", env)
		metrics.CacheHits.WithLabelValues("team", env.String()).Inc()
		return filterList(teams, filter), nil
	}

	metrics.CacheMisses.WithLabelValues("team", env.String()).Inc()
	teams, err := s.store.QueryTeams(ctx, env)
	if err != nil {
		return nil, err
	}
	s.cache.set(env, teams)
	return filterList(append([]*domain.Team(nil), teams...), filter), nil
}

// Save upserts a team into the environment's cache, last write winning.
// TODO: write through to the teams container once the store write path is
// approved.
func (s *TeamService) Save(ctx context.Context, env domain.Environment, team *domain.Team) error {
	if s.prefs.Environment() == domain.EnvTestData {
		s.logger.Debug("saving team in test data", "id", team.ID)
		return s.testData.SaveTeam(ctx, team)
	}

	s.logger.Debug("upserting team in cache", "id", team.ID, "environment", env)
	s.cache.upsert(env, team, func(t *domain.Team) string { return t.ID })
	return nil
}

// Delete removes a team from the environment's cache. Member users keep the
// now-dangling team ID: deletes do not cascade, the validator surfaces the
// leftover reference instead.
func (s *TeamService) Delete(ctx context.Context, env domain.Environment, id string) error {
	if s.prefs.Environment() == domain.EnvTestData {
		s.logger.Debug("deleting team in test data", "id", id)
		return s.testData.DeleteTeam(ctx, id)
	}

	if s.cache.remove(env, id, func(t *domain.Team) string { return t.ID }) {
		s.logger.Debug("removed team from cache", "id", id, "environment", env)
	} else {
		s.logger.Warn("team not found in cache", "id", id, "environment", env)
	}
	return nil
}
