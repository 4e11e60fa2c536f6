package service

import (
	"context"
	"log/slog"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/metrics"
	"github.com/symphogen/mimer-admin/internal/prefs"
)

// UserService serves users through a per-environment read-through cache.
type UserService struct {
	logger   *slog.Logger
	prefs    *prefs.Preferences
	store    DocumentStore
	testData TestDataSource
	cache    *envCache[domain.User]
}

// NewUserService creates a UserService.
func NewUserService(logger *slog.Logger, p *prefs.Preferences, store DocumentStore, testData TestDataSource) *UserService {
	return &UserService{
		logger:   logger,
		prefs:    p,
		store:    store,
		testData: testData,
		cache:    newEnvCache[domain.User](),
	}
}

// Get returns the users for an environment. While the operator preference
// selects the testdata environment the generator serves every read. A cache
// hit returns a shallow copy; a miss fetches from the store and fills the
// cache. The optional filter narrows the returned slice, never the cache.
func (s *UserService) Get(ctx context.Context, env domain.Environment, filter func(*domain.User) bool) ([]*domain.User, error) {
	if s.prefs.Environment() == domain.EnvTestData {
		s.logger.Debug("serving users from test data", "environment", env)
		users, err := s.testData.Users(ctx)
		if err != nil {
			return nil, err
		}
		return filterList(users, filter), nil
	}

	if users, ok := s.cache.get(env); ok {
		s.logger.Debug("returning cached users", "environment", env)
		metrics.CacheHits.WithLabelValues("user", env.String()).Inc()
		return filterList(users, filter), nil
	}

	metrics.CacheMisses.WithLabelValues("user", env.String()).Inc()
	users, err := s.store.QueryUsers(ctx, env)
	if err != nil {
		return nil, err
	}
	s.cache.set(env, users)
	return filterList(append([]*domain.User(nil), users...), filter), nil
}

// Save upserts a user into the environment's cache with remove-then-append
// semantics: the saved user always moves to the end of the list.
// TODO: write through to the users_search container once the store write
// path is approved; until then the cache is the durable-enough truth.
func (s *UserService) Save(ctx context.Context, env domain.Environment, user *domain.User) error {
	if s.prefs.Environment() == domain.EnvTestData {
		s.logger.Debug("saving user in test data", "id", user.ID)
		return s.testData.SaveUser(ctx, user)
	}

	s.logger.Debug("upserting user in cache", "id", user.ID, "environment", env)
	s.cache.upsert(env, user, func(u *domain.User) string { return u.ID })
	return nil
}

// Delete removes a user from the environment's cache. An unknown ID is a
// logged no-op, not an error.
func (s *UserService) Delete(ctx context.Context, env domain.Environment, id string) error {
	if s.prefs.Environment() == domain.EnvTestData {
		s.logger.Debug("deleting user in test data", "id", id)
		return s.testData.DeleteUser(ctx, id)
	}

	if s.cache.remove(env, id, func(u *domain.User) string { return u.ID }) {
		s.logger.Debug("removed user from cache", "id", id, "environment", env)
	} else {
		s.logger.Warn("user not found in cache", "id", id, "environment", env)
	}
	return nil
}

func filterList[T any](items []*T, keep func(*T) bool) []*T {
	if keep == nil {
		return items
	}
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
