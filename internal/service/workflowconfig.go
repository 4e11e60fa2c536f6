package service

import (
	"context"
	"log/slog"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/metrics"
	"github.com/symphogen/mimer-admin/internal/prefs"
)

// WorkflowConfigurationService serves workflow configurations through a
// per-environment read-through cache.
type WorkflowConfigurationService struct {
	logger   *slog.Logger
	prefs    *prefs.Preferences
	store    DocumentStore
	testData TestDataSource
	cache    *envCache[domain.WorkflowConfiguration]
}

// NewWorkflowConfigurationService creates a WorkflowConfigurationService.
func NewWorkflowConfigurationService(logger *slog.Logger, p *prefs.Preferences, store DocumentStore, testData TestDataSource) *WorkflowConfigurationService {
	return &WorkflowConfigurationService{
		logger:   logger,
		prefs:    p,
		store:    store,
		testData: testData,
		cache:    newEnvCache[domain.WorkflowConfiguration](),
	}
}

// Get returns the workflow configurations for an environment, read-through
// cached.
func (s *WorkflowConfigurationService) Get(ctx context.Context, env domain.Environment, filter func(*domain.WorkflowConfiguration) bool) ([]*domain.WorkflowConfiguration, error) {
	if s.prefs.Environment() == domain.EnvTestData {
		s.logger.Debug("serving workflow configurations from test data", "environment", env)
		configs, err := s.testData.WorkflowConfigurations(ctx)
		if err != nil {
			return nil, err
		}
		return filterList(configs, filter), nil
	}

	if configs, ok := s.cache.get(env); ok {
		s.logger.Debug("returning cached workflow configurations", "environment", env)
		metrics.CacheHits.WithLabelValues("workflow_configuration", env.String()).Inc()
		return filterList(configs, filter), nil
	}

	metrics.CacheMisses.WithLabelValues("workflow_configuration", env.String()).Inc()
	configs, err := s.store.QueryWorkflowConfigurations(ctx, env)
	if err != nil {
		return nil, err
	}
	s.cache.set(env, configs)
	return filterList(append([]*domain.WorkflowConfiguration(nil), configs...), filter), nil
}

// Save upserts a configuration into the environment's cache.
// TODO: write through to the workflowConfigurations container once the store
// write path is approved.
func (s *WorkflowConfigurationService) Save(ctx context.Context, env domain.Environment, wc *domain.WorkflowConfiguration) error {
	if s.prefs.Environment() == domain.EnvTestData {
		s.logger.Debug("saving workflow configuration in test data", "id", wc.ID)
		return s.testData.SaveWorkflowConfiguration(ctx, wc)
	}

	s.logger.Debug("upserting workflow configuration in cache", "id", wc.ID, "environment", env)
	s.cache.upsert(env, wc, func(w *domain.WorkflowConfiguration) string { return w.ID })
	return nil
}

// Delete removes a configuration from the environment's cache. Teams keep
// any reference to the removed ID; the validator reports it as dangling.
func (s *WorkflowConfigurationService) Delete(ctx context.Context, env domain.Environment, id string) error {
	if s.prefs.Environment() == domain.EnvTestData {
		s.logger.Debug("deleting workflow configuration in test data", "id", id)
		return s.testData.DeleteWorkflowConfiguration(ctx, id)
	}

	if s.cache.remove(env, id, func(w *domain.WorkflowConfiguration) string { return w.ID }) {
		s.logger.Debug("removed workflow configuration from cache", "id", id, "environment", env)
	} else {
		s.logger.Warn("workflow configuration not found in cache", "id", id, "environment", env)
	}
	return nil
}
