package service

import (
	"context"

	"github.com/symphogen/mimer-admin/internal/domain"
)

// DocumentStore is the read side of the document-store client. Query
// failures degrade to partial or empty results inside the client; the error
// is reserved for an unconfigured environment.
type DocumentStore interface {
	QueryUsers(ctx context.Context, env domain.Environment) ([]*domain.User, error)
	QueryTeams(ctx context.Context, env domain.Environment) ([]*domain.Team, error)
	QueryWorkflowConfigurations(ctx context.Context, env domain.Environment) ([]*domain.WorkflowConfiguration, error)
}

// TestDataSource serves the synthetic dataset used when the operator has
// selected the testdata environment.
type TestDataSource interface {
	Users(ctx context.Context) ([]*domain.User, error)
	Teams(ctx context.Context) ([]*domain.Team, error)
	WorkflowConfigurations(ctx context.Context) ([]*domain.WorkflowConfiguration, error)

	SaveUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error
	SaveTeam(ctx context.Context, team *domain.Team) error
	DeleteTeam(ctx context.Context, id string) error
	SaveWorkflowConfiguration(ctx context.Context, wc *domain.WorkflowConfiguration) error
	DeleteWorkflowConfiguration(ctx context.Context, id string) error
}
