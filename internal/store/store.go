// Package store implements the document-store client. Documents are JSONB
// rows in a single table keyed by (database, container, id), which mirrors
// the database/container layout of the original deployment.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/metrics"
)

// Container coordinates for the collections this console manages.
const (
	DatabaseUsers     = "users"
	DatabaseWorkflows = "workflows"

	ContainerUsers                  = "users_search"
	ContainerTeams                  = "teams"
	ContainerWorkflowConfigurations = "workflowConfigurations"
)

// pageSize caps each query page, matching the store's feed page limit.
const pageSize = 50

// Client queries document containers across environments. One connection
// pool per configured environment.
type Client struct {
	logger *slog.Logger
	pools  map[domain.Environment]*pgxpool.Pool
}

// New connects a pool for every environment with a configured DSN.
func New(ctx context.Context, dsns map[domain.Environment]string, logger *slog.Logger) (*Client, error) {
	pools := make(map[domain.Environment]*pgxpool.Pool, len(dsns))
	for env, dsn := range dsns {
		if dsn == "" {
			continue
		}
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect %s store: %w", env, err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping %s store: %w", env, err)
		}
		logger.Debug("connected document store", "environment", env)
		pools[env] = pool
	}
	return &Client{logger: logger, pools: pools}, nil
}

// Close releases every environment pool.
func (c *Client) Close() {
	for _, pool := range c.pools {
		pool.Close()
	}
}

// Environments lists the environments the client is connected to.
func (c *Client) Environments() []domain.Environment {
	envs := make([]domain.Environment, 0, len(c.pools))
	for env := range c.pools {
		envs = append(envs, env)
	}
	return envs
}

func (c *Client) pool(env domain.Environment) (*pgxpool.Pool, error) {
	pool, ok := c.pools[env]
	if !ok {
		return nil, fmt.Errorf("%w: no store configured for %q", domain.ErrUnknownEnvironment, env)
	}
	return pool, nil
}

// QueryUsers fetches every user document for the environment.
func (c *Client) QueryUsers(ctx context.Context, env domain.Environment) ([]*domain.User, error) {
	users, err := query[domain.User](ctx, c, env, DatabaseUsers, ContainerUsers)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Exists = true
	}
	return users, nil
}

// QueryTeams fetches every team document for the environment.
func (c *Client) QueryTeams(ctx context.Context, env domain.Environment) ([]*domain.Team, error) {
	teams, err := query[domain.Team](ctx, c, env, DatabaseUsers, ContainerTeams)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		t.Exists = true
	}
	return teams, nil
}

// QueryWorkflowConfigurations fetches every workflow configuration document
// for the environment.
func (c *Client) QueryWorkflowConfigurations(ctx context.Context, env domain.Environment) ([]*domain.WorkflowConfiguration, error) {
	configs, err := query[domain.WorkflowConfiguration](ctx, c, env, DatabaseWorkflows, ContainerWorkflowConfigurations)
	if err != nil {
		return nil, err
	}
	for _, wc := range configs {
		wc.Exists = true
	}
	return configs, nil
}

// query pages through a container by id cursor. A failed page is logged and
// aborts the fetch, returning whatever was collected so far: callers see
// partial or empty results on store outage, never an error. The returned
// error is reserved for programmer misuse (unconfigured environment).
func query[T any](ctx context.Context, c *Client, env domain.Environment, databaseID, containerID string) ([]*T, error) {
	pool, err := c.pool(env)
	if err != nil {
		return nil, err
	}

	const q = `
		SELECT id, doc FROM documents
		WHERE database_id = $1 AND container_id = $2 AND id > $3
		ORDER BY id
		LIMIT $4
	`

	var results []*T
	cursor := ""
	pages := 0
	for {
		rows, err := pool.Query(ctx, q, databaseID, containerID, cursor, pageSize)
		if err != nil {
			c.logger.Error("document query failed",
				"database", databaseID, "container", containerID, "environment", env, "error", err)
			metrics.StoreQueryFailures.WithLabelValues(databaseID, containerID).Inc()
			return results, nil
		}

		fetched := 0
		failed := false
		for rows.Next() {
			var (
				id  string
				raw []byte
			)
			if err := rows.Scan(&id, &raw); err != nil {
				c.logger.Error("document scan failed",
					"database", databaseID, "container", containerID, "error", err)
				failed = true
				break
			}
			item := new(T)
			if err := json.Unmarshal(raw, item); err != nil {
				c.logger.Error("document decode failed",
					"database", databaseID, "container", containerID, "id", id, "error", err)
				failed = true
				break
			}
			results = append(results, item)
			cursor = id
			fetched++
		}
		rows.Close()
		if rowsErr := rows.Err(); rowsErr != nil {
			c.logger.Error("document page failed",
				"database", databaseID, "container", containerID, "error", rowsErr)
			failed = true
		}
		if failed {
			metrics.StoreQueryFailures.WithLabelValues(databaseID, containerID).Inc()
			return results, nil
		}

		pages++
		if fetched < pageSize {
			break
		}
	}

	c.logger.Debug("document query completed",
		"database", databaseID, "container", containerID, "pages", pages, "items", len(results))
	return results, nil
}

// Upsert writes a document into a container, replacing any previous version.
func (c *Client) Upsert(ctx context.Context, env domain.Environment, databaseID, containerID, id string, doc any) error {
	pool, err := c.pool(env)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", id, err)
	}

	const q = `
		INSERT INTO documents (database_id, container_id, id, doc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (database_id, container_id, id) DO UPDATE
		SET doc = EXCLUDED.doc, updated_at = NOW()
	`
	_, err = pool.Exec(ctx, q, databaseID, containerID, id, raw)
	return err
}

// Delete removes a document. Deleting an absent document is not an error.
func (c *Client) Delete(ctx context.Context, env domain.Environment, databaseID, containerID, id string) error {
	pool, err := c.pool(env)
	if err != nil {
		return err
	}

	const q = `DELETE FROM documents WHERE database_id = $1 AND container_id = $2 AND id = $3`
	_, err = pool.Exec(ctx, q, databaseID, containerID, id)
	return err
}
