// Package testdata generates the synthetic dataset served when the console
// runs in the testdata environment. The generator can deliberately plant
// referential anomalies (dangling and duplicate IDs) so the validators have
// something to surface; each anomaly is injected at most once per process.
package testdata

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/prefs"
)

// Generator lazily builds and caches one synthetic dataset. Counts, fetch
// delays and anomaly toggles come from the operator preferences.
type Generator struct {
	logger *slog.Logger
	prefs  *prefs.Preferences

	mu      sync.Mutex
	rng     *rand.Rand
	users   []*domain.User
	teams   []*domain.Team
	configs []*domain.WorkflowConfiguration
	teamIDs []string

	injectedUnknownMemberships   bool
	injectedDuplicateMemberships bool
	injectedUnknownUsers         bool
	injectedUnknownSuperUsers    bool
	injectedDuplicateUsers       bool
	injectedDuplicateSuperUsers  bool
}

// New returns a generator with its own random source.
func New(p *prefs.Preferences, logger *slog.Logger) *Generator {
	return &Generator{
		logger: logger,
		prefs:  p,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Users returns the synthetic user list, generating it on first use.
func (g *Generator) Users(ctx context.Context) ([]*domain.User, error) {
	settings := g.prefs.Snapshot()
	if err := delay(ctx, settings.Users.GetDelay); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureUsers(settings)
	g.injectUserAnomalies(settings)
	return copyList(g.users), nil
}

// Teams returns the synthetic team list, generating it on first use.
func (g *Generator) Teams(ctx context.Context) ([]*domain.Team, error) {
	settings := g.prefs.Snapshot()
	if err := delay(ctx, settings.Teams.GetDelay); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureTeams(settings)
	g.injectTeamAnomalies(settings)
	return copyList(g.teams), nil
}

// WorkflowConfigurations returns the synthetic configuration list, derived
// from the teams' configuration references.
func (g *Generator) WorkflowConfigurations(ctx context.Context) ([]*domain.WorkflowConfiguration, error) {
	settings := g.prefs.Snapshot()
	if err := delay(ctx, settings.WorkflowConfigurations.GetDelay); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureConfigs(settings)
	return copyList(g.configs), nil
}

// SaveUser upserts into the synthetic list with remove-then-append
// semantics, the same contract the live cache follows.
func (g *Generator) SaveUser(ctx context.Context, user *domain.User) error {
	settings := g.prefs.Snapshot()
	if err := delay(ctx, settings.Users.SaveDelay); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.users = upsert(g.users, user, func(u *domain.User) string { return u.ID })
	return nil
}

// DeleteUser removes a user; an unknown ID is a logged no-op.
func (g *Generator) DeleteUser(ctx context.Context, id string) error {
	settings := g.prefs.Snapshot()
	if err := delay(ctx, settings.Users.DeleteDelay); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.users = remove(g.users, id, func(u *domain.User) string { return u.ID }, g.logger, "user")
	return nil
}

// SaveTeam upserts into the synthetic team list.
func (g *Generator) SaveTeam(ctx context.Context, team *domain.Team) error {
	settings := g.prefs.Snapshot()
	if err := delay(ctx, settings.Teams.SaveDelay); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.teams = upsert(g.teams, team, func(t *domain.Team) string { return t.ID })
	return nil
}

// DeleteTeam removes a team. Member users keep the dangling team ID: deletes
// never cascade into the other side of a relationship.
func (g *Generator) DeleteTeam(ctx context.Context, id string) error {
	settings := g.prefs.Snapshot()
	if err := delay(ctx, settings.Teams.DeleteDelay); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.teams = remove(g.teams, id, func(t *domain.Team) string { return t.ID }, g.logger, "team")
	return nil
}

// SaveWorkflowConfiguration upserts into the synthetic configuration list.
func (g *Generator) SaveWorkflowConfiguration(ctx context.Context, wc *domain.WorkflowConfiguration) error {
	settings := g.prefs.Snapshot()
	if err := delay(ctx, settings.WorkflowConfigurations.SaveDelay); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configs = upsert(g.configs, wc, func(w *domain.WorkflowConfiguration) string { return w.ID })
	return nil
}

// DeleteWorkflowConfiguration removes a configuration.
func (g *Generator) DeleteWorkflowConfiguration(ctx context.Context, id string) error {
	settings := g.prefs.Snapshot()
	if err := delay(ctx, settings.WorkflowConfigurations.DeleteDelay); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configs = remove(g.configs, id, func(w *domain.WorkflowConfiguration) string { return w.ID }, g.logger, "workflow configuration")
	return nil
}

func (g *Generator) ensureUsers(settings prefs.Settings) {
	if len(g.users) > 0 {
		return
	}

	ids := g.ensureTeamIDs(settings)
	users := make([]*domain.User, 0, settings.Users.Count)
	for i := 0; i < settings.Users.Count; i++ {
		first := firstNames[g.rng.Intn(len(firstNames))]
		last := lastNames[g.rng.Intn(len(lastNames))]

		u := domain.NewUser(uuid.NewString())
		u.FullName = first + " " + last
		u.Email = strings.ToLower(first) + "." + strings.ToLower(last) + "@symphogen.com"
		u.Department = departments[g.rng.Intn(len(departments))]
		u.Location = cities[g.rng.Intn(len(cities))]
		u.JobTitle = jobTitles[g.rng.Intn(len(jobTitles))]
		u.Initials = first[:1] + last[:1]
		u.OfficePhoneNumber = g.phoneNumber()
		u.Favorites = g.pick(productNames, 3)
		u.TeamIDs = g.pick(ids, 1+g.rng.Intn(min(8, len(ids))))
		users = append(users, u)
	}

	g.users = users
	g.logger.Info("generated random users", "count", len(users))
}

func (g *Generator) ensureTeams(settings prefs.Settings) {
	if len(g.teams) > 0 {
		return
	}
	g.ensureUsers(settings)

	teams := make([]*domain.Team, 0, len(g.teamIDs))
	usedNames := make(map[string]struct{})
	for _, id := range g.teamIDs {
		t := domain.NewTeam(id)
		t.Name = g.uniqueName(departments, usedNames)

		for _, u := range g.users {
			for _, tid := range u.TeamIDs {
				if tid == id {
					t.UserIDs = append(t.UserIDs, u.ID)
					break
				}
			}
		}
		if len(t.UserIDs) > 0 {
			t.SuperUserIDs = g.pick(t.UserIDs, 1+g.rng.Intn(len(t.UserIDs)))
		}
		t.WorkflowConfigurationIDs = randomIDs(g.rng, g.rng.Intn(4))
		teams = append(teams, t)
	}

	g.teams = teams
	g.logger.Info("generated random teams", "count", len(teams))
}

func (g *Generator) ensureConfigs(settings prefs.Settings) {
	if len(g.configs) > 0 {
		return
	}
	g.ensureTeams(settings)

	var configs []*domain.WorkflowConfiguration
	usedNames := make(map[string]struct{})
	for _, t := range g.teams {
		for _, id := range t.WorkflowConfigurationIDs {
			wc := domain.NewWorkflowConfiguration(id)
			wc.Name = g.uniqueName(productNames, usedNames)
			wc.Department = departments[g.rng.Intn(len(departments))]
			for i := 0; i < g.rng.Intn(5); i++ {
				wc.StudyTypes = append(wc.StudyTypes, domain.StudyType{
					Key:       studyTypeKeys[g.rng.Intn(len(studyTypeKeys))],
					InputType: studyTypeInputTypes[g.rng.Intn(len(studyTypeInputTypes))],
				})
			}
			wc.ParameterIdentifier = parameterIdentifiers[g.rng.Intn(len(parameterIdentifiers))]
			wc.ParameterRowCount = 1 + g.rng.Intn(999)
			wc.DatasourceConfigurationIDs = randomIDs(g.rng, g.rng.Intn(10))
			wc.IsActive = g.rng.Intn(2) == 0
			configs = append(configs, wc)
		}
	}

	g.configs = configs
	g.logger.Info("generated random workflow configurations", "count", len(configs))
}

func (g *Generator) ensureTeamIDs(settings prefs.Settings) []string {
	if len(g.teamIDs) == 0 {
		// Never fewer than ten teams, and roughly one per ten users.
		count := max(settings.Teams.Count, settings.Users.Count/10, 10)
		g.teamIDs = randomIDs(g.rng, count)
	}
	return g.teamIDs
}

// injectUserAnomalies plants user-side referential problems once each.
func (g *Generator) injectUserAnomalies(settings prefs.Settings) {
	if settings.Users.UnknownTeamMemberships && !g.injectedUnknownMemberships {
		for i := 0; i < 1+g.rng.Intn(3) && i < len(g.users); i++ {
			u := g.users[i]
			u.TeamIDs = append(u.TeamIDs, uuid.NewString())
		}
		g.injectedUnknownMemberships = true
	}

	if settings.Users.DuplicateTeamMemberships && !g.injectedDuplicateMemberships {
		for _, u := range g.users {
			if len(u.TeamIDs) > 1 {
				u.TeamIDs = append(u.TeamIDs, u.TeamIDs[0])
				g.injectedDuplicateMemberships = true
				break
			}
		}
	}
}

// injectTeamAnomalies plants team-side referential problems once each.
func (g *Generator) injectTeamAnomalies(settings prefs.Settings) {
	withMembers := func() *domain.Team {
		for _, t := range g.teams {
			if len(t.UserIDs) > 0 {
				return t
			}
		}
		return nil
	}

	if settings.Teams.UnknownUsers && !g.injectedUnknownUsers {
		if t := withMembers(); t != nil {
			t.UserIDs = append(t.UserIDs, uuid.NewString())
			g.injectedUnknownUsers = true
		}
	}

	if settings.Teams.UnknownSuperUsers && !g.injectedUnknownSuperUsers {
		if t := withMembers(); t != nil {
			t.SuperUserIDs = append(t.SuperUserIDs, uuid.NewString())
			g.injectedUnknownSuperUsers = true
		}
	}

	if settings.Teams.DuplicateUsers && !g.injectedDuplicateUsers {
		if t := withMembers(); t != nil {
			t.UserIDs = append(t.UserIDs, t.UserIDs[0])
			g.injectedDuplicateUsers = true
		}
	}

	if settings.Teams.DuplicateSuperUsers && !g.injectedDuplicateSuperUsers {
		for _, t := range g.teams {
			if len(t.SuperUserIDs) > 0 {
				t.SuperUserIDs = append(t.SuperUserIDs, t.SuperUserIDs[0])
				g.injectedDuplicateSuperUsers = true
				break
			}
		}
	}
}

func (g *Generator) phoneNumber() string {
	return fmt.Sprintf("+45 %02d %02d %02d %02d",
		g.rng.Intn(100), g.rng.Intn(100), g.rng.Intn(100), g.rng.Intn(100))
}

// pick returns up to n distinct elements in shuffled order.
func (g *Generator) pick(values []string, n int) []string {
	shuffled := append([]string(nil), values...)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func (g *Generator) uniqueName(values []string, used map[string]struct{}) string {
	base := values[g.rng.Intn(len(values))]
	name := base
	for i := 2; ; i++ {
		if _, taken := used[name]; !taken {
			used[name] = struct{}{}
			return name
		}
		name = fmt.Sprintf("%s %d", base, i)
	}
}

func randomIDs(rng *rand.Rand, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	return ids
}

// delay waits for the configured artificial latency, honouring cancellation.
func delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func copyList[T any](items []*T) []*T {
	return append([]*T(nil), items...)
}

func upsert[T any](items []*T, item *T, id func(*T) string) []*T {
	out := items[:0]
	for _, existing := range items {
		if id(existing) != id(item) {
			out = append(out, existing)
		}
	}
	return append(out, item)
}

func remove[T any](items []*T, target string, id func(*T) string, logger *slog.Logger, kind string) []*T {
	for i, existing := range items {
		if id(existing) == target {
			return append(items[:i], items[i+1:]...)
		}
	}
	logger.Warn("synthetic "+kind+" not found", "id", target)
	return items
}
