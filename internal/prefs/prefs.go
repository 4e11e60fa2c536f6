// Package prefs persists operator preferences in a key-value store. Each
// preference is one key; the property table below is the explicit counterpart
// of the original storage-key annotations.
package prefs

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/symphogen/mimer-admin/internal/domain"
)

// KV is the backing key-value store. Implementations: RedisKV, MemoryKV.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores a value under a key.
	Set(ctx context.Context, key, value string) error
}

// EntitySettings holds the synthetic-data knobs shared by all entity kinds.
type EntitySettings struct {
	Count       int           `json:"count"`
	GetDelay    time.Duration `json:"getDelay"`
	SaveDelay   time.Duration `json:"saveDelay"`
	DeleteDelay time.Duration `json:"deleteDelay"`
}

// UserSettings adds the user-side invalid-data injection toggles.
type UserSettings struct {
	EntitySettings
	UnknownTeamMemberships   bool `json:"unknownTeamMemberships"`
	DuplicateTeamMemberships bool `json:"duplicateTeamMemberships"`
}

// TeamSettings adds the team-side invalid-data injection toggles.
type TeamSettings struct {
	EntitySettings
	UnknownUsers        bool `json:"unknownUsers"`
	UnknownSuperUsers   bool `json:"unknownSuperUsers"`
	DuplicateUsers      bool `json:"duplicateUsers"`
	DuplicateSuperUsers bool `json:"duplicateSuperUsers"`
}

// Settings is a point-in-time copy of every preference.
type Settings struct {
	Environment                    domain.Environment `json:"environment"`
	RemoveInvalidDataAutomatically bool               `json:"removeInvalidDataAutomatically"`
	Users                          UserSettings       `json:"users"`
	Teams                          TeamSettings       `json:"teams"`
	WorkflowConfigurations         EntitySettings     `json:"workflowConfigurations"`
}

func defaults() Settings {
	return Settings{
		Environment: domain.EnvTestData,
		Users: UserSettings{
			EntitySettings: EntitySettings{Count: 100},
		},
		Teams: TeamSettings{
			EntitySettings: EntitySettings{Count: 10},
		},
		WorkflowConfigurations: EntitySettings{Count: 35},
	}
}

// Preferences is the in-memory view of the persisted preferences, written
// through to the KV store on every set.
type Preferences struct {
	logger *slog.Logger
	kv     KV

	mu       sync.RWMutex
	settings Settings
	loaded   bool
}

// New returns preferences at their defaults; call Load to read the store.
func New(kv KV, logger *slog.Logger) *Preferences {
	return &Preferences{logger: logger, kv: kv, settings: defaults()}
}

// property binds a dotted property name to its storage key and codecs.
type property struct {
	key    string
	apply  func(*Settings, string) error
	format func(*Settings) string
}

func boolProp(key string, field func(*Settings) *bool) property {
	return property{
		key: key,
		apply: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*field(s) = b
			return nil
		},
		format: func(s *Settings) string { return strconv.FormatBool(*field(s)) },
	}
}

func intProp(key string, field func(*Settings) *int) property {
	return property{
		key: key,
		apply: func(s *Settings, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*field(s) = n
			return nil
		},
		format: func(s *Settings) string { return strconv.Itoa(*field(s)) },
	}
}

// Durations persist as integer milliseconds.
func durationProp(key string, field func(*Settings) *time.Duration) property {
	return property{
		key: key,
		apply: func(s *Settings, v string) error {
			ms, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return err
			}
			*field(s) = time.Duration(ms) * time.Millisecond
			return nil
		},
		format: func(s *Settings) string {
			return strconv.FormatInt(field(s).Milliseconds(), 10)
		},
	}
}

var properties = map[string]property{
	"Environment": {
		key: KeyEnvironment,
		apply: func(s *Settings, v string) error {
			env, err := domain.ParseEnvironment(v)
			if err != nil {
				return err
			}
			s.Environment = env
			return nil
		},
		format: func(s *Settings) string { return s.Environment.String() },
	},
	"RemoveInvalidDataAutomatically": boolProp(KeyRemoveInvalidData,
		func(s *Settings) *bool { return &s.RemoveInvalidDataAutomatically }),

	"Users.Count":    intProp(KeyUsersCount, func(s *Settings) *int { return &s.Users.Count }),
	"Users.GetDelay": durationProp(KeyUsersGetDelay, func(s *Settings) *time.Duration { return &s.Users.GetDelay }),
	"Users.SaveDelay": durationProp(KeyUsersSaveDelay,
		func(s *Settings) *time.Duration { return &s.Users.SaveDelay }),
	"Users.DeleteDelay": durationProp(KeyUsersDeleteDelay,
		func(s *Settings) *time.Duration { return &s.Users.DeleteDelay }),
	"Users.UnknownTeamMemberships": boolProp(KeyUsersUnknownMemberships,
		func(s *Settings) *bool { return &s.Users.UnknownTeamMemberships }),
	"Users.DuplicateTeamMemberships": boolProp(KeyUsersDuplicateMemberships,
		func(s *Settings) *bool { return &s.Users.DuplicateTeamMemberships }),

	"Teams.Count":    intProp(KeyTeamsCount, func(s *Settings) *int { return &s.Teams.Count }),
	"Teams.GetDelay": durationProp(KeyTeamsGetDelay, func(s *Settings) *time.Duration { return &s.Teams.GetDelay }),
	"Teams.SaveDelay": durationProp(KeyTeamsSaveDelay,
		func(s *Settings) *time.Duration { return &s.Teams.SaveDelay }),
	"Teams.DeleteDelay": durationProp(KeyTeamsDeleteDelay,
		func(s *Settings) *time.Duration { return &s.Teams.DeleteDelay }),
	"Teams.UnknownUsers": boolProp(KeyTeamsUnknownUsers,
		func(s *Settings) *bool { return &s.Teams.UnknownUsers }),
	"Teams.UnknownSuperUsers": boolProp(KeyTeamsUnknownSuperUsers,
		func(s *Settings) *bool { return &s.Teams.UnknownSuperUsers }),
	"Teams.DuplicateUsers": boolProp(KeyTeamsDuplicateUsers,
		func(s *Settings) *bool { return &s.Teams.DuplicateUsers }),
	"Teams.DuplicateSuperUsers": boolProp(KeyTeamsDuplicateSuperUsers,
		func(s *Settings) *bool { return &s.Teams.DuplicateSuperUsers }),

	"WorkflowConfigurations.Count": intProp(KeyConfigsCount,
		func(s *Settings) *int { return &s.WorkflowConfigurations.Count }),
	"WorkflowConfigurations.GetDelay": durationProp(KeyConfigsGetDelay,
		func(s *Settings) *time.Duration { return &s.WorkflowConfigurations.GetDelay }),
	"WorkflowConfigurations.SaveDelay": durationProp(KeyConfigsSaveDelay,
		func(s *Settings) *time.Duration { return &s.WorkflowConfigurations.SaveDelay }),
	"WorkflowConfigurations.DeleteDelay": durationProp(KeyConfigsDeleteDelay,
		func(s *Settings) *time.Duration { return &s.WorkflowConfigurations.DeleteDelay }),
}

// Load reads every known key from the store. Missing keys keep their
// defaults; a malformed stored value is logged and skipped.
func (p *Preferences) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return nil
	}

	for name, prop := range properties {
		raw, ok, err := p.kv.Get(ctx, prop.key)
		if err != nil {
			return fmt.Errorf("load preference %s: %w", name, err)
		}
		if !ok {
			continue
		}
		if err := prop.apply(&p.settings, raw); err != nil {
			p.logger.Warn("ignoring malformed stored preference",
				"property", name, "value", raw, "error", err)
		}
	}

	p.loaded = true
	return nil
}

// Loaded reports whether Load has completed.
func (p *Preferences) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// Snapshot returns a copy of the current settings.
func (p *Preferences) Snapshot() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// Environment returns the currently selected environment.
func (p *Preferences) Environment() domain.Environment {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings.Environment
}

// Set updates one property by its dotted name and writes it through to the
// store. An unrecognised name is a coding bug and returns
// domain.ErrUnknownPreference.
func (p *Preferences) Set(ctx context.Context, name, value string) error {
	prop, ok := properties[name]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPreference, name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := prop.apply(&p.settings, value); err != nil {
		return fmt.Errorf("parse preference %s: %w", name, err)
	}
	if err := p.kv.Set(ctx, prop.key, prop.format(&p.settings)); err != nil {
		return fmt.Errorf("store preference %s: %w", name, err)
	}
	return nil
}
