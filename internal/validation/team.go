package validation

import (
	"strings"

	"github.com/symphogen/mimer-admin/internal/domain"
)

// Team aggregate fields reported by the validator.
const (
	TeamFieldName                   = "Name"
	TeamFieldUsers                  = "Users"
	TeamFieldSuperUsers             = "SuperUsers"
	TeamFieldWorkflowConfigurations = "WorkflowConfigurations"
)

var teamRules = []rule[*domain.Team]{
	{
		field:   TeamFieldName,
		message: "'Team Name' is required.",
		ok: func(t *domain.Team) bool {
			return strings.TrimSpace(t.Name) != ""
		},
	},
	{
		field:   TeamFieldUsers,
		message: "'Users' cannot include users that do not exist.",
		ok: func(t *domain.Team) bool {
			return allUsersExist(t.Users())
		},
	},
	{
		field:   TeamFieldUsers,
		message: "'Users' cannot include duplicates.",
		ok: func(t *domain.Team) bool {
			return noDuplicateUsers(t.Users())
		},
	},
	{
		field:   TeamFieldSuperUsers,
		message: "'Super Users' cannot include users that do not exist.",
		ok: func(t *domain.Team) bool {
			return allUsersExist(t.SuperUsers())
		},
	},
	{
		field:   TeamFieldSuperUsers,
		message: "'Super Users' cannot include duplicates.",
		ok: func(t *domain.Team) bool {
			return noDuplicateUsers(t.SuperUsers())
		},
	},
	{
		field:   TeamFieldSuperUsers,
		message: "'Super Users' must also be included in 'Users'.",
		ok: func(t *domain.Team) bool {
			if len(t.SuperUsers()) == 0 {
				return true
			}
			members := make(map[string]struct{}, len(t.Users()))
			for _, u := range t.Users() {
				members[u.ID] = struct{}{}
			}
			for _, su := range t.SuperUsers() {
				if _, ok := members[su.ID]; !ok {
					return false
				}
			}
			return true
		},
	},
	{
		field:   TeamFieldWorkflowConfigurations,
		message: "'Workflow Configurations' cannot include configurations that do not exist.",
		ok: func(t *domain.Team) bool {
			for _, wc := range t.WorkflowConfigurations() {
				if !wc.Exists {
					return false
				}
			}
			return true
		},
	},
	{
		field:   TeamFieldWorkflowConfigurations,
		message: "'Workflow Configurations' cannot include duplicates.",
		ok: func(t *domain.Team) bool {
			configs := t.WorkflowConfigurations()
			ids := make([]string, len(configs))
			for i, wc := range configs {
				ids[i] = wc.ID
			}
			return noDuplicateIDs(ids)
		},
	},
}

// ValidateTeam checks a team aggregate with its navigation lists populated.
// It returns ErrNilSubject for a nil team; invalid data only yields messages.
func ValidateTeam(team *domain.Team) (*Result, error) {
	if team == nil {
		return nil, ErrNilSubject
	}
	return run(team, teamRules), nil
}

func allUsersExist(users []*domain.User) bool {
	for _, u := range users {
		if !u.Exists {
			return false
		}
	}
	return true
}

func noDuplicateUsers(users []*domain.User) bool {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return noDuplicateIDs(ids)
}
