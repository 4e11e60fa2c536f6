package domain

// Team groups users and the workflow configurations they operate.
//
// The three ID lists are projections of their navigation lists when those are
// assigned through the Set methods. The store persists only the ID lists, so
// nothing prevents a stored team from carrying dangling or duplicate IDs;
// the validator surfaces those for operator review.
type Team struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name,omitempty"`
	UserIDs                  []string `json:"userIds"`
	SuperUserIDs             []string `json:"superUserIds"`
	WorkflowConfigurationIDs []string `json:"workflowConfigurationIds"`

	// Exists reports whether the loader resolved this record.
	Exists bool `json:"-"`

	users                  []*User
	superUsers             []*User
	workflowConfigurations []*WorkflowConfiguration
}

// NewTeam returns a team that counts as resolved.
func NewTeam(id string) *Team {
	return &Team{ID: id, Exists: true}
}

// Users returns the member navigation list as last assigned.
func (t *Team) Users() []*User {
	return t.users
}

// SetUsers assigns the member list and recomputes UserIDs in order.
// A nil list is treated as empty.
func (t *Team) SetUsers(users []*User) {
	if users == nil {
		users = []*User{}
	}
	t.users = users
	t.UserIDs = userIDs(users)
}

// SuperUsers returns the super-user navigation list as last assigned.
func (t *Team) SuperUsers() []*User {
	return t.superUsers
}

// SetSuperUsers assigns the super-user list and recomputes SuperUserIDs in
// order. A nil list is treated as empty.
func (t *Team) SetSuperUsers(users []*User) {
	if users == nil {
		users = []*User{}
	}
	t.superUsers = users
	t.SuperUserIDs = userIDs(users)
}

// WorkflowConfigurations returns the navigation list as last assigned.
func (t *Team) WorkflowConfigurations() []*WorkflowConfiguration {
	return t.workflowConfigurations
}

// SetWorkflowConfigurations assigns the list and recomputes
// WorkflowConfigurationIDs in order. A nil list is treated as empty.
func (t *Team) SetWorkflowConfigurations(configs []*WorkflowConfiguration) {
	if configs == nil {
		configs = []*WorkflowConfiguration{}
	}
	t.workflowConfigurations = configs
	ids := make([]string, len(configs))
	for i, wc := range configs {
		ids[i] = wc.ID
	}
	t.WorkflowConfigurationIDs = ids
}

func userIDs(users []*User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
