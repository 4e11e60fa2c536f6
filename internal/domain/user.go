package domain

import "time"

// User is an operator account managed by the console.
//
// TeamIDs is the persisted side of the user's team memberships. It is
// recomputed from the navigation list on every SetTeams call; when a user is
// loaded from the store only TeamIDs is populated and hydration of the
// navigation list is the caller's responsibility.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email,omitempty"`
	FullName          string    `json:"fullName,omitempty"`
	Department        string    `json:"department,omitempty"`
	Location          string    `json:"location,omitempty"`
	Favorites         []string  `json:"favorites,omitempty"`
	Initials          string    `json:"initials,omitempty"`
	JobTitle          string    `json:"jobTitle,omitempty"`
	OfficePhoneNumber string    `json:"officephone,omitempty"`
	Company           string    `json:"company,omitempty"`
	Manager           string    `json:"manager,omitempty"`
	OfficeLocation    string    `json:"officeLocation,omitempty"`
	Created           time.Time `json:"created,omitzero"`
	Updated           time.Time `json:"updated,omitzero"`
	Deleted           bool      `json:"deleted,omitempty"`
	TeamIDs           []string  `json:"teamIds"`

	// Exists reports whether the loader resolved this record. A referenced
	// user whose ID could not be found is represented by a placeholder with
	// Exists == false. Never persisted.
	Exists bool `json:"-"`

	teams []*Team
}

// NewUser returns a user that counts as resolved.
func NewUser(id string) *User {
	return &User{ID: id, Exists: true}
}

// Teams returns the navigation list as last assigned. It is not re-derived
// from TeamIDs.
func (u *User) Teams() []*Team {
	return u.teams
}

// SetTeams assigns the navigation list and recomputes TeamIDs as the ordered
// projection of the assigned teams' IDs. A nil list is treated as empty.
func (u *User) SetTeams(teams []*Team) {
	if teams == nil {
		teams = []*Team{}
	}
	u.teams = teams
	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	u.TeamIDs = ids
}
