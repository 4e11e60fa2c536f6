package validation

import (
	"regexp"
	"strings"

	"github.com/symphogen/mimer-admin/internal/domain"
)

// User aggregate fields reported by the validator.
const (
	UserFieldFullName          = "FullName"
	UserFieldEmail             = "Email"
	UserFieldDepartment        = "Department"
	UserFieldLocation          = "Location"
	UserFieldJobTitle          = "JobTitle"
	UserFieldInitials          = "Initials"
	UserFieldOfficePhoneNumber = "OfficePhoneNumber"
	UserFieldTeams             = "Teams"
)

var (
	emailExpr = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)
	phoneExpr = regexp.MustCompile(`^(\+?\d{1,4}|\(?\d{1,4}\)?)[\s\-]?(\d{1,4}[\s\-]?){1,5}$`)
)

var userRules = []rule[*domain.User]{
	{
		field:   UserFieldFullName,
		message: "'Full Name' must not be empty.",
		ok: func(u *domain.User) bool {
			return strings.TrimSpace(u.FullName) != ""
		},
	},
	{
		field:   UserFieldFullName,
		message: "'Full Name' must contain at least a first and last name.",
		ok: func(u *domain.User) bool {
			return len(strings.Fields(u.FullName)) >= 2
		},
	},
	{
		field:   UserFieldEmail,
		message: "'Email' must not be empty.",
		ok: func(u *domain.User) bool {
			return strings.TrimSpace(u.Email) != ""
		},
	},
	// Both email checks run and both must pass; the permissive shape check
	// and the stricter pattern deliberately overlap.
	{
		field:   UserFieldEmail,
		message: "'Email' is not a valid email address.",
		ok: func(u *domain.User) bool {
			return looksLikeEmail(u.Email)
		},
	},
	{
		field:   UserFieldEmail,
		message: "'Email' is not a valid email address.",
		ok: func(u *domain.User) bool {
			return emailExpr.MatchString(u.Email)
		},
	},
	{
		field:   UserFieldDepartment,
		message: "'Department' is required.",
		ok: func(u *domain.User) bool {
			return strings.TrimSpace(u.Department) != ""
		},
	},
	{
		field:   UserFieldLocation,
		message: "'Location' is required.",
		ok: func(u *domain.User) bool {
			return strings.TrimSpace(u.Location) != ""
		},
	},
	{
		field:   UserFieldJobTitle,
		message: "'Job Title' is required.",
		ok: func(u *domain.User) bool {
			return strings.TrimSpace(u.JobTitle) != ""
		},
	},
	{
		field:   UserFieldOfficePhoneNumber,
		message: "Invalid phone number format.",
		ok: func(u *domain.User) bool {
			// Empty is allowed; the format check applies only when present.
			if strings.TrimSpace(u.OfficePhoneNumber) == "" {
				return true
			}
			return phoneExpr.MatchString(u.OfficePhoneNumber)
		},
	},
	{
		field:   UserFieldInitials,
		message: "'Initials' are required.",
		ok: func(u *domain.User) bool {
			return strings.TrimSpace(u.Initials) != ""
		},
	},
	{
		field:   UserFieldTeams,
		message: "'Teams' cannot include teams that do not exist.",
		ok: func(u *domain.User) bool {
			for _, t := range u.Teams() {
				if !t.Exists {
					return false
				}
			}
			return true
		},
	},
	{
		field:   UserFieldTeams,
		message: "'Teams' cannot include duplicates.",
		ok: func(u *domain.User) bool {
			teams := u.Teams()
			ids := make([]string, len(teams))
			for i, t := range teams {
				ids[i] = t.ID
			}
			return noDuplicateIDs(ids)
		},
	},
}

// ValidateUser checks a user aggregate with its Teams navigation populated.
// It returns ErrNilSubject for a nil user; invalid data only yields messages.
func ValidateUser(user *domain.User) (*Result, error) {
	if user == nil {
		return nil, ErrNilSubject
	}
	return run(user, userRules), nil
}

// looksLikeEmail is the permissive shape check: one '@' with non-empty local
// and domain parts and no whitespace.
func looksLikeEmail(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	return at < len(s)-1
}
