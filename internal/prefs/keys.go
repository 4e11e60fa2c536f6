package prefs

// Storage keys for persisted preferences. Values are primitive-serialized:
// durations as integer milliseconds, the environment as its string name,
// booleans and counts as text.
const (
	KeyEnvironment       = "mimer_environment"
	KeyRemoveInvalidData = "remove_invalid_data_automatically"

	KeyUsersCount                = "testing:user:number_of_users"
	KeyUsersGetDelay             = "testing:user:delay:get"
	KeyUsersSaveDelay            = "testing:user:delay:save"
	KeyUsersDeleteDelay          = "testing:user:delay:delete"
	KeyUsersUnknownMemberships   = "testing:user:unknown:team_memberships"
	KeyUsersDuplicateMemberships = "testing:user:duplicate:team_memberships"

	KeyTeamsCount               = "testing:team:number_of_teams"
	KeyTeamsGetDelay            = "testing:team:delay:get"
	KeyTeamsSaveDelay           = "testing:team:delay:save"
	KeyTeamsDeleteDelay         = "testing:team:delay:delete"
	KeyTeamsUnknownUsers        = "testing:team:unknown:users"
	KeyTeamsUnknownSuperUsers   = "testing:team:unknown:super_users"
	KeyTeamsDuplicateUsers      = "testing:team:duplicate:users"
	KeyTeamsDuplicateSuperUsers = "testing:team:duplicate:super_users"

	KeyConfigsCount       = "testing:workflow_configuration:number_of_workflow_configurations"
	KeyConfigsGetDelay    = "testing:workflow_configuration:delay:get"
	KeyConfigsSaveDelay   = "testing:workflow_configuration:delay:save"
	KeyConfigsDeleteDelay = "testing:workflow_configuration:delay:delete"
)
