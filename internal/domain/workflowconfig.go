package domain

// StudyType is a key plus the input widget type used to capture it.
type StudyType struct {
	Key       string `json:"key"`
	InputType string `json:"inputType"`
}

// WorkflowConfiguration describes one configured lab workflow. It is
// independent of users and teams except through a team's
// WorkflowConfigurationIDs list.
type WorkflowConfiguration struct {
	ID                         string      `json:"id"`
	Name                       string      `json:"name"`
	Department                 string      `json:"department,omitempty"`
	StudyTypes                 []StudyType `json:"studyTypes"`
	WorkflowPropertyHeaders    []string    `json:"workflowPropertyHeaders"`
	ParameterIdentifier        string      `json:"parameterIdentifier,omitempty"`
	ParameterRowCount          int         `json:"parameterRowCount"`
	DatasourceConfigurationIDs []string    `json:"datasourceConfigurationIds"`
	IsActive                   bool        `json:"isActive"`

	// Exists reports whether the loader resolved this record.
	Exists bool `json:"-"`
}

// NewWorkflowConfiguration returns a configuration that counts as resolved.
func NewWorkflowConfiguration(id string) *WorkflowConfiguration {
	return &WorkflowConfiguration{ID: id, Exists: true}
}
