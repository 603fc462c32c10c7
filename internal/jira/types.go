package jira

// Project is one entry from the project list endpoint.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// IssueType is a creatable issue type reported by the createmeta endpoint.
type IssueType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subtask bool   `json:"subtask,omitempty"`
}

// Field is a built-in or custom field from the field metadata endpoint.
// Field names are not unique; resolution by name happens in the client layer.
type Field struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom,omitempty"`
}

// Transition is a workflow transition currently available for an issue.
type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Issue represents a single issue in a search result.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self,omitempty"`
	Fields IssueFields `json:"fields"`
}

// IssueFields represents the inner fields of a Jira issue.
type IssueFields struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status,omitempty"`
	IssueType   IssueType `json:"issuetype,omitempty"`
}

// Status represents the status field of an issue.
type Status struct {
	Name string `json:"name"`
}

// SearchResult is one page from the search endpoint.
type SearchResult struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// CreateMetaResult is the response of the createmeta endpoint.
type CreateMetaResult struct {
	Projects []CreateMetaProject `json:"projects"`
}

// CreateMetaProject carries the creatable issue types for one project.
type CreateMetaProject struct {
	Key        string      `json:"key"`
	IssueTypes []IssueType `json:"issuetypes"`
}

// TransitionsResult is the response of the per-issue transitions endpoint.
type TransitionsResult struct {
	Transitions []Transition `json:"transitions"`
}

// IssueInput is the payload for issue creation. Fields is keyed by field id
// ("summary", "customfield_10100", ...); values are opaque to this layer.
type IssueInput struct {
	Fields map[string]any `json:"fields"`
}

// TransitionInput is the payload for applying a transition.
type TransitionInput struct {
	Transition TransitionRef `json:"transition"`
}

// TransitionRef references a transition by id.
type TransitionRef struct {
	ID string `json:"id"`
}
