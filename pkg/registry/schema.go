// pkg/registry/schema.go
package registry

// ActivityRegistry is the catalog of worker activities the manager can run,
// loaded from the registry JSON file.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one worker activity: its dotted identity
// (domain.entity.action), the Zeebe task type it binds to, and the I/O
// contract workflow modelers rely on.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// Implemented reports whether the activity is backed by a running worker.
func (a Activity) Implemented() bool {
	return a.ImplementationStatus == "implemented"
}
