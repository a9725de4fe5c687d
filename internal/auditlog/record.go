package auditlog

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// AuditEntry is one persisted command invocation. Resource fields are
// empty for commands that touched nothing, such as a failed login.
type AuditEntry struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Command      string    `json:"command"`
	Args         string    `json:"args,omitempty"`
	Subscription string    `json:"subscription,omitempty"`
	Service      string    `json:"service,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   string    `json:"resource_id,omitempty"`
	ResourceName string    `json:"resource_name,omitempty"`
	Outcome      string    `json:"outcome"`
	Detail       string    `json:"detail,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
}

// ResourceLabel renders the touched resource as "type (name)", or "-"
// when the entry carries no resource.
func (e AuditEntry) ResourceLabel() string {
	switch {
	case e.ResourceType == "" && e.ResourceName == "":
		return "-"
	case e.ResourceType == "":
		return e.ResourceName
	case e.ResourceName == "":
		return e.ResourceType
	}
	return e.ResourceType + " (" + e.ResourceName + ")"
}
