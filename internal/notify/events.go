package notify

import "time"

const (
	ActionMemberAdded     = "member_added"
	ActionMemberRemoved   = "member_removed"
	ActionStatusChanged   = "status_changed"
	ActionDocumentAdded   = "document_uploaded"
	ActionDocumentRemoved = "document_deleted"
)

type MemberEvent struct {
	ProjectID      uint   `json:"project_id"`
	ProjectName    string `json:"project_name"`
	ActorID        uint   `json:"actor_id"`
	MemberID       uint   `json:"member_id"`
	MemberUsername string `json:"member_username"`
}

type StatusChangedEvent struct {
	ProjectID   uint   `json:"project_id"`
	ProjectName string `json:"project_name"`
	ActorID     uint   `json:"actor_id"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
}

type DocumentEvent struct {
	ProjectID    uint      `json:"project_id"`
	ProjectName  string    `json:"project_name"`
	ActorID      uint      `json:"actor_id"`
	DocumentID   uint      `json:"document_id"`
	DocumentName string    `json:"document_name"`
	At           time.Time `json:"at"`
}
