package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/Ordy-97/GestionProjet/internal/model"
	"github.com/Ordy-97/GestionProjet/internal/sse"
	"gorm.io/gorm"
)

// Notifier publishes project activity. Failures are logged, never propagated:
// activity is best-effort and must not fail the user's action.
type Notifier interface {
	MemberAdded(ctx context.Context, e MemberEvent)
	MemberRemoved(ctx context.Context, e MemberEvent)
	StatusChanged(ctx context.Context, e StatusChangedEvent)
	DocumentUploaded(ctx context.Context, e DocumentEvent)
	DocumentDeleted(ctx context.Context, e DocumentEvent)
}

// NoopNotifier discards all events.
type NoopNotifier struct{}

func (NoopNotifier) MemberAdded(context.Context, MemberEvent)          {}
func (NoopNotifier) MemberRemoved(context.Context, MemberEvent)        {}
func (NoopNotifier) StatusChanged(context.Context, StatusChangedEvent) {}
func (NoopNotifier) DocumentUploaded(context.Context, DocumentEvent)   {}
func (NoopNotifier) DocumentDeleted(context.Context, DocumentEvent)    {}

// ActivityNotifier writes each event to the activity log and fans it out to
// SSE subscribers of the project.
type ActivityNotifier struct {
	db  *gorm.DB
	hub *sse.Hub
}

func NewActivityNotifier(db *gorm.DB, hub *sse.Hub) *ActivityNotifier {
	return &ActivityNotifier{db: db, hub: hub}
}

func (n *ActivityNotifier) MemberAdded(ctx context.Context, e MemberEvent) {
	detail := fmt.Sprintf("%s joined the team", e.MemberUsername)
	n.record(ctx, e.ProjectID, e.ActorID, ActionMemberAdded, detail, e)
}

func (n *ActivityNotifier) MemberRemoved(ctx context.Context, e MemberEvent) {
	detail := fmt.Sprintf("%s left the team", e.MemberUsername)
	n.record(ctx, e.ProjectID, e.ActorID, ActionMemberRemoved, detail, e)
}

func (n *ActivityNotifier) StatusChanged(ctx context.Context, e StatusChangedEvent) {
	detail := fmt.Sprintf("status %s -> %s", e.OldStatus, e.NewStatus)
	n.record(ctx, e.ProjectID, e.ActorID, ActionStatusChanged, detail, e)
}

func (n *ActivityNotifier) DocumentUploaded(ctx context.Context, e DocumentEvent) {
	detail := fmt.Sprintf("document %q uploaded", e.DocumentName)
	n.record(ctx, e.ProjectID, e.ActorID, ActionDocumentAdded, detail, e)
}

func (n *ActivityNotifier) DocumentDeleted(ctx context.Context, e DocumentEvent) {
	detail := fmt.Sprintf("document %q deleted", e.DocumentName)
	n.record(ctx, e.ProjectID, e.ActorID, ActionDocumentRemoved, detail, e)
}

func (n *ActivityNotifier) record(ctx context.Context, projectID, actorID uint, action, detail string, data interface{}) {
	entry := &model.ActivityLog{
		ProjectID: projectID,
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
	}
	if err := n.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Printf("record activity %s on project %d: %v", action, projectID, err)
	}
	n.hub.Broadcast(ctx, projectID, sse.Event{Type: action, Data: data})
}
