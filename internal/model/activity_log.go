package model

import "time"

// ActivityLog records who did what on a project: member changes, document
// uploads and deletions, status changes.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index:idx_project_id" json:"project_id"`
	ActorID   uint      `gorm:"not null" json:"actor_id"`
	Action    string    `gorm:"type:varchar(50);not null" json:"action"`
	Detail    string    `gorm:"type:varchar(512)" json:"detail"`
	CreatedAt time.Time `json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
