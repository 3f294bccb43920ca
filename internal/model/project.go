package model

import (
	"time"

	"gorm.io/gorm"
)

// Project status values. Transitions are deliberately unconstrained: any
// status may be set at any time.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(128);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	DueDate     *time.Time     `json:"due_date"`
	Status      string         `gorm:"type:varchar(20);default:todo;index:idx_status" json:"status"`
	OwnerID     uint           `gorm:"not null;index:idx_owner_id" json:"owner_id"`
	CoverImage  string         `gorm:"type:varchar(512)" json:"cover_image"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Owner     *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members   []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Documents []Document      `gorm:"foreignKey:ProjectID" json:"documents,omitempty"`
}

func (Project) TableName() string { return "projects" }

// ValidStatus reports whether s is one of the three project statuses.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// HasMember reports whether userID appears in the loaded membership rows.
// The owner is never stored as a member row.
func (p *Project) HasMember(userID uint) bool {
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
