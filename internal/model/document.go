package model

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(128);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	FileKey     string         `gorm:"type:varchar(256);not null" json:"file_key"`
	FileName    string         `gorm:"type:varchar(256);not null" json:"file_name"`
	ContentType string         `gorm:"type:varchar(128)" json:"content_type"`
	Size        int64          `json:"size"`
	ProjectID   uint           `gorm:"not null;index:idx_project_id" json:"project_id"`
	UploadedBy  uint           `gorm:"not null;index:idx_uploaded_by" json:"uploaded_by"`
	UploadDate  time.Time      `gorm:"autoCreateTime" json:"upload_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Uploader *User    `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

func (Document) TableName() string { return "documents" }
