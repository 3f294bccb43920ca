package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Ordy-97/GestionProjet/internal/model"
	"github.com/Ordy-97/GestionProjet/pkg/filestore"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectService struct {
	db    *gorm.DB
	files filestore.FileStore
}

func NewProjectService(db *gorm.DB, files filestore.FileStore) *ProjectService {
	return &ProjectService{db: db, files: files}
}

func (s *ProjectService) Create(ctx context.Context, ownerID uint, name, description string, dueDate *time.Time, coverImage string) (*model.Project, error) {
	project := &model.Project{
		Name:        name,
		Description: description,
		DueDate:     dueDate,
		Status:      model.StatusTodo,
		OwnerID:     ownerID,
		CoverImage:  coverImage,
	}
	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}

	s.db.WithContext(ctx).Preload("Owner").First(project, project.ID)
	return project, nil
}

// List returns the projects the user owns or is a member of.
func (s *ProjectService) List(ctx context.Context, userID uint, keyword, status string, page, pageSize int, sortBy, order string) ([]model.Project, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Project{}).
		Where("owner_id = ? OR id IN (SELECT project_id FROM project_members WHERE user_id = ?)", userID, userID)

	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	if sortBy == "" {
		sortBy = "updated_at"
	}
	switch sortBy {
	case "name", "due_date", "status", "created_at", "updated_at":
	default:
		sortBy = "updated_at"
	}
	if order != "asc" {
		order = "desc"
	}
	query = query.Order(sortBy + " " + order)

	var projects []model.Project
	if err := query.Preload("Owner").Offset((page - 1) * pageSize).Limit(pageSize).Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// GetByID loads a project with its owner and members. Callers run the
// authorization policy against the loaded members before using it.
func (s *ProjectService) GetByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Preload("Owner").Preload("Members.User").First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40402:project not found")
		}
		return nil, err
	}
	return &project, nil
}

// Update applies field changes. Ownership is immutable: owner_id is never in
// the updates map.
func (s *ProjectService) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Project, error) {
	if status, ok := updates["status"].(string); ok && !model.ValidStatus(status) {
		return nil, fmt.Errorf("40002:invalid status")
	}
	if err := s.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the project, its membership rows, and its documents together
// with their stored files. When one or more files cannot be removed the
// records are still gone; the caller gets a partial-failure error so the
// orphans can be reconciled instead of being silently leaked.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	var docs []model.Document
	if err := s.db.WithContext(ctx).Where("project_id = ?", id).Find(&docs).Error; err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, id).Error
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, doc := range docs {
		if err := s.files.DeleteFile(ctx, doc.FileKey); err != nil && !errors.Is(err, filestore.ErrNotFound) {
			log.Printf("delete file %s of project %d: %v", doc.FileKey, id, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("50902:project deleted but %d file(s) could not be removed", failed)
	}
	return nil
}

// AddMember puts userID on the project's team. The insert is atomic and
// idempotent: the unique index absorbs duplicates, so concurrent adds never
// lose each other and re-adding an existing member is a no-op.
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID uint) (*model.ProjectMember, bool, error) {
	var project model.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("40402:project not found")
		}
		return nil, false, err
	}
	if project.OwnerID == userID {
		return nil, false, fmt.Errorf("40003:the owner is already part of the project")
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("40401:user not found")
		}
		return nil, false, err
	}

	member := &model.ProjectMember{ProjectID: projectID, UserID: userID}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(member)
	if result.Error != nil {
		return nil, false, result.Error
	}

	added := result.RowsAffected > 0
	member.User = &user
	return member, added, nil
}

// RemoveMember takes userID off the team. Removing a user who is not a member
// is a no-op, not an error.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID uint) (bool, error) {
	result := s.db.WithContext(ctx).Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&model.ProjectMember{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsMember reports whether userID is the owner or on the team of projectID.
func (s *ProjectService) IsMember(ctx context.Context, projectID, userID uint) bool {
	var count int64
	s.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND (owner_id = ? OR id IN (SELECT project_id FROM project_members WHERE user_id = ?))",
			projectID, userID, userID).
		Count(&count)
	return count > 0
}

func (s *ProjectService) DocumentCount(ctx context.Context, projectID uint) int64 {
	var count int64
	s.db.WithContext(ctx).Model(&model.Document{}).Where("project_id = ?", projectID).Count(&count)
	return count
}

// CountByStatus returns the user's project totals per status, for the
// dashboard.
func (s *ProjectService) CountByStatus(ctx context.Context, userID uint) map[string]int64 {
	stats := make(map[string]int64)
	for _, st := range []string{model.StatusTodo, model.StatusInProgress, model.StatusDone} {
		var count int64
		s.db.WithContext(ctx).Model(&model.Project{}).
			Where("status = ? AND (owner_id = ? OR id IN (SELECT project_id FROM project_members WHERE user_id = ?))",
				st, userID, userID).
			Count(&count)
		stats[st] = count
	}
	return stats
}
