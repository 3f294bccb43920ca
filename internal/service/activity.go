package service

import (
	"context"

	"github.com/Ordy-97/GestionProjet/internal/model"
	"gorm.io/gorm"
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) ListByProject(ctx context.Context, projectID uint, page, pageSize int) ([]model.ActivityLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.ActivityLog{}).Where("project_id = ?", projectID)

	var total int64
	query.Count(&total)

	var entries []model.ActivityLog
	err := query.Preload("Actor").
		Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Recent returns the latest activity across all projects the user can see.
func (s *ActivityService) Recent(ctx context.Context, userID uint, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var entries []model.ActivityLog
	err := s.db.WithContext(ctx).Preload("Actor").
		Where("project_id IN (SELECT id FROM projects WHERE owner_id = ? OR id IN (SELECT project_id FROM project_members WHERE user_id = ?))", userID, userID).
		Order("created_at desc").Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
