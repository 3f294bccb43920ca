package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Ordy-97/GestionProjet/internal/model"
	"github.com/Ordy-97/GestionProjet/pkg/filestore"
	"gorm.io/gorm"
)

type DocumentService struct {
	db    *gorm.DB
	files filestore.FileStore
}

func NewDocumentService(db *gorm.DB, files filestore.FileStore) *DocumentService {
	return &DocumentService{db: db, files: files}
}

// Create uploads the file, then persists the document record. The project
// must resolve first: nothing is stored against a missing project. If the
// record cannot be saved after the file went out, the orphaned file is
// deleted again so the two stores do not drift apart.
func (s *DocumentService) Create(ctx context.Context, projectID, uploaderID uint, name, description, fileName, contentType string, r io.Reader) (*model.Document, error) {
	var project model.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40402:project not found")
		}
		return nil, err
	}

	ref, err := s.files.SaveFile(ctx, fileName, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("50001:file upload failed")
	}

	doc := &model.Document{
		Name:        name,
		Description: description,
		FileKey:     ref.Key,
		FileName:    ref.Name,
		ContentType: ref.ContentType,
		Size:        ref.Size,
		ProjectID:   projectID,
		UploadedBy:  uploaderID,
	}
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		if derr := s.files.DeleteFile(ctx, ref.Key); derr != nil {
			log.Printf("cleanup orphaned file %s: %v", ref.Key, derr)
		}
		return nil, fmt.Errorf("50001:could not save document")
	}
	return doc, nil
}

func (s *DocumentService) ListByProject(ctx context.Context, projectID uint) ([]model.Document, error) {
	var docs []model.Document
	err := s.db.WithContext(ctx).Preload("Uploader").
		Where("project_id = ?", projectID).
		Order("upload_date desc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// GetByID loads a document together with its project and the project's
// members, so the caller can run the authorization policy.
func (s *DocumentService) GetByID(ctx context.Context, id uint) (*model.Document, error) {
	var doc model.Document
	err := s.db.WithContext(ctx).Preload("Project.Members").Preload("Project.Owner").Preload("Uploader").
		First(&doc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40403:document not found")
		}
		return nil, err
	}
	return &doc, nil
}

// Delete removes the document record, then its file. A failed file deletion
// is reported as a partial failure: the record is gone but the file remains,
// and the caller must not report unconditional success.
func (s *DocumentService) Delete(ctx context.Context, doc *model.Document) error {
	if err := s.db.WithContext(ctx).Delete(&model.Document{}, doc.ID).Error; err != nil {
		return err
	}

	if err := s.files.DeleteFile(ctx, doc.FileKey); err != nil && !errors.Is(err, filestore.ErrNotFound) {
		log.Printf("delete file %s of document %d: %v", doc.FileKey, doc.ID, err)
		return fmt.Errorf("50902:document removed but its file could not be deleted")
	}
	return nil
}

// URLOf resolves the public URL of the document's file.
func (s *DocumentService) URLOf(doc *model.Document) string {
	return s.files.URLOf(doc.FileKey)
}
