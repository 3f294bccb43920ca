package handler

import (
	"time"

	"github.com/Ordy-97/GestionProjet/internal/authz"
	"github.com/Ordy-97/GestionProjet/internal/middleware"
	"github.com/Ordy-97/GestionProjet/internal/model"
	"github.com/Ordy-97/GestionProjet/internal/notify"
	"github.com/Ordy-97/GestionProjet/internal/service"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService *service.DocumentService
	projectService  *service.ProjectService
	notifier        notify.Notifier
	maxUpload       int64
}

func NewDocumentHandler(documentService *service.DocumentService, projectService *service.ProjectService, notifier notify.Notifier, maxUploadMB int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		projectService:  projectService,
		notifier:        notifier,
		maxUpload:       maxUploadMB << 20,
	}
}

// POST /projects/:id/documents (multipart: name, description, file)
func (h *DocumentHandler) Upload(c *gin.Context) {
	project, err := h.projectService.GetByID(c.Request.Context(), parseID(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return
	}
	user := middleware.GetCurrentUser(c)
	if !authz.CanUploadDocument(user, project) {
		NotFound(c, 40402, "project not found")
		return
	}

	var req struct {
		Name        string `form:"name" binding:"required,max=128"`
		Description string `form:"description" binding:"max=5000"`
	}
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, 40001, "file is required")
		return
	}
	if file.Size > h.maxUpload {
		BadRequest(c, 40004, "file too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		InternalError(c, "could not read file")
		return
	}
	defer src.Close()

	doc, err := h.documentService.Create(c.Request.Context(), project.ID, user.ID,
		req.Name, req.Description, file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		ServiceError(c, err)
		return
	}

	h.notifier.DocumentUploaded(c.Request.Context(), notify.DocumentEvent{
		ProjectID:    project.ID,
		ProjectName:  project.Name,
		ActorID:      user.ID,
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		At:           time.Now(),
	})

	Success(c, h.documentJSON(doc))
}

// GET /projects/:id/documents
func (h *DocumentHandler) ListByProject(c *gin.Context) {
	project, err := h.projectService.GetByID(c.Request.Context(), parseID(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return
	}
	if !authz.CanViewProject(middleware.GetCurrentUser(c), project) {
		NotFound(c, 40402, "project not found")
		return
	}

	docs, err := h.documentService.ListByProject(c.Request.Context(), project.ID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		item := h.documentJSON(&doc)
		if doc.Uploader != nil {
			item["uploader"] = doc.Uploader.Brief()
		}
		list = append(list, item)
	}
	Success(c, list)
}

// GET /documents/:id
func (h *DocumentHandler) GetDetail(c *gin.Context) {
	doc, ok := h.viewableDocument(c)
	if !ok {
		return
	}

	data := h.documentJSON(doc)
	if doc.Uploader != nil {
		data["uploader"] = doc.Uploader.Brief()
	}
	Success(c, data)
}

// DELETE /documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	doc, ok := h.viewableDocument(c)
	if !ok {
		return
	}

	user := middleware.GetCurrentUser(c)
	if !authz.CanDeleteDocument(user, doc, doc.Project) {
		Forbidden(c, 40305, "only the project owner or the uploader may delete a document")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), doc); err != nil {
		ServiceError(c, err)
		return
	}

	h.notifier.DocumentDeleted(c.Request.Context(), notify.DocumentEvent{
		ProjectID:    doc.ProjectID,
		ProjectName:  doc.Project.Name,
		ActorID:      user.ID,
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		At:           time.Now(),
	})

	Success(c, gin.H{"message": "document deleted"})
}

// viewableDocument loads the document with its project and enforces view
// access on the project.
func (h *DocumentHandler) viewableDocument(c *gin.Context) (*model.Document, bool) {
	doc, err := h.documentService.GetByID(c.Request.Context(), parseID(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return nil, false
	}
	if !authz.CanViewProject(middleware.GetCurrentUser(c), doc.Project) {
		NotFound(c, 40403, "document not found")
		return nil, false
	}
	return doc, true
}

func (h *DocumentHandler) documentJSON(doc *model.Document) gin.H {
	return gin.H{
		"id":           doc.ID,
		"name":         doc.Name,
		"description":  doc.Description,
		"file_name":    doc.FileName,
		"content_type": doc.ContentType,
		"size":         doc.Size,
		"url":          h.documentService.URLOf(doc),
		"project_id":   doc.ProjectID,
		"uploaded_by":  doc.UploadedBy,
		"upload_date":  doc.UploadDate,
	}
}
