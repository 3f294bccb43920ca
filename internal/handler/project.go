package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Ordy-97/GestionProjet/internal/authz"
	"github.com/Ordy-97/GestionProjet/internal/middleware"
	"github.com/Ordy-97/GestionProjet/internal/model"
	"github.com/Ordy-97/GestionProjet/internal/notify"
	"github.com/Ordy-97/GestionProjet/internal/service"
	"github.com/Ordy-97/GestionProjet/internal/sse"
	"github.com/Ordy-97/GestionProjet/pkg/filestore"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService  *service.ProjectService
	activityService *service.ActivityService
	notifier        notify.Notifier
	hub             *sse.Hub
	files           filestore.FileStore
	maxUpload       int64
}

func NewProjectHandler(projectService *service.ProjectService, activityService *service.ActivityService, notifier notify.Notifier, hub *sse.Hub, files filestore.FileStore, maxUploadMB int64) *ProjectHandler {
	return &ProjectHandler{
		projectService:  projectService,
		activityService: activityService,
		notifier:        notifier,
		hub:             hub,
		files:           files,
		maxUpload:       maxUploadMB << 20,
	}
}

// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required,max=128"`
		Description string `json:"description" binding:"max=5000"`
		DueDate     string `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	dueDate, ok := parseDate(req.DueDate)
	if !ok {
		BadRequest(c, 40002, "invalid due_date")
		return
	}

	userID := middleware.GetCurrentUserID(c)
	project, err := h.projectService.Create(c.Request.Context(), userID, req.Name, req.Description, dueDate, "")
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, h.projectJSON(project))
}

// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)
	userID := middleware.GetCurrentUserID(c)
	keyword := c.Query("keyword")
	status := c.Query("status")
	sortBy := c.DefaultQuery("sort_by", "updated_at")
	order := c.DefaultQuery("order", "desc")

	projects, total, err := h.projectService.List(c.Request.Context(), userID, keyword, status, page, pageSize, sortBy, order)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(projects))
	for _, p := range projects {
		item := gin.H{
			"id":             p.ID,
			"name":           p.Name,
			"description":    p.Description,
			"due_date":       p.DueDate,
			"status":         p.Status,
			"document_count": h.projectService.DocumentCount(c.Request.Context(), p.ID),
			"created_at":     p.CreatedAt,
			"updated_at":     p.UpdatedAt,
		}
		if p.CoverImage != "" {
			item["cover_url"] = h.files.URLOf(p.CoverImage)
		}
		if p.Owner != nil {
			item["owner"] = p.Owner.Brief()
		}
		list = append(list, item)
	}
	SuccessPaged(c, list, total, page, pageSize)
}

// GET /projects/:id
func (h *ProjectHandler) GetDetail(c *gin.Context) {
	project, ok := h.viewableProject(c)
	if !ok {
		return
	}

	members := make([]gin.H, 0, len(project.Members))
	for _, m := range project.Members {
		item := gin.H{
			"id":        m.UserID,
			"joined_at": m.JoinedAt,
		}
		if m.User != nil {
			item["username"] = m.User.Username
			item["avatar"] = m.User.Avatar
		}
		members = append(members, item)
	}

	data := h.projectJSON(project)
	data["members"] = members
	data["document_count"] = h.projectService.DocumentCount(c.Request.Context(), project.ID)
	Success(c, data)
}

// PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	project, ok := h.editableProject(c)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name" binding:"omitempty,max=128"`
		Description *string `json:"description" binding:"omitempty,max=5000"`
		DueDate     *string `json:"due_date"`
		Status      *string `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DueDate != nil {
		dueDate, ok := parseDate(*req.DueDate)
		if !ok {
			BadRequest(c, 40002, "invalid due_date")
			return
		}
		updates["due_date"] = dueDate
	}

	oldStatus := project.Status
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	updated, err := h.projectService.Update(c.Request.Context(), project.ID, updates)
	if err != nil {
		ServiceError(c, err)
		return
	}

	if req.Status != nil && *req.Status != oldStatus {
		h.notifier.StatusChanged(c.Request.Context(), notify.StatusChangedEvent{
			ProjectID:   project.ID,
			ProjectName: updated.Name,
			ActorID:     middleware.GetCurrentUserID(c),
			OldStatus:   oldStatus,
			NewStatus:   *req.Status,
		})
	}

	Success(c, h.projectJSON(updated))
}

// PUT /projects/:id/cover (multipart: cover)
func (h *ProjectHandler) UploadCover(c *gin.Context) {
	project, ok := h.editableProject(c)
	if !ok {
		return
	}

	file, err := c.FormFile("cover")
	if err != nil {
		BadRequest(c, 40001, "cover file is required")
		return
	}
	if file.Size > h.maxUpload {
		BadRequest(c, 40004, "cover too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		InternalError(c, "could not read cover")
		return
	}
	defer src.Close()

	ref, err := h.files.SaveFile(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		InternalError(c, "cover upload failed")
		return
	}

	oldKey := project.CoverImage
	if _, err := h.projectService.Update(c.Request.Context(), project.ID, map[string]interface{}{"cover_image": ref.Key}); err != nil {
		// The record still points at the old cover: delete the new upload.
		discardFile(c.Request.Context(), h.files, ref.Key)
		ServiceError(c, err)
		return
	}
	// Replaced cover: the previous file has no record any more.
	discardFile(c.Request.Context(), h.files, oldKey)

	Success(c, gin.H{"cover_image": ref.Key, "cover_url": h.files.URLOf(ref.Key)})
}

// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	project, ok := h.editableProject(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), project.ID); err != nil {
		ServiceError(c, err)
		return
	}
	discardFile(c.Request.Context(), h.files, project.CoverImage)
	Success(c, gin.H{"message": "project deleted"})
}

// POST /projects/:id/members
func (h *ProjectHandler) AddMember(c *gin.Context) {
	project, ok := h.memberManageableProject(c)
	if !ok {
		return
	}

	var req struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	member, added, err := h.projectService.AddMember(c.Request.Context(), project.ID, req.UserID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	if added {
		h.notifier.MemberAdded(c.Request.Context(), notify.MemberEvent{
			ProjectID:      project.ID,
			ProjectName:    project.Name,
			ActorID:        middleware.GetCurrentUserID(c),
			MemberID:       member.UserID,
			MemberUsername: member.User.Username,
		})
	}

	Success(c, gin.H{
		"member": gin.H{
			"id":        member.UserID,
			"username":  member.User.Username,
			"joined_at": member.JoinedAt,
		},
		"added": added,
	})
}

// DELETE /projects/:id/members/:user_id
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project, ok := h.memberManageableProject(c)
	if !ok {
		return
	}

	memberID := parseID(c.Param("user_id"))
	removed, err := h.projectService.RemoveMember(c.Request.Context(), project.ID, memberID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	if removed {
		username := ""
		for _, m := range project.Members {
			if m.UserID == memberID && m.User != nil {
				username = m.User.Username
			}
		}
		h.notifier.MemberRemoved(c.Request.Context(), notify.MemberEvent{
			ProjectID:      project.ID,
			ProjectName:    project.Name,
			ActorID:        middleware.GetCurrentUserID(c),
			MemberID:       memberID,
			MemberUsername: username,
		})
	}

	Success(c, gin.H{"removed": removed})
}

// GET /projects/:id/activity
func (h *ProjectHandler) Activity(c *gin.Context) {
	project, ok := h.viewableProject(c)
	if !ok {
		return
	}

	page, pageSize := parsePage(c)
	entries, total, err := h.activityService.ListByProject(c.Request.Context(), project.ID, page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		item := gin.H{
			"id":         e.ID,
			"action":     e.Action,
			"detail":     e.Detail,
			"created_at": e.CreatedAt,
		}
		if e.Actor != nil {
			item["actor"] = e.Actor.Brief()
		}
		list = append(list, item)
	}
	SuccessPaged(c, list, total, page, pageSize)
}

// GET /projects/:id/events (SSE)
func (h *ProjectHandler) Events(c *gin.Context) {
	project, ok := h.viewableProject(c)
	if !ok {
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		InternalError(c, "streaming not supported")
		return
	}

	start := sse.ParseLastEventID(c.GetHeader("Last-Event-ID"))

	history, err := h.hub.ReplayFrom(c.Request.Context(), project.ID, start)
	if err != nil {
		log.Printf("replay events for project %d: %v", project.ID, err)
	}
	eventID := start
	for _, ev := range history {
		data, _ := json.Marshal(ev.Data)
		fmt.Fprintf(c.Writer, "id: %d\nevent: %s\ndata: %s\n\n", eventID, ev.Type, string(data))
		eventID++
	}
	flusher.Flush()

	ch, unsub := h.hub.Subscribe(project.ID)
	defer unsub()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": ping\n\n")
			flusher.Flush()
		case ev, open := <-ch:
			if !open {
				return
			}
			data, _ := json.Marshal(ev.Data)
			fmt.Fprintf(c.Writer, "id: %d\nevent: %s\ndata: %s\n\n", eventID, ev.Type, string(data))
			eventID++
			flusher.Flush()
		}
	}
}

// viewableProject loads the project and enforces view access. Denial and
// absence both answer 404: the policy does not reveal which one it was.
func (h *ProjectHandler) viewableProject(c *gin.Context) (*model.Project, bool) {
	project, err := h.projectService.GetByID(c.Request.Context(), parseID(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return nil, false
	}
	if !authz.CanViewProject(middleware.GetCurrentUser(c), project) {
		NotFound(c, 40402, "project not found")
		return nil, false
	}
	return project, true
}

func (h *ProjectHandler) editableProject(c *gin.Context) (*model.Project, bool) {
	project, err := h.projectService.GetByID(c.Request.Context(), parseID(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return nil, false
	}
	user := middleware.GetCurrentUser(c)
	if !authz.CanViewProject(user, project) {
		NotFound(c, 40402, "project not found")
		return nil, false
	}
	if !authz.CanEditProject(user, project) {
		Forbidden(c, 40303, "only the owner may modify the project")
		return nil, false
	}
	return project, true
}

func (h *ProjectHandler) memberManageableProject(c *gin.Context) (*model.Project, bool) {
	project, err := h.projectService.GetByID(c.Request.Context(), parseID(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return nil, false
	}
	user := middleware.GetCurrentUser(c)
	if !authz.CanViewProject(user, project) {
		NotFound(c, 40402, "project not found")
		return nil, false
	}
	if !authz.CanManageMembers(user, project) {
		Forbidden(c, 40304, "only the owner may manage the team")
		return nil, false
	}
	return project, true
}

func (h *ProjectHandler) projectJSON(p *model.Project) gin.H {
	data := gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"due_date":    p.DueDate,
		"status":      p.Status,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
	if p.CoverImage != "" {
		data["cover_image"] = p.CoverImage
		data["cover_url"] = h.files.URLOf(p.CoverImage)
	}
	if p.Owner != nil {
		data["owner"] = p.Owner.Brief()
	}
	return data
}
