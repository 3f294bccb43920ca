package handler

import (
	"github.com/Ordy-97/GestionProjet/internal/middleware"
	"github.com/Ordy-97/GestionProjet/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	projectService  *service.ProjectService
	activityService *service.ActivityService
}

func NewDashboardHandler(projectService *service.ProjectService, activityService *service.ActivityService) *DashboardHandler {
	return &DashboardHandler{projectService: projectService, activityService: activityService}
}

// GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	stats := h.projectService.CountByStatus(ctx, userID)

	recent, err := h.activityService.Recent(ctx, userID, 10)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	recentActivity := make([]gin.H, 0, len(recent))
	for _, e := range recent {
		item := gin.H{
			"project_id": e.ProjectID,
			"action":     e.Action,
			"detail":     e.Detail,
			"created_at": e.CreatedAt,
		}
		if e.Actor != nil {
			item["actor"] = e.Actor.Brief()
		}
		recentActivity = append(recentActivity, item)
	}

	Success(c, gin.H{
		"projects_by_status": stats,
		"recent_activity":    recentActivity,
	})
}
