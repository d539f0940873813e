package handlers

import (
	"net/http"
	"strconv"

	"github.com/fabianthdev/sidestore-id-backend/internal/middleware"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/services"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"

	"github.com/gin-gonic/gin"
)

type activityEntry struct {
	ID           string               `json:"id"`
	EventType    models.EventType     `json:"event_type"`
	EventTime    int64                `json:"event_time"`
	Severity     models.EventSeverity `json:"severity"`
	ActorIP      string               `json:"actor_ip"`
	ResourceType models.ResourceType  `json:"resource_type"`
	ResourceID   string               `json:"resource_id"`
	Action       string               `json:"action"`
	Details      models.AuditDetails  `json:"details,omitempty"`
	Success      bool                 `json:"success"`
}

// AuditHandler exposes a user's own security events
type AuditHandler struct {
	auditService *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// Activity lists the caller's audit trail, newest first
func (h *AuditHandler) Activity(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	params := store.NewPaginationParams(page, pageSize, "")

	logs, pagination, err := h.auditService.GetUserActivity(c.Request.Context(), principal.UserID, params)
	if err != nil {
		serverError(c, "Failed to retrieve activity")
		return
	}

	entries := make([]activityEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, activityEntry{
			ID:           l.ID,
			EventType:    l.EventType,
			EventTime:    l.EventTime.Unix(),
			Severity:     l.Severity,
			ActorIP:      l.ActorIP,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			Action:       l.Action,
			Details:      l.Details,
			Success:      l.Success,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"events":     entries,
		"pagination": pagination,
	})
}
