package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	auditRepo "github.com/mrlokans/myvoca/internal/database/audit"
	"github.com/mrlokans/myvoca/internal/entities"
)

type AuditController struct {
	events AuditReader
}

func NewAuditController(events AuditReader) *AuditController {
	return &AuditController{events: events}
}

// GetAuditEvents returns paginated audit events, newest first.
// GET /api/audit?user_id=&type=&entity_type=&entity_id=&page=&limit=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}

	filter := auditRepo.Filter{
		EventType:  entities.AuditEventType(c.Query("type")),
		EntityType: c.Query("entity_type"),
	}
	if c.Query("user_id") != "" {
		userID, ok := parseQueryID(c, "user_id")
		if !ok {
			return
		}
		filter.UserID = userID
	}
	if c.Query("entity_id") != "" {
		entityID, ok := parseQueryID(c, "entity_id")
		if !ok {
			return
		}
		filter.EntityID = entityID
	}

	events, total, err := ac.events.ListEvents(c.Request.Context(), filter, limit, (page-1)*limit)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	respondOK(c, gin.H{
		"events":      events,
		"page":        page,
		"limit":       limit,
		"totalPages":  totalPages,
		"totalEvents": total,
	})
}
