package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
)

// auditEvent builds an event attributed to the caller.
func auditEvent(
	c *gin.Context,
	barbershopID uuid.UUID,
	action string,
	entity string,
	entityID uuid.UUID,
	meta any,
) audit.Event {

	ev := audit.Event{
		BarbershopID: audit.Ref(barbershopID),
		Action:       action,
		Entity:       entity,
		EntityID:     audit.Ref(entityID),
		Metadata:     meta,
	}
	if u := middleware.CurrentUser(c); u != nil {
		ev.UserID = audit.Ref(u.ID)
	}
	return ev
}
