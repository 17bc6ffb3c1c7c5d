package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-backoffice/internal/access"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	usecase "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
)

type DashboardHandler struct {
	recent *usecase.ListRecentClients
	guard  *access.Guard
}

func NewDashboardHandler(recent *usecase.ListRecentClients, guard *access.Guard) *DashboardHandler {
	return &DashboardHandler{recent: recent, guard: guard}
}

// RecentClients covers the venues whose clients the caller may see.
func (h *DashboardHandler) RecentClients(c *gin.Context) {
	ctx := c.Request.Context()

	scope, err := h.guard.VenueScope(ctx, middleware.Profile(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	rows, err := h.recent.Execute(ctx, scope)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}
