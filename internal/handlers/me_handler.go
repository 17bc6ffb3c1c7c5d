package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p := middleware.Profile(c)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":             p.AuthID,
			"is_super_admin": p.IsSuperAdmin,
			"company_id":     p.CompanyID,
			"venue_id":       p.VenueID,
			"stylist_id":     p.StylistID,
		},
	})
}
