package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-backoffice/internal/access"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/stylist"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type StylistHandler struct {
	repo  stylist.Repository
	guard *access.Guard
}

func NewStylistHandler(repo stylist.Repository, guard *access.Guard) *StylistHandler {
	return &StylistHandler{repo: repo, guard: guard}
}

type CreateStylistRequest struct {
	VenueID     string                    `json:"venue_id"`
	Name        string                    `json:"name" binding:"required"`
	Email       string                    `json:"email"`
	Phone       string                    `json:"phone"`
	Permissions models.StylistPermissions `json:"permissions"`
}

// List filters by ?venue_id=; without it non-admins see their own venue.
func (h *StylistHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	profile := middleware.Profile(c)

	venueID := c.Query("venue_id")
	if !profile.IsSuperAdmin {
		if venueID == "" {
			venueID = profile.VenueID
		}
		if venueID == "" {
			httpresp.List(c, []models.Stylist{})
			return
		}
		if _, err := h.guard.Venue(ctx, profile, venueID); err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	stylists, err := h.repo.ListStylists(ctx, venueID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, stylists)
}

func (h *StylistHandler) Get(c *gin.Context) {
	s, err := h.guard.Stylist(c.Request.Context(), middleware.Profile(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *StylistHandler) Create(c *gin.Context) {
	var req CreateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid stylist payload.")
		return
	}
	ctx := c.Request.Context()
	profile := middleware.Profile(c)
	if req.VenueID == "" {
		req.VenueID = profile.VenueID
	}

	s := &models.Stylist{
		VenueID:     req.VenueID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Permissions: req.Permissions,
	}
	if err := stylist.Validate(s); err != nil {
		httperr.Respond(c, err)
		return
	}
	if _, err := h.guard.Venue(ctx, profile, s.VenueID); err != nil {
		httperr.Respond(c, unknownAs(err, "venue_id", "unknown venue"))
		return
	}

	if err := h.repo.CreateStylist(ctx, s); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *StylistHandler) Update(c *gin.Context) {
	var patch stylist.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid stylist payload.")
		return
	}
	if err := patch.Validate(); err != nil {
		httperr.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	profile := middleware.Profile(c)
	if _, err := h.guard.Stylist(ctx, profile, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	if patch.VenueID != nil {
		if _, err := h.guard.Venue(ctx, profile, *patch.VenueID); err != nil {
			httperr.Respond(c, unknownAs(err, "venue_id", "unknown venue"))
			return
		}
	}

	s, err := h.repo.UpdateStylist(ctx, c.Param("id"), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *StylistHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.guard.Stylist(ctx, middleware.Profile(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.DeleteStylist(ctx, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
