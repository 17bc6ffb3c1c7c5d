package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-backoffice/internal/access"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/venue"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type VenueHandler struct {
	repo  venue.Repository
	guard *access.Guard
}

func NewVenueHandler(repo venue.Repository, guard *access.Guard) *VenueHandler {
	return &VenueHandler{repo: repo, guard: guard}
}

type CreateVenueRequest struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func (h *VenueHandler) List(c *gin.Context) {
	profile := middleware.Profile(c)

	companyID := profile.CompanyID
	if profile.IsSuperAdmin {
		companyID = c.Query("company_id")
	}

	venues, err := h.repo.ListVenues(c.Request.Context(), companyID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, venues)
}

func (h *VenueHandler) Get(c *gin.Context) {
	v, err := h.guard.Venue(c.Request.Context(), middleware.Profile(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, v)
}

func (h *VenueHandler) Create(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid venue payload.")
		return
	}

	ctx := c.Request.Context()
	profile := middleware.Profile(c)
	if req.CompanyID == "" {
		req.CompanyID = profile.CompanyID
	}

	v := &models.Venue{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if err := venue.Validate(v); err != nil {
		httperr.Respond(c, err)
		return
	}
	if _, err := h.guard.Company(ctx, profile, v.CompanyID); err != nil {
		httperr.Respond(c, unknownAs(err, "company_id", "unknown company"))
		return
	}

	if err := h.repo.CreateVenue(ctx, v); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, v)
}

func (h *VenueHandler) Update(c *gin.Context) {
	var patch venue.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid venue payload.")
		return
	}
	if err := patch.Validate(); err != nil {
		httperr.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.guard.Venue(ctx, middleware.Profile(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	v, err := h.repo.UpdateVenue(ctx, c.Param("id"), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, v)
}

func (h *VenueHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.guard.Venue(ctx, middleware.Profile(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.DeleteVenue(ctx, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
