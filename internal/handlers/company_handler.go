package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-backoffice/internal/access"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/company"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type CompanyHandler struct {
	repo  company.Repository
	guard *access.Guard
}

func NewCompanyHandler(repo company.Repository, guard *access.Guard) *CompanyHandler {
	return &CompanyHandler{repo: repo, guard: guard}
}

type CreateCompanyRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Address  string                 `json:"address"`
	Phone    string                 `json:"phone"`
	Email    string                 `json:"email"`
	LogoURL  string                 `json:"logo_url"`
	Settings models.CompanySettings `json:"settings"`
}

// List returns the companies owned by the caller, or every company for
// super admins.
func (h *CompanyHandler) List(c *gin.Context) {
	profile := middleware.Profile(c)

	owner := profile.AuthID
	if profile.IsSuperAdmin {
		owner = c.Query("owner_id")
	}

	companies, err := h.repo.ListCompanies(c.Request.Context(), owner)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, companies)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	co, err := h.guard.Company(c.Request.Context(), middleware.Profile(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, co)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid company payload.")
		return
	}

	co := &models.Company{
		OwnerID:  middleware.Profile(c).AuthID,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		LogoURL:  req.LogoURL,
		Settings: req.Settings,
	}
	if err := company.Validate(co); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.CreateCompany(c.Request.Context(), co); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, co)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var patch company.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid company payload.")
		return
	}
	if err := patch.Validate(); err != nil {
		httperr.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.guard.Company(ctx, middleware.Profile(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	co, err := h.repo.UpdateCompany(ctx, c.Param("id"), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, co)
}
