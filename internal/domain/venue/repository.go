package venue

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type Repository interface {
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
	// companyID == "" lists every venue, ordered by name
	ListVenues(ctx context.Context, companyID string) ([]models.Venue, error)
	CreateVenue(ctx context.Context, v *models.Venue) error
	UpdateVenue(ctx context.Context, id string, patch Patch) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
}

type Patch struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

func Validate(v *models.Venue) error {
	if strings.TrimSpace(v.CompanyID) == "" {
		return httperr.Validation("company_id", "required")
	}
	if strings.TrimSpace(v.Name) == "" {
		return httperr.Validation("name", "required")
	}
	return nil
}

func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return httperr.Validation("name", "cannot be blank")
	}
	return nil
}

func (p Patch) Apply(v *models.Venue) {
	if p.Name != nil {
		v.Name = strings.TrimSpace(*p.Name)
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
	if p.Phone != nil {
		v.Phone = *p.Phone
	}
	if p.Email != nil {
		v.Email = *p.Email
	}
}
