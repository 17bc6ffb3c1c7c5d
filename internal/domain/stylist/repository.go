package stylist

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/validators"
)

type Repository interface {
	GetStylist(ctx context.Context, id string) (*models.Stylist, error)
	// venueID == "" lists every stylist, ordered by name
	ListStylists(ctx context.Context, venueID string) ([]models.Stylist, error)
	CreateStylist(ctx context.Context, s *models.Stylist) error
	UpdateStylist(ctx context.Context, id string, patch Patch) (*models.Stylist, error)
	DeleteStylist(ctx context.Context, id string) error
}

type Patch struct {
	Name        *string                    `json:"name,omitempty"`
	Email       *string                    `json:"email,omitempty"`
	Phone       *string                    `json:"phone,omitempty"`
	VenueID     *string                    `json:"venue_id,omitempty"`
	Permissions *models.StylistPermissions `json:"permissions,omitempty"`
}

func Validate(s *models.Stylist) error {
	if strings.TrimSpace(s.VenueID) == "" {
		return httperr.Validation("venue_id", "required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return httperr.Validation("name", "required")
	}
	if s.Email != "" && !validators.IsEmail(s.Email) {
		return httperr.Validation("email", "malformed address")
	}
	return nil
}

func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return httperr.Validation("name", "cannot be blank")
	}
	if p.VenueID != nil && strings.TrimSpace(*p.VenueID) == "" {
		return httperr.Validation("venue_id", "cannot be blank")
	}
	if p.Email != nil && *p.Email != "" && !validators.IsEmail(*p.Email) {
		return httperr.Validation("email", "malformed address")
	}
	return nil
}

func (p Patch) Apply(s *models.Stylist) {
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.VenueID != nil {
		s.VenueID = *p.VenueID
	}
	if p.Permissions != nil {
		s.Permissions = *p.Permissions
	}
}
