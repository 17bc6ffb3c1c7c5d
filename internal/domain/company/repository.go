package company

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/timezone"
)

type Repository interface {
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	// ownerID == "" lists every company
	ListCompanies(ctx context.Context, ownerID string) ([]models.Company, error)
	CreateCompany(ctx context.Context, c *models.Company) error
	UpdateCompany(ctx context.Context, id string, patch Patch) (*models.Company, error)
}

type Patch struct {
	Name     *string                 `json:"name,omitempty"`
	Address  *string                 `json:"address,omitempty"`
	Phone    *string                 `json:"phone,omitempty"`
	Email    *string                 `json:"email,omitempty"`
	LogoURL  *string                 `json:"logo_url,omitempty"`
	Settings *models.CompanySettings `json:"settings,omitempty"`
}

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func Validate(c *models.Company) error {
	if strings.TrimSpace(c.Name) == "" {
		return httperr.Validation("name", "required")
	}
	return ValidateSettings(c.Settings)
}

func ValidateSettings(s models.CompanySettings) error {
	if s.Timezone != "" && !timezone.IsValid(s.Timezone) {
		return httperr.Validation("settings.timezone", "unknown time zone")
	}
	if s.AppointmentDuration < 0 {
		return httperr.Validation("settings.appointment_duration", "must be zero or positive")
	}
	for day, h := range s.BusinessHours {
		if !weekdays[strings.ToLower(day)] {
			return httperr.Validation("settings.business_hours", "unknown weekday "+day)
		}
		if h.IsClosed {
			continue
		}
		if !timezone.IsClock(h.Open) || !timezone.IsClock(h.Close) || h.Close <= h.Open {
			return httperr.Validation("settings.business_hours", "invalid hours for "+day)
		}
	}
	return nil
}

func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return httperr.Validation("name", "cannot be blank")
	}
	if p.Settings != nil {
		return ValidateSettings(*p.Settings)
	}
	return nil
}

func (p Patch) Apply(c *models.Company) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.LogoURL != nil {
		c.LogoURL = *p.LogoURL
	}
	if p.Settings != nil {
		c.Settings = *p.Settings
	}
}
