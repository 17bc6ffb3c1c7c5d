package client

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/validators"
)

type NewClient struct {
	VenueID           string     `json:"venue_id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	CountryCode       string     `json:"country_code"`
	PhoneNumber       string     `json:"phone_number"`
	BirthDate         *time.Time `json:"birth_date"`
	PreferredBeverage string     `json:"preferred_beverage"`
	Notes             string     `json:"notes"`
}

func (in NewClient) Validate() error {
	if strings.TrimSpace(in.VenueID) == "" {
		return httperr.Validation("venue_id", "required")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return httperr.Validation("first_name", "required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return httperr.Validation("last_name", "required")
	}
	if in.Email != "" && !validators.IsEmail(in.Email) {
		return httperr.Validation("email", "malformed address")
	}
	if in.PhoneNumber != "" {
		if _, ok := validators.NormalizePhone(in.CountryCode, in.PhoneNumber); !ok {
			return httperr.Validation("phone_number", "malformed number")
		}
	}
	return nil
}

// Row builds the client row; CompanyID and CreatedBy are left to the gateway.
func (in NewClient) Row() *models.Client {
	c := &models.Client{
		VenueID:           in.VenueID,
		FirstName:         strings.TrimSpace(in.FirstName),
		LastName:          strings.TrimSpace(in.LastName),
		Email:             nullable(strings.ToLower(strings.TrimSpace(in.Email))),
		PreferredBeverage: nullable(in.PreferredBeverage),
		Notes:             nullable(in.Notes),
		BirthDate:         in.BirthDate,
	}
	if phone, ok := validators.NormalizePhone(in.CountryCode, in.PhoneNumber); ok {
		c.Phone = &phone
	}
	return c
}

// Patch is a partial client update. A pointer to an empty string clears a
// nullable column.
type Patch struct {
	FirstName         *string    `json:"first_name,omitempty"`
	LastName          *string    `json:"last_name,omitempty"`
	Email             *string    `json:"email,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	BirthDate         *time.Time `json:"birth_date,omitempty"`
	PreferredBeverage *string    `json:"preferred_beverage,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

func (p Patch) Validate() error {
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return httperr.Validation("first_name", "cannot be blank")
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return httperr.Validation("last_name", "cannot be blank")
	}
	if p.Email != nil && *p.Email != "" && !validators.IsEmail(*p.Email) {
		return httperr.Validation("email", "malformed address")
	}
	return nil
}

// Merge layers next over p.
func (p Patch) Merge(next Patch) Patch {
	if next.FirstName != nil {
		p.FirstName = next.FirstName
	}
	if next.LastName != nil {
		p.LastName = next.LastName
	}
	if next.Email != nil {
		p.Email = next.Email
	}
	if next.Phone != nil {
		p.Phone = next.Phone
	}
	if next.BirthDate != nil {
		p.BirthDate = next.BirthDate
	}
	if next.PreferredBeverage != nil {
		p.PreferredBeverage = next.PreferredBeverage
	}
	if next.Notes != nil {
		p.Notes = next.Notes
	}
	return p
}

func (p Patch) Apply(c *models.Client) {
	if p.FirstName != nil {
		c.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		c.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.Email != nil {
		c.Email = nullable(strings.ToLower(strings.TrimSpace(*p.Email)))
	}
	if p.Phone != nil {
		c.Phone = nullable(*p.Phone)
	}
	if p.BirthDate != nil {
		d := *p.BirthDate
		c.BirthDate = &d
	}
	if p.PreferredBeverage != nil {
		c.PreferredBeverage = nullable(*p.PreferredBeverage)
	}
	if p.Notes != nil {
		c.Notes = nullable(*p.Notes)
	}
}

// Fields is the column map handed to the gateway update.
func (p Patch) Fields() map[string]any {
	var c models.Client
	p.Apply(&c)

	fields := map[string]any{}
	if p.FirstName != nil {
		fields["first_name"] = c.FirstName
	}
	if p.LastName != nil {
		fields["last_name"] = c.LastName
	}
	if p.Email != nil {
		fields["email"] = c.Email
	}
	if p.Phone != nil {
		fields["phone"] = c.Phone
	}
	if p.BirthDate != nil {
		fields["birth_date"] = c.BirthDate
	}
	if p.PreferredBeverage != nil {
		fields["preferred_beverage"] = c.PreferredBeverage
	}
	if p.Notes != nil {
		fields["notes"] = c.Notes
	}
	return fields
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
