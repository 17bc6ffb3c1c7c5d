package models

import (
	"time"

	"gorm.io/gorm"
)

// Client belongs to exactly one venue; CompanyID is stamped from the venue
// on insert.
type Client struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	VenueID   string  `gorm:"type:uuid;index;not null" json:"venue_id"`
	CompanyID string  `gorm:"type:uuid;index;not null" json:"company_id"`
	CreatedBy *string `gorm:"type:uuid" json:"created_by,omitempty"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`

	Email             *string    `gorm:"size:120" json:"email"`
	Phone             *string    `gorm:"size:30" json:"phone"`
	BirthDate         *time.Time `gorm:"type:date" json:"birth_date"`
	PreferredBeverage *string    `gorm:"size:120" json:"preferred_beverage"`
	Notes             *string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// Clone returns a copy that shares no pointers with c.
func (c Client) Clone() Client {
	out := c
	out.Email = cloneString(c.Email)
	out.Phone = cloneString(c.Phone)
	out.PreferredBeverage = cloneString(c.PreferredBeverage)
	out.Notes = cloneString(c.Notes)
	out.CreatedBy = cloneString(c.CreatedBy)
	if c.BirthDate != nil {
		d := *c.BirthDate
		out.BirthDate = &d
	}
	return out
}

func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
