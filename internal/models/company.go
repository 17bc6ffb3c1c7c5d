package models

import (
	"time"

	"gorm.io/gorm"
)

type BusinessHours struct {
	Open     string `json:"open"`
	Close    string `json:"close"`
	IsClosed bool   `json:"is_closed"`
}

type CompanySettings struct {
	BusinessHours       map[string]BusinessHours `json:"business_hours,omitempty"`
	Timezone            string                   `json:"timezone,omitempty"`
	Currency            string                   `json:"currency,omitempty"`
	AppointmentDuration int                      `json:"appointment_duration,omitempty"`
}

type Company struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID string `gorm:"type:uuid;index" json:"owner_id"`

	Name    string `gorm:"size:120;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:30" json:"phone"`
	Email   string `gorm:"size:120" json:"email"`
	LogoURL string `gorm:"size:255" json:"logo_url"`

	Settings CompanySettings `gorm:"serializer:json" json:"settings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}
