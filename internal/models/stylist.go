package models

import (
	"time"

	"gorm.io/gorm"
)

type StylistPermissions struct {
	CanViewAllClients bool `json:"can_view_all_clients"`
}

type Stylist struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	VenueID string `gorm:"type:uuid;index;not null" json:"venue_id"`

	Name  string `gorm:"size:120;not null" json:"name"`
	Email string `gorm:"size:120" json:"email"`
	Phone string `gorm:"size:30" json:"phone"`

	Permissions StylistPermissions `gorm:"serializer:json" json:"permissions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Stylist) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}
