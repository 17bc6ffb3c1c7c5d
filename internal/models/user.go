package models

import "time"

// UserProfile links an identity-provider user to its place in the salon
// hierarchy. Rows are provisioned by the identity side.
type UserProfile struct {
	AuthID       string  `gorm:"type:uuid;primaryKey" json:"auth_id"`
	CompanyID    string  `gorm:"type:uuid;index" json:"company_id"`
	VenueID      string  `gorm:"type:uuid;index" json:"venue_id"`
	StylistID    *string `gorm:"type:uuid" json:"stylist_id"`
	IsSuperAdmin bool    `gorm:"default:false" json:"is_super_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
