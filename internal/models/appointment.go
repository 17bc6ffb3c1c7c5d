package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  string `gorm:"type:uuid;index;not null" json:"client_id"`
	StylistID string `gorm:"type:uuid;index" json:"stylist_id"`
	VenueID   string `gorm:"type:uuid;index" json:"venue_id"`

	Date   time.Time `gorm:"index" json:"date"`
	Status string    `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes              string `gorm:"type:text" json:"notes"`
	Beverage           string `gorm:"size:120" json:"beverage"`
	ConversationTopics string `gorm:"type:text" json:"conversation_topics"`
	VideoURL           string `gorm:"size:255" json:"video_url"`

	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
