package models

import (
	"time"

	"gorm.io/gorm"
)

// Child records of an appointment. They are only ever written together with
// their appointment and only ever read by appointment_id.

type AppointmentService struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID string    `gorm:"type:uuid;index;not null" json:"appointment_id"`
	ServiceName   string    `gorm:"size:120;not null" json:"service_name"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type AppointmentFormula struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID string    `gorm:"type:uuid;index;not null" json:"appointment_id"`
	Formula       string    `gorm:"type:text;not null" json:"formula"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type AppointmentTreatment struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID string    `gorm:"type:uuid;index;not null" json:"appointment_id"`
	TreatmentName string    `gorm:"size:120;not null" json:"treatment_name"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type AppointmentProduct struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID string    `gorm:"type:uuid;index;not null" json:"appointment_id"`
	ProductName   string    `gorm:"size:120;not null" json:"product_name"`
	Quantity      string    `gorm:"size:40" json:"quantity"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	PhotoBefore = "before"
	PhotoAfter  = "after"
)

type AppointmentPhoto struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID string    `gorm:"type:uuid;index;not null" json:"appointment_id"`
	PhotoURL      string    `gorm:"size:500;not null" json:"photo_url"`
	PhotoType     string    `gorm:"size:10;not null" json:"photo_type"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *AppointmentService) BeforeCreate(*gorm.DB) error   { assignID(&r.ID); return nil }
func (r *AppointmentFormula) BeforeCreate(*gorm.DB) error   { assignID(&r.ID); return nil }
func (r *AppointmentTreatment) BeforeCreate(*gorm.DB) error { assignID(&r.ID); return nil }
func (r *AppointmentProduct) BeforeCreate(*gorm.DB) error   { assignID(&r.ID); return nil }
func (r *AppointmentPhoto) BeforeCreate(*gorm.DB) error     { assignID(&r.ID); return nil }
