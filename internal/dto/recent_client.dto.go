package dto

import "time"

type RecentClientDTO struct {
	AppointmentID string    `json:"appointment_id"`
	ClientID      string    `json:"client_id"`
	ClientName    string    `json:"client_name"`
	StylistName   string    `json:"stylist_name"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
}
