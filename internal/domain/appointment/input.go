package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type ServiceInput struct {
	ServiceName string `json:"service_name"`
	Notes       string `json:"notes"`
}

type FormulaInput struct {
	Formula string `json:"formula"`
	Notes   string `json:"notes"`
}

type TreatmentInput struct {
	TreatmentName string `json:"treatment_name"`
	Notes         string `json:"notes"`
}

type ProductInput struct {
	ProductName string `json:"product_name"`
	Quantity    string `json:"quantity"`
	Notes       string `json:"notes"`
}

type PhotoInput struct {
	PhotoURL  string `json:"photo_url"`
	PhotoType string `json:"photo_type"`
}

// NewAppointment is everything needed to write one appointment and its
// child records. Date and StylistID are the only required fields.
type NewAppointment struct {
	ClientID  string     `json:"client_id"`
	VenueID   string     `json:"venue_id"`
	StylistID string     `json:"stylist_id"`
	Date      *time.Time `json:"date"`

	Notes              string `json:"notes"`
	Beverage           string `json:"beverage"`
	ConversationTopics string `json:"conversation_topics"`
	VideoURL           string `json:"video_url"`

	Services   []ServiceInput   `json:"services"`
	Formulas   []FormulaInput   `json:"formulas"`
	Treatments []TreatmentInput `json:"treatments"`
	Products   []ProductInput   `json:"products"`
	Photos     []PhotoInput     `json:"photos"`
}

func (in NewAppointment) Validate() error {
	if in.Date == nil || in.Date.IsZero() {
		return httperr.Validation("date", "required")
	}
	if strings.TrimSpace(in.StylistID) == "" {
		return httperr.Validation("stylist_id", "required")
	}
	if strings.TrimSpace(in.ClientID) == "" {
		return httperr.Validation("client_id", "required")
	}
	for _, p := range in.Photos {
		if strings.TrimSpace(p.PhotoURL) == "" {
			continue
		}
		if p.PhotoType != models.PhotoBefore && p.PhotoType != models.PhotoAfter {
			return httperr.Validation("photo_type", "must be before or after")
		}
	}
	return nil
}

func (in NewAppointment) Row() *models.Appointment {
	return &models.Appointment{
		ClientID:           in.ClientID,
		StylistID:          in.StylistID,
		VenueID:            in.VenueID,
		Date:               in.Date.UTC(),
		Status:             string(InitialStatus()),
		Notes:              in.Notes,
		Beverage:           in.Beverage,
		ConversationTopics: in.ConversationTopics,
		VideoURL:           in.VideoURL,
	}
}

// --------------------------------------------------
// Child rows, blank entries dropped
// --------------------------------------------------

func (in NewAppointment) ServiceRows(appointmentID string) []models.AppointmentService {
	var rows []models.AppointmentService
	for _, s := range in.Services {
		if strings.TrimSpace(s.ServiceName) == "" {
			continue
		}
		rows = append(rows, models.AppointmentService{
			AppointmentID: appointmentID,
			ServiceName:   strings.TrimSpace(s.ServiceName),
			Notes:         s.Notes,
		})
	}
	return rows
}

func (in NewAppointment) FormulaRows(appointmentID string) []models.AppointmentFormula {
	var rows []models.AppointmentFormula
	for _, f := range in.Formulas {
		if strings.TrimSpace(f.Formula) == "" {
			continue
		}
		rows = append(rows, models.AppointmentFormula{
			AppointmentID: appointmentID,
			Formula:       strings.TrimSpace(f.Formula),
			Notes:         f.Notes,
		})
	}
	return rows
}

func (in NewAppointment) TreatmentRows(appointmentID string) []models.AppointmentTreatment {
	var rows []models.AppointmentTreatment
	for _, t := range in.Treatments {
		if strings.TrimSpace(t.TreatmentName) == "" {
			continue
		}
		rows = append(rows, models.AppointmentTreatment{
			AppointmentID: appointmentID,
			TreatmentName: strings.TrimSpace(t.TreatmentName),
			Notes:         t.Notes,
		})
	}
	return rows
}

func (in NewAppointment) ProductRows(appointmentID string) []models.AppointmentProduct {
	var rows []models.AppointmentProduct
	for _, p := range in.Products {
		if strings.TrimSpace(p.ProductName) == "" {
			continue
		}
		rows = append(rows, models.AppointmentProduct{
			AppointmentID: appointmentID,
			ProductName:   strings.TrimSpace(p.ProductName),
			Quantity:      p.Quantity,
			Notes:         p.Notes,
		})
	}
	return rows
}

func (in NewAppointment) PhotoRows(appointmentID string) []models.AppointmentPhoto {
	var rows []models.AppointmentPhoto
	for _, p := range in.Photos {
		if strings.TrimSpace(p.PhotoURL) == "" {
			continue
		}
		rows = append(rows, models.AppointmentPhoto{
			AppointmentID: appointmentID,
			PhotoURL:      strings.TrimSpace(p.PhotoURL),
			PhotoType:     p.PhotoType,
		})
	}
	return rows
}
