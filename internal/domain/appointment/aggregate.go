package appointment

import "github.com/BruksfildServices01/salon-backoffice/internal/models"

// UnassignedStylist is shown when an appointment has no stylist or the
// stylist could not be resolved.
const UnassignedStylist = "unassigned"

// AggregatedAppointment is one appointment denormalized with its stylist
// name and its five child collections. The collections are never nil.
type AggregatedAppointment struct {
	models.Appointment

	StylistName string `json:"stylist_name"`

	Services   []models.AppointmentService   `json:"services"`
	Formulas   []models.AppointmentFormula   `json:"formulas"`
	Treatments []models.AppointmentTreatment `json:"treatments"`
	Products   []models.AppointmentProduct   `json:"products"`
	Photos     []models.AppointmentPhoto     `json:"photos"`
}

func NewAggregated(ap models.Appointment) AggregatedAppointment {
	return AggregatedAppointment{
		Appointment: ap,
		StylistName: UnassignedStylist,
		Services:    []models.AppointmentService{},
		Formulas:    []models.AppointmentFormula{},
		Treatments:  []models.AppointmentTreatment{},
		Products:    []models.AppointmentProduct{},
		Photos:      []models.AppointmentPhoto{},
	}
}

// Clone copies every collection so the result shares no backing arrays
// with a.
func (a AggregatedAppointment) Clone() AggregatedAppointment {
	out := a
	out.Services = append([]models.AppointmentService{}, a.Services...)
	out.Formulas = append([]models.AppointmentFormula{}, a.Formulas...)
	out.Treatments = append([]models.AppointmentTreatment{}, a.Treatments...)
	out.Products = append([]models.AppointmentProduct{}, a.Products...)
	out.Photos = append([]models.AppointmentPhoto{}, a.Photos...)
	return out
}
