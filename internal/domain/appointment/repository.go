package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type Repository interface {
	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// ordered by date, newest first
	ListAppointmentsByClient(
		ctx context.Context,
		clientID string,
	) ([]models.Appointment, error)

	// ordered by date, newest first; venueIDs == nil covers every venue
	ListRecentAppointments(
		ctx context.Context,
		venueIDs []string,
		limit int,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		id string,
		patch Patch,
	) (*models.Appointment, error)

	// -------- Child collections (read) --------
	ListServices(ctx context.Context, appointmentID string) ([]models.AppointmentService, error)
	ListFormulas(ctx context.Context, appointmentID string) ([]models.AppointmentFormula, error)
	ListTreatments(ctx context.Context, appointmentID string) ([]models.AppointmentTreatment, error)
	ListProducts(ctx context.Context, appointmentID string) ([]models.AppointmentProduct, error)
	ListPhotos(ctx context.Context, appointmentID string) ([]models.AppointmentPhoto, error)

	// -------- Child collections (batch insert) --------
	CreateServices(ctx context.Context, rows []models.AppointmentService) error
	CreateFormulas(ctx context.Context, rows []models.AppointmentFormula) error
	CreateTreatments(ctx context.Context, rows []models.AppointmentTreatment) error
	CreateProducts(ctx context.Context, rows []models.AppointmentProduct) error
	CreatePhotos(ctx context.Context, rows []models.AppointmentPhoto) error
}
