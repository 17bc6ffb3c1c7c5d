package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, translate("get_appointment", "appointment", id, err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByClient(
	ctx context.Context,
	clientID string,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC, created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, translate("list_appointments", "appointment", "", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListRecentAppointments(
	ctx context.Context,
	venueIDs []string,
	limit int,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if venueIDs != nil && len(venueIDs) == 0 {
		return apps, nil
	}

	q := r.db.WithContext(ctx).Order("date DESC, created_at DESC")
	if venueIDs != nil {
		q = q.Where("venue_id IN ?", venueIDs)
	}
	if err := q.Limit(limit).Find(&apps).Error; err != nil {
		return nil, translate("list_recent_appointments", "appointment", "", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate("create_appointment", "appointment", ap.ID, r.db.WithContext(ctx).Create(ap).Error)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	id string,
	patch domain.Patch,
) (*models.Appointment, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(patch.Fields())
	if res.Error != nil {
		return nil, translate("update_appointment", "appointment", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, translate("update_appointment", "appointment", id, gorm.ErrRecordNotFound)
	}

	return r.GetAppointment(ctx, id)
}

// --------------------------------------------------
// Child collections
// --------------------------------------------------

// listChildren reads one child table by appointment_id, oldest first.
func listChildren[T any](ctx context.Context, db *gorm.DB, op, appointmentID string) ([]T, error) {
	rows := []T{}
	if err := db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, translate(op, "appointment", appointmentID, err)
	}
	return rows, nil
}

func createChildren[T any](ctx context.Context, db *gorm.DB, op string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return translate(op, "appointment", "", db.WithContext(ctx).Create(&rows).Error)
}

func (r *AppointmentGormRepository) ListServices(ctx context.Context, appointmentID string) ([]models.AppointmentService, error) {
	return listChildren[models.AppointmentService](ctx, r.db, "list_services", appointmentID)
}

func (r *AppointmentGormRepository) ListFormulas(ctx context.Context, appointmentID string) ([]models.AppointmentFormula, error) {
	return listChildren[models.AppointmentFormula](ctx, r.db, "list_formulas", appointmentID)
}

func (r *AppointmentGormRepository) ListTreatments(ctx context.Context, appointmentID string) ([]models.AppointmentTreatment, error) {
	return listChildren[models.AppointmentTreatment](ctx, r.db, "list_treatments", appointmentID)
}

func (r *AppointmentGormRepository) ListProducts(ctx context.Context, appointmentID string) ([]models.AppointmentProduct, error) {
	return listChildren[models.AppointmentProduct](ctx, r.db, "list_products", appointmentID)
}

func (r *AppointmentGormRepository) ListPhotos(ctx context.Context, appointmentID string) ([]models.AppointmentPhoto, error) {
	return listChildren[models.AppointmentPhoto](ctx, r.db, "list_photos", appointmentID)
}

func (r *AppointmentGormRepository) CreateServices(ctx context.Context, rows []models.AppointmentService) error {
	return createChildren(ctx, r.db, "insert_services", rows)
}

func (r *AppointmentGormRepository) CreateFormulas(ctx context.Context, rows []models.AppointmentFormula) error {
	return createChildren(ctx, r.db, "insert_formulas", rows)
}

func (r *AppointmentGormRepository) CreateTreatments(ctx context.Context, rows []models.AppointmentTreatment) error {
	return createChildren(ctx, r.db, "insert_treatments", rows)
}

func (r *AppointmentGormRepository) CreateProducts(ctx context.Context, rows []models.AppointmentProduct) error {
	return createChildren(ctx, r.db, "insert_products", rows)
}

func (r *AppointmentGormRepository) CreatePhotos(ctx context.Context, rows []models.AppointmentPhoto) error {
	return createChildren(ctx, r.db, "insert_photos", rows)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
