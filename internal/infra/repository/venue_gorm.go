package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/venue"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type VenueGormRepository struct {
	db *gorm.DB
}

func NewVenueGormRepository(db *gorm.DB) *VenueGormRepository {
	return &VenueGormRepository{db: db}
}

func (r *VenueGormRepository) GetVenue(
	ctx context.Context,
	id string,
) (*models.Venue, error) {

	var v models.Venue
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&v).Error; err != nil {
		return nil, translate("get_venue", "venue", id, err)
	}
	return &v, nil
}

func (r *VenueGormRepository) ListVenues(
	ctx context.Context,
	companyID string,
) ([]models.Venue, error) {

	q := r.db.WithContext(ctx)
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}

	venues := []models.Venue{}
	if err := q.Order("name ASC").Find(&venues).Error; err != nil {
		return nil, translate("list_venues", "venue", "", err)
	}
	return venues, nil
}

func (r *VenueGormRepository) CreateVenue(
	ctx context.Context,
	v *models.Venue,
) error {
	return translate("create_venue", "venue", v.ID, r.db.WithContext(ctx).Create(v).Error)
}

func (r *VenueGormRepository) UpdateVenue(
	ctx context.Context,
	id string,
	patch domain.Patch,
) (*models.Venue, error) {

	v, err := r.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(v)

	if err := r.db.WithContext(ctx).Save(v).Error; err != nil {
		return nil, translate("update_venue", "venue", id, err)
	}
	return v, nil
}

func (r *VenueGormRepository) DeleteVenue(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Venue{})
	if res.Error != nil {
		return translate("delete_venue", "venue", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete_venue", "venue", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*VenueGormRepository)(nil)
