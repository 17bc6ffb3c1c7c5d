package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/stylist"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type StylistGormRepository struct {
	db *gorm.DB
}

func NewStylistGormRepository(db *gorm.DB) *StylistGormRepository {
	return &StylistGormRepository{db: db}
}

func (r *StylistGormRepository) GetStylist(
	ctx context.Context,
	id string,
) (*models.Stylist, error) {

	var s models.Stylist
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, translate("get_stylist", "stylist", id, err)
	}
	return &s, nil
}

func (r *StylistGormRepository) ListStylists(
	ctx context.Context,
	venueID string,
) ([]models.Stylist, error) {

	q := r.db.WithContext(ctx)
	if venueID != "" {
		q = q.Where("venue_id = ?", venueID)
	}

	stylists := []models.Stylist{}
	if err := q.Order("name ASC").Find(&stylists).Error; err != nil {
		return nil, translate("list_stylists", "stylist", "", err)
	}
	return stylists, nil
}

func (r *StylistGormRepository) CreateStylist(
	ctx context.Context,
	s *models.Stylist,
) error {
	return translate("create_stylist", "stylist", s.ID, r.db.WithContext(ctx).Create(s).Error)
}

func (r *StylistGormRepository) UpdateStylist(
	ctx context.Context,
	id string,
	patch domain.Patch,
) (*models.Stylist, error) {

	s, err := r.GetStylist(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(s)

	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return nil, translate("update_stylist", "stylist", id, err)
	}
	return s, nil
}

func (r *StylistGormRepository) DeleteStylist(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Stylist{})
	if res.Error != nil {
		return translate("delete_stylist", "stylist", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete_stylist", "stylist", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*StylistGormRepository)(nil)
