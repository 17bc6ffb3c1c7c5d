package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/company"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type CompanyGormRepository struct {
	db *gorm.DB
}

func NewCompanyGormRepository(db *gorm.DB) *CompanyGormRepository {
	return &CompanyGormRepository{db: db}
}

func (r *CompanyGormRepository) GetCompany(
	ctx context.Context,
	id string,
) (*models.Company, error) {

	var c models.Company
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, translate("get_company", "company", id, err)
	}
	return &c, nil
}

func (r *CompanyGormRepository) ListCompanies(
	ctx context.Context,
	ownerID string,
) ([]models.Company, error) {

	q := r.db.WithContext(ctx)
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}

	companies := []models.Company{}
	if err := q.Order("name ASC").Find(&companies).Error; err != nil {
		return nil, translate("list_companies", "company", "", err)
	}
	return companies, nil
}

func (r *CompanyGormRepository) CreateCompany(
	ctx context.Context,
	c *models.Company,
) error {
	return translate("create_company", "company", c.ID, r.db.WithContext(ctx).Create(c).Error)
}

func (r *CompanyGormRepository) UpdateCompany(
	ctx context.Context,
	id string,
	patch domain.Patch,
) (*models.Company, error) {

	c, err := r.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(c)

	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return nil, translate("update_company", "company", id, err)
	}
	return c, nil
}

// Compile-time check
var _ domain.Repository = (*CompanyGormRepository)(nil)
