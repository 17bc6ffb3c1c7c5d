package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/account"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) GetUserInfo(
	ctx context.Context,
	authID string,
) (*models.UserProfile, error) {

	var u models.UserProfile
	if err := r.db.WithContext(ctx).
		Where("auth_id = ?", authID).
		First(&u).Error; err != nil {
		return nil, translate("get_user_info", "user", authID, err)
	}
	return &u, nil
}

// Compile-time check
var _ domain.Repository = (*AccountGormRepository)(nil)
