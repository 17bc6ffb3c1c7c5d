package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/realtime"
)

type ClientGormRepository struct {
	db     *gorm.DB
	feed   realtime.Publisher
	logger *zap.Logger
}

// feed may be nil; writes then go unannounced.
func NewClientGormRepository(
	db *gorm.DB,
	feed realtime.Publisher,
	logger *zap.Logger,
) *ClientGormRepository {
	return &ClientGormRepository{
		db:     db,
		feed:   feed,
		logger: logger,
	}
}

func (r *ClientGormRepository) GetClient(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, translate("get_client", "client", id, err)
	}
	return &c, nil
}

func (r *ClientGormRepository) ListClients(
	ctx context.Context,
	venueID string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx)
	if venueID != "" {
		q = q.Where("venue_id = ?", venueID)
	}

	clients := []models.Client{}
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, translate("list_clients", "client", "", err)
	}
	return clients, nil
}

// --------------------------------------------------
// insert_client
// --------------------------------------------------

func (r *ClientGormRepository) InsertClient(
	ctx context.Context,
	in domain.NewClient,
	createdBy string,
) (string, error) {

	row := in.Row()
	if createdBy != "" {
		row.CreatedBy = &createdBy
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.
			Select("id", "company_id").
			Where("id = ?", in.VenueID).
			First(&venue).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.Validation("venue_id", "unknown venue")
			}
			return err
		}

		row.CompanyID = venue.CompanyID
		return tx.Create(row).Error
	})
	if err != nil {
		if httperr.IsValidation(err) {
			return "", err
		}
		return "", translate("insert_client", "client", "", err)
	}

	r.announce(ctx, realtime.OpInsert, row.ID)
	return row.ID, nil
}

// --------------------------------------------------
// update_client
// --------------------------------------------------

func (r *ClientGormRepository) UpdateClientGuarded(
	ctx context.Context,
	actorID string,
	id string,
	patch domain.Patch,
) (bool, error) {

	allowed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Client
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}

		var user models.UserProfile
		if err := tx.Where("auth_id = ?", actorID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		var perms models.StylistPermissions
		if user.StylistID != nil {
			var s models.Stylist
			err := tx.Where("id = ?", *user.StylistID).First(&s).Error
			switch {
			case err == nil:
				perms = s.Permissions
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		if !domain.CanEdit(&user, perms, &c) {
			return nil
		}

		fields := patch.Fields()
		if len(fields) > 0 {
			if err := tx.Model(&models.Client{}).
				Where("id = ?", id).
				Updates(fields).Error; err != nil {
				return err
			}
		}

		allowed = true
		return nil
	})
	if err != nil {
		return false, translate("update_client", "client", id, err)
	}

	if allowed {
		r.announce(ctx, realtime.OpUpdate, id)
	}
	return allowed, nil
}

func (r *ClientGormRepository) announce(ctx context.Context, op realtime.Op, id string) {
	if err := realtime.Notify(ctx, r.feed, realtime.TableClients, op, id); err != nil {
		r.logger.Warn("client change not announced",
			zap.String("client_id", id),
			zap.String("op", string(op)),
			zap.Error(err),
		)
	}
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
