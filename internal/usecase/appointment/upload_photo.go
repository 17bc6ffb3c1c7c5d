package appointment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/storage"
)

// ObjectStore is the blob side of a photo upload.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type UploadPhoto struct {
	repo     domain.Repository
	store    ObjectStore
	maxWidth int
	audit    *audit.Dispatcher
}

func NewUploadPhoto(
	repo domain.Repository,
	store ObjectStore,
	maxWidth int,
	audit *audit.Dispatcher,
) *UploadPhoto {
	return &UploadPhoto{
		repo:     repo,
		store:    store,
		maxWidth: maxWidth,
		audit:    audit,
	}
}

func PhotoKey(appointmentID string) string {
	return fmt.Sprintf("appointments/%s/%s.webp", appointmentID, uuid.NewString())
}

func (uc *UploadPhoto) Execute(
	ctx context.Context,
	actor audit.Actor,
	appointmentID string,
	photoType string,
	image io.Reader,
) (*models.AppointmentPhoto, error) {

	if uc.store == nil {
		return nil, httperr.ErrBusiness("photo_storage_disabled")
	}
	if photoType != models.PhotoBefore && photoType != models.PhotoAfter {
		return nil, httperr.Validation("photo_type", "must be before or after")
	}

	if _, err := uc.repo.GetAppointment(ctx, appointmentID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Transcode + store
	// --------------------------------------------------
	body, err := storage.ToWebP(image, uc.maxWidth)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyImage) ||
			errors.Is(err, storage.ErrUnsupportedImage) ||
			errors.Is(err, storage.ErrUndecodableImage) ||
			errors.Is(err, storage.ErrImageTooLarge) ||
			errors.Is(err, storage.ErrImageDimensions) {
			return nil, httperr.Validation("photo", err.Error())
		}
		return nil, err
	}

	url, err := uc.store.PutObject(ctx, PhotoKey(appointmentID), body, storage.ContentTypeWebP)
	if err != nil {
		return nil, httperr.Remote("put_photo_object", err)
	}

	// --------------------------------------------------
	// Row
	// --------------------------------------------------
	rows := []models.AppointmentPhoto{{
		AppointmentID: appointmentID,
		PhotoURL:      url,
		PhotoType:     photoType,
	}}
	if err := uc.repo.CreatePhotos(ctx, rows); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actor.Event(
		audit.ActionAppointmentPhotoSent,
		"appointment",
		appointmentID,
		map[string]string{"photo_type": photoType, "url": url},
	))

	return &rows[0], nil
}
