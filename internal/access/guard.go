// Package access scopes reads and writes to what the caller may reach in the
// company/venue/client hierarchy. Rows outside that scope are reported
// as not found.
package access

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/company"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/stylist"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/venue"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type Guard struct {
	companies    company.Repository
	venues       venue.Repository
	stylists     stylist.Repository
	clients      client.Repository
	appointments appointment.Repository
}

func NewGuard(
	companies company.Repository,
	venues venue.Repository,
	stylists stylist.Repository,
	clients client.Repository,
	appointments appointment.Repository,
) *Guard {
	return &Guard{
		companies:    companies,
		venues:       venues,
		stylists:     stylists,
		clients:      clients,
		appointments: appointments,
	}
}

// ======================================================
// Company hierarchy
// ======================================================

// Company returns the company when user belongs to it or owns it.
func (g *Guard) Company(
	ctx context.Context,
	user *models.UserProfile,
	id string,
) (*models.Company, error) {

	co, err := g.companies.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsSuperAdmin || co.ID == user.CompanyID || co.OwnerID == user.AuthID {
		return co, nil
	}
	return nil, httperr.NotFoundEntity("company", id)
}

// Venue returns the venue when its company is reachable.
func (g *Guard) Venue(
	ctx context.Context,
	user *models.UserProfile,
	id string,
) (*models.Venue, error) {

	v, err := g.venues.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := g.Company(ctx, user, v.CompanyID); err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.NotFoundEntity("venue", id)
		}
		return nil, err
	}
	return v, nil
}

// Stylist returns the stylist when its venue is reachable.
func (g *Guard) Stylist(
	ctx context.Context,
	user *models.UserProfile,
	id string,
) (*models.Stylist, error) {

	s, err := g.stylists.GetStylist(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := g.Venue(ctx, user, s.VenueID); err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.NotFoundEntity("stylist", id)
		}
		return nil, err
	}
	return s, nil
}

// ======================================================
// Clients and appointments
// ======================================================

// Client returns the client when client.CanView allows it.
func (g *Guard) Client(
	ctx context.Context,
	user *models.UserProfile,
	id string,
) (*models.Client, error) {

	c, err := g.clients.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	perms, err := g.permissions(ctx, user)
	if err != nil {
		return nil, err
	}
	if !client.CanView(user, perms, c) {
		return nil, httperr.NotFoundEntity("client", id)
	}
	return c, nil
}

// Appointment returns the appointment when its client is visible.
func (g *Guard) Appointment(
	ctx context.Context,
	user *models.UserProfile,
	id string,
) (*models.Appointment, error) {

	ap, err := g.appointments.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := g.Client(ctx, user, ap.ClientID); err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.NotFoundEntity("appointment", id)
		}
		return nil, err
	}
	return ap, nil
}

// ClientVenue checks that user may hold clients and appointments in the
// venue. Unknown or unreachable venues fail validation on field.
func (g *Guard) ClientVenue(
	ctx context.Context,
	user *models.UserProfile,
	field string,
	venueID string,
) error {

	v, err := g.venues.GetVenue(ctx, venueID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return httperr.Validation(field, "unknown venue")
		}
		return err
	}
	perms, err := g.permissions(ctx, user)
	if err != nil {
		return err
	}
	if !client.CanReach(user, perms, v.ID, v.CompanyID) {
		return httperr.Validation(field, "unknown venue")
	}
	return nil
}

// VenueScope lists the venues whose clients user may see. A nil slice means
// every venue.
func (g *Guard) VenueScope(
	ctx context.Context,
	user *models.UserProfile,
) ([]string, error) {

	if user.IsSuperAdmin {
		return nil, nil
	}

	perms, err := g.permissions(ctx, user)
	if err != nil {
		return nil, err
	}
	if !perms.CanViewAllClients || user.CompanyID == "" {
		if user.VenueID == "" {
			return []string{}, nil
		}
		return []string{user.VenueID}, nil
	}

	venues, err := g.venues.ListVenues(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	return ids, nil
}

// permissions of the user's stylist row; users without one get none.
func (g *Guard) permissions(
	ctx context.Context,
	user *models.UserProfile,
) (models.StylistPermissions, error) {

	if user.StylistID == nil || *user.StylistID == "" {
		return models.StylistPermissions{}, nil
	}
	s, err := g.stylists.GetStylist(ctx, *user.StylistID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return models.StylistPermissions{}, nil
		}
		return models.StylistPermissions{}, err
	}
	return s.Permissions, nil
}
