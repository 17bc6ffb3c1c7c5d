package client

import "github.com/BruksfildServices01/salon-backoffice/internal/models"

// CanReach is the ownership rule of the salon hierarchy. Super admins reach
// everything; a user reaches its own venue; with can_view_all_clients it
// reaches every venue of its company.
func CanReach(
	user *models.UserProfile,
	perms models.StylistPermissions,
	venueID string,
	companyID string,
) bool {
	if user == nil {
		return false
	}
	if user.IsSuperAdmin {
		return true
	}
	if user.VenueID != "" && user.VenueID == venueID {
		return true
	}
	return perms.CanViewAllClients && user.CompanyID != "" && user.CompanyID == companyID
}

// CanView reports whether user may read c and its appointments.
func CanView(
	user *models.UserProfile,
	perms models.StylistPermissions,
	c *models.Client,
) bool {
	return c != nil && CanReach(user, perms, c.VenueID, c.CompanyID)
}

// CanEdit is the rule behind the guarded update. Editing follows
// visibility.
func CanEdit(
	user *models.UserProfile,
	perms models.StylistPermissions,
	c *models.Client,
) bool {
	return CanView(user, perms, c)
}
