// Package memory is an in-process gateway holding every table in maps. It
// backs DATABASE_URL=memory:// and the test suites.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/account"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/company"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/stylist"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/venue"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/realtime"
)

type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	feed   realtime.Publisher
	logger *zap.Logger

	companies    map[string]models.Company
	venues       map[string]models.Venue
	stylists     map[string]models.Stylist
	clients      map[string]models.Client
	appointments map[string]models.Appointment
	users        map[string]models.UserProfile

	// insertion sequence, used to break created_at ties
	order map[string]int64

	services   []models.AppointmentService
	formulas   []models.AppointmentFormula
	treatments []models.AppointmentTreatment
	products   []models.AppointmentProduct
	photos     []models.AppointmentPhoto

	auditLogs []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		now:          func() time.Time { return time.Now().UTC() },
		logger:       zap.NewNop(),
		companies:    map[string]models.Company{},
		venues:       map[string]models.Venue{},
		stylists:     map[string]models.Stylist{},
		clients:      map[string]models.Client{},
		appointments: map[string]models.Appointment{},
		users:        map[string]models.UserProfile{},
		order:        map[string]int64{},
	}
}

// WithFeed announces client writes on p.
func (s *Store) WithFeed(p realtime.Publisher) *Store {
	s.feed = p
	return s
}

// WithLogger reports feed failures on l.
func (s *Store) WithLogger(l *zap.Logger) *Store {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *Store) announce(ctx context.Context, op realtime.Op, id string) {
	if err := realtime.Notify(ctx, s.feed, realtime.TableClients, op, id); err != nil {
		s.logger.Warn("client change not announced",
			zap.String("client_id", id),
			zap.String("op", string(op)),
			zap.Error(err),
		)
	}
}

func (s *Store) stamp(id *string) time.Time {
	if *id == "" {
		*id = uuid.NewString()
	}
	s.seq++
	s.order[*id] = s.seq
	return s.now()
}

// newer reports whether a sorts before b in a created_at DESC listing.
func (s *Store) newer(aID string, aAt time.Time, bID string, bAt time.Time) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return s.order[aID] > s.order[bID]
}

// ======================================================
// Users
// ======================================================

// PutUserProfile provisions a user the way the identity side would.
func (s *Store) PutUserProfile(u models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	u.UpdatedAt = s.now()
	s.users[u.AuthID] = u
}

func (s *Store) GetUserInfo(_ context.Context, authID string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[authID]
	if !ok {
		return nil, httperr.NotFoundEntity("user", authID)
	}
	if u.StylistID != nil {
		id := *u.StylistID
		u.StylistID = &id
	}
	return &u, nil
}

// ======================================================
// Companies
// ======================================================

func (s *Store) GetCompany(_ context.Context, id string) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, httperr.NotFoundEntity("company", id)
	}
	c.Settings = cloneSettings(c.Settings)
	return &c, nil
}

func (s *Store) ListCompanies(_ context.Context, ownerID string) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Company{}
	for _, c := range s.companies {
		if ownerID != "" && c.OwnerID != ownerID {
			continue
		}
		c.Settings = cloneSettings(c.Settings)
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateCompany(_ context.Context, c *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[c.ID]; ok && c.ID != "" {
		return httperr.ErrBusiness(httperr.CodeConflict)
	}
	c.CreatedAt = s.stamp(&c.ID)
	c.UpdatedAt = c.CreatedAt
	row := *c
	row.Settings = cloneSettings(c.Settings)
	s.companies[c.ID] = row
	return nil
}

func (s *Store) UpdateCompany(_ context.Context, id string, patch company.Patch) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, httperr.NotFoundEntity("company", id)
	}
	patch.Apply(&c)
	c.Settings = cloneSettings(c.Settings)
	c.UpdatedAt = s.now()
	s.companies[id] = c

	out := c
	out.Settings = cloneSettings(c.Settings)
	return &out, nil
}

func cloneSettings(in models.CompanySettings) models.CompanySettings {
	out := in
	if in.BusinessHours != nil {
		out.BusinessHours = make(map[string]models.BusinessHours, len(in.BusinessHours))
		for k, v := range in.BusinessHours {
			out.BusinessHours[k] = v
		}
	}
	return out
}

// ======================================================
// Venues
// ======================================================

func (s *Store) GetVenue(_ context.Context, id string) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[id]
	if !ok {
		return nil, httperr.NotFoundEntity("venue", id)
	}
	return &v, nil
}

func (s *Store) ListVenues(_ context.Context, companyID string) ([]models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Venue{}
	for _, v := range s.venues {
		if companyID != "" && v.CompanyID != companyID {
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateVenue(_ context.Context, v *models.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[v.CompanyID]; !ok {
		return httperr.Validation("company_id", "references a missing row")
	}
	v.CreatedAt = s.stamp(&v.ID)
	v.UpdatedAt = v.CreatedAt
	s.venues[v.ID] = *v
	return nil
}

func (s *Store) UpdateVenue(_ context.Context, id string, patch venue.Patch) (*models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.venues[id]
	if !ok {
		return nil, httperr.NotFoundEntity("venue", id)
	}
	patch.Apply(&v)
	v.UpdatedAt = s.now()
	s.venues[id] = v
	return &v, nil
}

func (s *Store) DeleteVenue(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return httperr.NotFoundEntity("venue", id)
	}
	for _, st := range s.stylists {
		if st.VenueID == id {
			return httperr.Validation("venue_id", "still referenced by stylists")
		}
	}
	for _, c := range s.clients {
		if c.VenueID == id {
			return httperr.Validation("venue_id", "still referenced by clients")
		}
	}
	delete(s.venues, id)
	return nil
}

// ======================================================
// Stylists
// ======================================================

func (s *Store) GetStylist(_ context.Context, id string) (*models.Stylist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stylists[id]
	if !ok {
		return nil, httperr.NotFoundEntity("stylist", id)
	}
	return &st, nil
}

func (s *Store) ListStylists(_ context.Context, venueID string) ([]models.Stylist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Stylist{}
	for _, st := range s.stylists {
		if venueID != "" && st.VenueID != venueID {
			continue
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateStylist(_ context.Context, st *models.Stylist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[st.VenueID]; !ok {
		return httperr.Validation("venue_id", "references a missing row")
	}
	st.CreatedAt = s.stamp(&st.ID)
	st.UpdatedAt = st.CreatedAt
	s.stylists[st.ID] = *st
	return nil
}

func (s *Store) UpdateStylist(_ context.Context, id string, patch stylist.Patch) (*models.Stylist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stylists[id]
	if !ok {
		return nil, httperr.NotFoundEntity("stylist", id)
	}
	patch.Apply(&st)
	if _, ok := s.venues[st.VenueID]; !ok {
		return nil, httperr.Validation("venue_id", "references a missing row")
	}
	st.UpdatedAt = s.now()
	s.stylists[id] = st
	return &st, nil
}

func (s *Store) DeleteStylist(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stylists[id]; !ok {
		return httperr.NotFoundEntity("stylist", id)
	}
	delete(s.stylists, id)
	return nil
}

// ======================================================
// Clients
// ======================================================

func (s *Store) GetClient(_ context.Context, id string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, httperr.NotFoundEntity("client", id)
	}
	out := c.Clone()
	return &out, nil
}

func (s *Store) ListClients(_ context.Context, venueID string) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Client{}
	for _, c := range s.clients {
		if venueID != "" && c.VenueID != venueID {
			continue
		}
		out = append(out, c.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.newer(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) InsertClient(ctx context.Context, in client.NewClient, createdBy string) (string, error) {
	row := in.Row()

	s.mu.Lock()
	v, ok := s.venues[in.VenueID]
	if !ok {
		s.mu.Unlock()
		return "", httperr.Validation("venue_id", "unknown venue")
	}
	row.CompanyID = v.CompanyID
	if createdBy != "" {
		row.CreatedBy = &createdBy
	}
	row.CreatedAt = s.stamp(&row.ID)
	row.UpdatedAt = row.CreatedAt
	s.clients[row.ID] = row.Clone()
	s.mu.Unlock()

	s.announce(ctx, realtime.OpInsert, row.ID)
	return row.ID, nil
}

func (s *Store) UpdateClientGuarded(ctx context.Context, actorID, id string, patch client.Patch) (bool, error) {
	s.mu.Lock()
	c, ok := s.clients[id]
	if !ok {
		s.mu.Unlock()
		return false, httperr.NotFoundEntity("client", id)
	}
	user, ok := s.users[actorID]
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	var perms models.StylistPermissions
	if user.StylistID != nil {
		perms = s.stylists[*user.StylistID].Permissions
	}
	if !client.CanEdit(&user, perms, &c) {
		s.mu.Unlock()
		return false, nil
	}

	patch.Apply(&c)
	c.UpdatedAt = s.now()
	s.clients[id] = c.Clone()
	s.mu.Unlock()

	s.announce(ctx, realtime.OpUpdate, id)
	return true, nil
}

// ======================================================
// Appointments
// ======================================================

func (s *Store) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, httperr.NotFoundEntity("appointment", id)
	}
	return &ap, nil
}

func (s *Store) ListAppointmentsByClient(_ context.Context, clientID string) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if ap.ClientID == clientID {
			out = append(out, ap)
		}
	}
	s.sortByDate(out)
	return out, nil
}

func (s *Store) ListRecentAppointments(_ context.Context, venueIDs []string, limit int) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, 0, len(s.appointments))
	for _, ap := range s.appointments {
		if venueIDs == nil || slices.Contains(venueIDs, ap.VenueID) {
			out = append(out, ap)
		}
	}
	s.sortByDate(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) sortByDate(apps []models.Appointment) {
	sort.SliceStable(apps, func(i, j int) bool {
		return s.newer(apps[i].ID, apps[i].Date, apps[j].ID, apps[j].Date)
	})
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[ap.ClientID]; !ok {
		return httperr.Validation("client_id", "references a missing row")
	}
	if ap.StylistID != "" {
		if _, ok := s.stylists[ap.StylistID]; !ok {
			return httperr.Validation("stylist_id", "references a missing row")
		}
	}
	if ap.Status == "" {
		ap.Status = string(appointment.InitialStatus())
	}
	ap.CreatedAt = s.stamp(&ap.ID)
	ap.UpdatedAt = ap.CreatedAt
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) UpdateAppointment(_ context.Context, id string, patch appointment.Patch) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, httperr.NotFoundEntity("appointment", id)
	}
	patch.Apply(&ap)
	ap.UpdatedAt = s.now()
	s.appointments[id] = ap
	return &ap, nil
}

// --------------------------------------------------
// Child collections
// --------------------------------------------------

func byAppointment[T any](rows []T, key func(T) string, id string) []T {
	out := []T{}
	for _, r := range rows {
		if key(r) == id {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) ListServices(_ context.Context, id string) ([]models.AppointmentService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byAppointment(s.services, func(r models.AppointmentService) string { return r.AppointmentID }, id), nil
}

func (s *Store) ListFormulas(_ context.Context, id string) ([]models.AppointmentFormula, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byAppointment(s.formulas, func(r models.AppointmentFormula) string { return r.AppointmentID }, id), nil
}

func (s *Store) ListTreatments(_ context.Context, id string) ([]models.AppointmentTreatment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byAppointment(s.treatments, func(r models.AppointmentTreatment) string { return r.AppointmentID }, id), nil
}

func (s *Store) ListProducts(_ context.Context, id string) ([]models.AppointmentProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byAppointment(s.products, func(r models.AppointmentProduct) string { return r.AppointmentID }, id), nil
}

func (s *Store) ListPhotos(_ context.Context, id string) ([]models.AppointmentPhoto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return byAppointment(s.photos, func(r models.AppointmentPhoto) string { return r.AppointmentID }, id), nil
}

// checkParent must be called with the write lock held.
func (s *Store) checkParent(ids ...string) error {
	for _, id := range ids {
		if _, ok := s.appointments[id]; !ok {
			return httperr.Validation("appointment_id", "references a missing row")
		}
	}
	return nil
}

func (s *Store) CreateServices(_ context.Context, rows []models.AppointmentService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range rows {
		if err := s.checkParent(rows[i].AppointmentID); err != nil {
			return err
		}
	}
	for i := range rows {
		rows[i].CreatedAt = s.stamp(&rows[i].ID)
		s.services = append(s.services, rows[i])
	}
	return nil
}

func (s *Store) CreateFormulas(_ context.Context, rows []models.AppointmentFormula) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range rows {
		if err := s.checkParent(rows[i].AppointmentID); err != nil {
			return err
		}
	}
	for i := range rows {
		rows[i].CreatedAt = s.stamp(&rows[i].ID)
		s.formulas = append(s.formulas, rows[i])
	}
	return nil
}

func (s *Store) CreateTreatments(_ context.Context, rows []models.AppointmentTreatment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range rows {
		if err := s.checkParent(rows[i].AppointmentID); err != nil {
			return err
		}
	}
	for i := range rows {
		rows[i].CreatedAt = s.stamp(&rows[i].ID)
		s.treatments = append(s.treatments, rows[i])
	}
	return nil
}

func (s *Store) CreateProducts(_ context.Context, rows []models.AppointmentProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range rows {
		if err := s.checkParent(rows[i].AppointmentID); err != nil {
			return err
		}
	}
	for i := range rows {
		rows[i].CreatedAt = s.stamp(&rows[i].ID)
		s.products = append(s.products, rows[i])
	}
	return nil
}

func (s *Store) CreatePhotos(_ context.Context, rows []models.AppointmentPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range rows {
		if err := s.checkParent(rows[i].AppointmentID); err != nil {
			return err
		}
	}
	for i := range rows {
		rows[i].CreatedAt = s.stamp(&rows[i].ID)
		s.photos = append(s.photos, rows[i])
	}
	return nil
}

// ======================================================
// Audit log
// ======================================================

func (s *Store) AppendAudit(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = uint(len(s.auditLogs) + 1)
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}
	s.auditLogs = append(s.auditLogs, *l)
	return nil
}

func (s *Store) ListAudit(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.AuditLog{}
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		l := s.auditLogs[i]
		if f.CompanyID != "" && l.CompanyID != f.CompanyID {
			continue
		}
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && !strings.EqualFold(l.Entity, f.Entity) {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && l.CreatedAt.After(*f.To) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	start := min(f.Offset, len(matched))
	end := len(matched)
	if f.Limit > 0 {
		end = min(start+f.Limit, len(matched))
	}
	return matched[start:end], total, nil
}

// Compile-time checks
var (
	_ account.Repository     = (*Store)(nil)
	_ company.Repository     = (*Store)(nil)
	_ venue.Repository       = (*Store)(nil)
	_ stylist.Repository     = (*Store)(nil)
	_ client.Repository      = (*Store)(nil)
	_ appointment.Repository = (*Store)(nil)
	_ audit.Store            = (*Store)(nil)
)
