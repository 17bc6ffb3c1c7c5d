package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/access"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/company"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/realtime"
	clientuc "github.com/BruksfildServices01/salon-backoffice/internal/usecase/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/viewmodel/clientlist"
	"github.com/BruksfildServices01/salon-backoffice/internal/viewmodel/clientprofile"
)

const streamKeepAlive = 25 * time.Second

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	create    *clientuc.CreateClient
	list      *clientuc.ListVisibleClients
	companies company.Repository
	guard     *access.Guard
	profiles  func() *clientprofile.ViewModel
	feed      realtime.Subscriber
	logger    *zap.Logger
}

// profiles builds a fresh view-model per request.
func NewClientHandler(
	create *clientuc.CreateClient,
	list *clientuc.ListVisibleClients,
	companies company.Repository,
	guard *access.Guard,
	profiles func() *clientprofile.ViewModel,
	feed realtime.Subscriber,
	logger *zap.Logger,
) *ClientHandler {
	return &ClientHandler{
		create:    create,
		list:      list,
		companies: companies,
		guard:     guard,
		profiles:  profiles,
		feed:      feed,
		logger:    logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateClientRequest struct {
	VenueID           string `json:"venue_id"`
	FirstName         string `json:"first_name" binding:"required"`
	LastName          string `json:"last_name" binding:"required"`
	Email             string `json:"email"`
	CountryCode       string `json:"country_code"`
	PhoneNumber       string `json:"phone_number"`
	BirthDate         string `json:"birth_date"`
	PreferredBeverage string `json:"preferred_beverage"`
	Notes             string `json:"notes"`
}

type UpdateClientRequest struct {
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	BirthDate         *string `json:"birth_date"`
	PreferredBeverage *string `json:"preferred_beverage"`
	Notes             *string `json:"notes"`
}

type CreateAppointmentRequest struct {
	StylistID string `json:"stylist_id"`
	VenueID   string `json:"venue_id"`
	Date      string `json:"date"`

	Notes              string `json:"notes"`
	Beverage           string `json:"beverage"`
	ConversationTopics string `json:"conversation_topics"`
	VideoURL           string `json:"video_url"`

	Services   []appointment.ServiceInput   `json:"services"`
	Formulas   []appointment.FormulaInput   `json:"formulas"`
	Treatments []appointment.TreatmentInput `json:"treatments"`
	Products   []appointment.ProductInput   `json:"products"`
	Photos     []appointment.PhotoInput     `json:"photos"`
}

// ======================================================
// LIST + STREAM
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	vm := clientlist.New(h.list, h.logger)
	if err := vm.Load(c.Request.Context(), middleware.Profile(c).AuthID); err != nil {
		httperr.Respond(c, err)
		return
	}

	clients, _ := vm.Clients()
	httpresp.List(c, clients)
}

// Stream is a server-sent event stream of the visible client list, pushed
// again after every client change.
func (h *ClientHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	vm := clientlist.New(h.list, h.logger)
	if err := vm.Load(ctx, middleware.Profile(c).AuthID); err != nil {
		httperr.Respond(c, err)
		return
	}

	// only the latest list matters
	updates := make(chan []models.Client, 1)
	go vm.Watch(ctx, h.feed, func(clients []models.Client) {
		select {
		case <-updates:
		default:
		}
		updates <- clients
	})

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	initial, _ := vm.Clients()
	c.SSEvent("clients", initial)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case clients := <-updates:
			c.SSEvent("clients", clients)
			return true
		case <-time.After(streamKeepAlive):
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}

// ======================================================
// PROFILE
// ======================================================

// load builds a profile view-model for a client visible to the caller.
func (h *ClientHandler) load(c *gin.Context, id string) (*clientprofile.ViewModel, bool) {
	if _, err := h.guard.Client(c.Request.Context(), middleware.Profile(c), id); err != nil {
		httperr.Respond(c, err)
		return nil, false
	}

	vm := h.profiles()
	if err := vm.Load(c.Request.Context(), id); err != nil {
		vm.Close()
		httperr.Respond(c, err)
		return nil, false
	}
	return vm, true
}

func (h *ClientHandler) Get(c *gin.Context) {
	vm, ok := h.load(c, c.Param("id"))
	if !ok {
		return
	}
	defer vm.Close()

	snap, _ := vm.Snapshot()
	httpresp.OK(c, snap)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid client payload.")
		return
	}

	birth, err := parseBirthDate(req.BirthDate)
	if err != nil {
		httperr.Respond(c, httperr.Validation("birth_date", "expected YYYY-MM-DD"))
		return
	}

	profile := middleware.Profile(c)
	if req.VenueID == "" {
		req.VenueID = profile.VenueID
	}
	if req.VenueID != "" {
		if err := h.guard.ClientVenue(c.Request.Context(), profile, "venue_id", req.VenueID); err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	id, err := h.create.Execute(c.Request.Context(), actorFrom(c), client.NewClient{
		VenueID:           req.VenueID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		CountryCode:       req.CountryCode,
		PhoneNumber:       req.PhoneNumber,
		BirthDate:         birth,
		PreferredBeverage: req.PreferredBeverage,
		Notes:             req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	vm, ok := h.load(c, id)
	if !ok {
		return
	}
	defer vm.Close()

	snap, _ := vm.Snapshot()
	httpresp.Created(c, snap)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid client payload.")
		return
	}

	patch := client.Patch{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		PreferredBeverage: req.PreferredBeverage,
		Notes:             req.Notes,
	}
	if req.BirthDate != nil {
		birth, err := parseBirthDate(*req.BirthDate)
		if err != nil || birth == nil {
			httperr.Respond(c, httperr.Validation("birth_date", "expected YYYY-MM-DD"))
			return
		}
		patch.BirthDate = birth
	}

	vm, ok := h.load(c, c.Param("id"))
	if !ok {
		return
	}
	defer vm.Close()

	if err := vm.BeginEdit(); err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := vm.CommitEdit(c.Request.Context(), actorFrom(c), patch); err != nil {
		httperr.Respond(c, err)
		return
	}

	snap, _ := vm.Snapshot()
	httpresp.OK(c, snap)
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (h *ClientHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	vm, ok := h.load(c, c.Param("id"))
	if !ok {
		return
	}
	defer vm.Close()

	ctx := c.Request.Context()
	profile := middleware.Profile(c)
	if req.VenueID != "" {
		if err := h.guard.ClientVenue(ctx, profile, "venue_id", req.VenueID); err != nil {
			httperr.Respond(c, err)
			return
		}
	}
	if req.StylistID != "" {
		if _, err := h.guard.Stylist(ctx, profile, req.StylistID); err != nil {
			httperr.Respond(c, unknownAs(err, "stylist_id", "unknown stylist"))
			return
		}
	}

	snap, _ := vm.Snapshot()
	var co *models.Company
	if found, err := h.companies.GetCompany(c.Request.Context(), snap.Client.CompanyID); err == nil {
		co = found
	}

	date, err := parseAppointmentDate(co, req.Date)
	if err != nil {
		httperr.Respond(c, httperr.Validation("date", "expected RFC 3339 or YYYY-MM-DD HH:MM"))
		return
	}

	report, err := vm.CreateAppointment(c.Request.Context(), actorFrom(c), appointment.NewAppointment{
		StylistID:          req.StylistID,
		VenueID:            req.VenueID,
		Date:               date,
		Notes:              req.Notes,
		Beverage:           req.Beverage,
		ConversationTopics: req.ConversationTopics,
		VideoURL:           req.VideoURL,
		Services:           req.Services,
		Formulas:           req.Formulas,
		Treatments:         req.Treatments,
		Products:           req.Products,
		Photos:             req.Photos,
	})

	var pw *httperr.PartialWriteError
	switch {
	case err == nil:
		snap, _ = vm.Snapshot()
		c.JSON(http.StatusCreated, gin.H{"report": report, "profile": snap})
	case errors.As(err, &pw) && vm.State() == clientprofile.StateReady:
		snap, _ = vm.Snapshot()
		c.JSON(http.StatusMultiStatus, gin.H{
			"error_code":   "partial_write",
			"failed_steps": pw.Failed,
			"report":       report,
			"profile":      snap,
		})
	default:
		httperr.Respond(c, err)
	}
}
