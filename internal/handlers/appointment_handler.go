package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-backoffice/internal/access"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	"github.com/BruksfildServices01/salon-backoffice/internal/storage"
	usecase "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	aggregator *usecase.Aggregator
	update     *usecase.UpdateAppointment
	upload     *usecase.UploadPhoto
	guard      *access.Guard
}

func NewAppointmentHandler(
	aggregator *usecase.Aggregator,
	update *usecase.UpdateAppointment,
	upload *usecase.UploadPhoto,
	guard *access.Guard,
) *AppointmentHandler {
	return &AppointmentHandler{
		aggregator: aggregator,
		update:     update,
		upload:     upload,
		guard:      guard,
	}
}

// visible answers 404 for appointments whose client the caller cannot see.
func (h *AppointmentHandler) visible(c *gin.Context) bool {
	if _, err := h.guard.Appointment(c.Request.Context(), middleware.Profile(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return false
	}
	return true
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	if !h.visible(c) {
		return
	}

	agg, err := h.aggregator.Aggregate(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, agg)
}

// Update changes status or notes fields; status follows the appointment
// lifecycle.
func (h *AppointmentHandler) Update(c *gin.Context) {
	var patch domain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	if !h.visible(c) {
		return
	}

	agg, err := h.update.Execute(c.Request.Context(), actorFrom(c), c.Param("id"), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, agg)
}

// UploadPhoto takes a multipart form with a "photo" file and a
// "photo_type" of before or after.
func (h *AppointmentHandler) UploadPhoto(c *gin.Context) {
	if !h.visible(c) {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+1<<20)

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "photo_required", "Photo file is required.")
		return
	}
	defer file.Close()

	photo, err := h.upload.Execute(
		c.Request.Context(),
		actorFrom(c),
		c.Param("id"),
		c.PostForm("photo_type"),
		file,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, photo)
}
