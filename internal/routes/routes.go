package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/access"
	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/config"
	"github.com/BruksfildServices01/salon-backoffice/internal/handlers"
	"github.com/BruksfildServices01/salon-backoffice/internal/infra"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	"github.com/BruksfildServices01/salon-backoffice/internal/realtime"
	ucAppointment "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
	ucClient "github.com/BruksfildServices01/salon-backoffice/internal/usecase/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/viewmodel/clientprofile"
)

type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Gateway infra.Gateway
	Audit   *audit.Dispatcher
	// Feed is optional; without it the client stream only sends the
	// initial list and keep-alives.
	Feed realtime.Subscriber
	// Photos is optional; without it photo uploads are rejected.
	Photos ucAppointment.ObjectStore
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RecoveryMiddleware(d.Logger))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gw := d.Gateway

	// ======================================================
	// USE CASES / APPOINTMENTS
	// ======================================================
	aggregator := ucAppointment.NewAggregator(
		gw.Appointments,
		gw.Stylists,
		d.Logger,
		d.Config.HistoryFanoutLimit,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		gw.Appointments,
		d.Audit,
		d.Logger,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		gw.Appointments,
		aggregator,
		d.Audit,
	)

	uploadPhotoUC := ucAppointment.NewUploadPhoto(
		gw.Appointments,
		d.Photos,
		d.Config.PhotoMaxWidth,
		d.Audit,
	)

	recentClientsUC := ucAppointment.NewListRecentClients(
		gw.Appointments,
		gw.Clients,
		aggregator,
		d.Logger,
	)

	// ======================================================
	// USE CASES / CLIENTS
	// ======================================================
	createClientUC := ucClient.NewCreateClient(gw.Clients, d.Audit)
	updateClientUC := ucClient.NewUpdateClient(gw.Clients, d.Audit)
	listClientsUC := ucClient.NewListVisibleClients(gw.Accounts, gw.Clients)

	newProfile := func() *clientprofile.ViewModel {
		return clientprofile.New(clientprofile.Deps{
			Clients:      gw.Clients,
			Appointments: gw.Appointments,
			Aggregator:   aggregator,
			Create:       createAppointmentUC,
			Update:       updateClientUC,
			Logger:       d.Logger,
		})
	}

	// ======================================================
	// ACCESS
	// ======================================================
	guard := access.NewGuard(
		gw.Companies,
		gw.Venues,
		gw.Stylists,
		gw.Clients,
		gw.Appointments,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler()
	companyHandler := handlers.NewCompanyHandler(gw.Companies, guard)
	venueHandler := handlers.NewVenueHandler(gw.Venues, guard)
	stylistHandler := handlers.NewStylistHandler(gw.Stylists, guard)

	clientHandler := handlers.NewClientHandler(
		createClientUC,
		listClientsUC,
		gw.Companies,
		guard,
		newProfile,
		d.Feed,
		d.Logger,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		aggregator,
		updateAppointmentUC,
		uploadPhotoUC,
		guard,
	)

	dashboardHandler := handlers.NewDashboardHandler(recentClientsUC, guard)
	auditLogsHandler := handlers.NewAuditLogsHandler(gw.Audit)

	// ======================================================
	// API (authenticated)
	// ======================================================
	api := r.Group("/api")
	api.Use(
		middleware.AuthMiddleware(d.Config),
		middleware.ProfileMiddleware(gw.Accounts),
	)

	api.GET("/me", meHandler.GetMe)

	api.GET("/companies", companyHandler.List)
	api.POST("/companies", companyHandler.Create)
	api.GET("/companies/:id", companyHandler.Get)
	api.PATCH("/companies/:id", companyHandler.Update)

	api.GET("/venues", venueHandler.List)
	api.POST("/venues", venueHandler.Create)
	api.GET("/venues/:id", venueHandler.Get)
	api.PATCH("/venues/:id", venueHandler.Update)
	api.DELETE("/venues/:id", venueHandler.Delete)

	api.GET("/stylists", stylistHandler.List)
	api.POST("/stylists", stylistHandler.Create)
	api.GET("/stylists/:id", stylistHandler.Get)
	api.PATCH("/stylists/:id", stylistHandler.Update)
	api.DELETE("/stylists/:id", stylistHandler.Delete)

	api.GET("/clients", clientHandler.List)
	api.POST("/clients", clientHandler.Create)
	api.GET("/clients/stream", clientHandler.Stream)
	api.GET("/clients/:id", clientHandler.Get)
	api.PATCH("/clients/:id", clientHandler.Update)
	api.POST("/clients/:id/appointments", clientHandler.CreateAppointment)

	api.GET("/appointments/:id", appointmentHandler.Get)
	api.PATCH("/appointments/:id", appointmentHandler.Update)
	api.POST("/appointments/:id/photos", appointmentHandler.UploadPhoto)

	api.GET("/dashboard/recent-clients", dashboardHandler.RecentClients)
	api.GET("/audit-logs", auditLogsHandler.List)
}
