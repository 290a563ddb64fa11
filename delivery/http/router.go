package http

import (
	"net/http"

	"rental-service/pkg/api"
	"rental-service/pkg/jwt"
	"rental-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router wires handlers onto the HTTP mux.
type Router struct {
	VendorHandler   *VendorHandler
	CityHandler     *CityHandler
	VehicleHandler  *VehicleHandler
	BookingHandler  *BookingHandler
	ActivityHandler *ActivityHandler
	HealthHandler   *HealthHandler
	JWTClient       *jwt.Client
	AppLogger       logger.LoggerInterface
}

// NewRouter creates a new Router with all handlers.
func NewRouter(
	vendorHandler *VendorHandler,
	cityHandler *CityHandler,
	vehicleHandler *VehicleHandler,
	bookingHandler *BookingHandler,
	activityHandler *ActivityHandler,
	healthHandler *HealthHandler,
	jwtClient *jwt.Client,
	appLogger logger.LoggerInterface,
) *Router {
	return &Router{
		VendorHandler:   vendorHandler,
		CityHandler:     cityHandler,
		VehicleHandler:  vehicleHandler,
		BookingHandler:  bookingHandler,
		ActivityHandler: activityHandler,
		HealthHandler:   healthHandler,
		JWTClient:       jwtClient,
		AppLogger:       appLogger,
	}
}

// SetupRoutes builds the full route tree: public catalog reads, an
// admin-only group for provisioning and import, and a vendor group for
// own-resource management.
func (r *Router) SetupRoutes() http.Handler {
	router := chi.NewRouter()
	apiClient := api.New()

	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.Heartbeat("/ping"))
	router.Use(LoggingMiddleware(r.AppLogger))

	router.Get("/health", r.HealthHandler.HealthCheckHandler)

	router.Route("/api/v1", func(v1 chi.Router) {
		// Public catalog
		v1.Get("/cities", r.CityHandler.ListHandler)
		v1.Get("/cities/{id}", r.CityHandler.GetByIDHandler)
		v1.Get("/vehicles", r.VehicleHandler.ListHandler)
		v1.Get("/vehicles/{id}", r.VehicleHandler.GetByIDHandler)
		v1.Get("/vendors/slug/{slug}", r.VendorHandler.GetBySlugHandler)
		v1.Post("/bookings", r.BookingHandler.CreateHandler)

		// Admin: vendor lifecycle, provisioning, import, audit trail
		v1.Group(func(admin chi.Router) {
			admin.Use(JWTMiddleware(r.JWTClient, r.AppLogger, apiClient))
			admin.Use(AdminMiddleware(r.AppLogger, apiClient))

			admin.Route("/vendors", func(vendors chi.Router) {
				vendors.Post("/", r.VendorHandler.CreateHandler)
				vendors.Get("/", r.VendorHandler.ListHandler)
				vendors.Post("/import", r.VendorHandler.ImportHandler)
				vendors.Get("/{id}", r.VendorHandler.GetByIDHandler)
				vendors.Put("/{id}", r.VendorHandler.UpdateHandler)
				vendors.Patch("/{id}/status", r.VendorHandler.UpdateStatusHandler)
				vendors.Delete("/{id}", r.VendorHandler.DeleteHandler)
				vendors.Post("/{id}/account", r.VendorHandler.CreateAccountHandler)
				vendors.Post("/{id}/reset-password", r.VendorHandler.ResetPasswordHandler)
				vendors.Get("/{vendorID}/bookings", r.BookingHandler.ListByVendorHandler)
			})

			admin.Post("/cities", r.CityHandler.CreateHandler)
			admin.Get("/activities", r.ActivityHandler.ListHandler)
		})

		// Vendor and admin: fleet and booking management
		v1.Group(func(manage chi.Router) {
			manage.Use(JWTMiddleware(r.JWTClient, r.AppLogger, apiClient))
			manage.Use(VendorMiddleware(r.AppLogger, apiClient))

			manage.Post("/vehicles", r.VehicleHandler.CreateHandler)
			manage.Put("/vehicles/{id}", r.VehicleHandler.UpdateHandler)
			manage.Delete("/vehicles/{id}", r.VehicleHandler.DeleteHandler)

			manage.Get("/bookings", r.BookingHandler.ListByVendorHandler)
			manage.Get("/bookings/{id}", r.BookingHandler.GetByIDHandler)
			manage.Patch("/bookings/{id}/status", r.BookingHandler.UpdateStatusHandler)
		})
	})

	return router
}
