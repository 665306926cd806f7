package handlers

import (
	"EvidenceKeeper/internal/config"
	"EvidenceKeeper/internal/metrics"
	"EvidenceKeeper/internal/middleware"
	"EvidenceKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — сервисы, которые обслуживает HTTP-слой.
type Services struct {
	Users      *service.UserService
	Cases      *service.CaseService
	Properties *service.PropertyService
	Custody    *service.CustodyService
	Disposals  *service.DisposalService
}

// NewHandler разводящий для хендлеров
func NewHandler(
	svc Services,
	logger *zap.SugaredLogger,
	config *config.Config,
	m *metrics.Metrics,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithMetrics(m))
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(svc.Users, logger, config)
	caseHandler := NewCaseHandler(svc.Cases, logger)
	propertyHandler := NewPropertyHandler(svc.Properties, svc.Custody, svc.Disposals, logger, config)

	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		// User routes
		r.Post("/user/signup", userHandler.Signup)
		r.Post("/user/signin", userHandler.Signin)
		r.Put("/user/update", userHandler.Update)
		r.Get("/user/info", userHandler.Info)
		r.Post("/user/test", userHandler.Status)

		// Case routes
		r.Post("/case/create", caseHandler.Create)
		r.Get("/case/my-cases", caseHandler.MyCases)
		r.Get("/case/specific/{id}", caseHandler.Specific)
		r.Get("/case/search", caseHandler.Search)
		r.Put("/case/update/{id}", caseHandler.Update)
		r.Get("/case/dashboard-stats", caseHandler.DashboardStats)
		r.Get("/case/analytics-stats", caseHandler.AnalyticsStats)

		// Tag scanning and property routes
		r.Get("/case/properties/all", propertyHandler.ListMine)
		r.Post("/case/scan/{qrString}", propertyHandler.Scan)
		r.Put("/case/update-qr/{qrString}", propertyHandler.UpdateByTag)
		r.Post("/case/property/{id}/move", propertyHandler.Move)
		r.Get("/case/property/{id}/custody", propertyHandler.CustodyHistory)
		r.Post("/case/property/{id}/dispose", propertyHandler.Dispose)
		r.Get("/case/property/{id}/tag.png", propertyHandler.TagPNG)
		r.Post("/case/property/{id}/photo", propertyHandler.UploadPhoto)
		r.Get("/case/property/{id}/photo", propertyHandler.Photo)
	})

	return &Handler{Router: r}
}
