package server

import (
	"context"
	"net/http"

	"digital-storefront/internal/config"
	"digital-storefront/internal/handler"
	"digital-storefront/internal/middleware"
	"digital-storefront/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const webhookBodyLimit = "1M"

type Services struct {
	Checkout service.CheckoutService
	Webhook  service.WebhookService
	Download service.DownloadService
	Catalog  service.CatalogService
	Admin    service.AdminService
}

type Server struct {
	echo            *echo.Echo
	adminCfg        *config.Admin
	checkoutHandler *handler.CheckoutHandler
	webhookHandler  *handler.WebhookHandler
	downloadHandler *handler.DownloadHandler
	catalogHandler  *handler.CatalogHandler
	adminHandler    *handler.AdminHandler
}

func NewServer(cfg *config.Config, services Services, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// product images and other public assets
	e.Static("/", cfg.Storage.PublicDir)

	s := &Server{
		echo:            e,
		adminCfg:        &cfg.Admin,
		checkoutHandler: handler.NewCheckoutHandler(services.Checkout),
		webhookHandler:  handler.NewWebhookHandler(services.Webhook),
		downloadHandler: handler.NewDownloadHandler(services.Download),
		catalogHandler:  handler.NewCatalogHandler(services.Catalog),
		adminHandler:    handler.NewAdminHandler(services.Admin),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- catalog --------
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/popular", s.catalogHandler.MostPopular)
	api.GET("/products/newest", s.catalogHandler.Newest)
	api.GET("/products/:id", s.catalogHandler.GetProduct)
	api.GET("/orders/exists", s.checkoutHandler.OrderExists)

	// -------- checkout / downloads --------
	s.echo.GET("/products/:id/purchase", s.checkoutHandler.Purchase)
	s.echo.GET("/stripe/purchase-success", s.checkoutHandler.PurchaseSuccess)
	s.echo.GET(handler.ExpiredDownloadPath, s.downloadHandler.Expired)
	s.echo.GET("/products/download/:downloadVerificationId", s.downloadHandler.Download)

	// -------- stripe webhooks --------
	s.echo.POST("/webhooks/stripe", s.webhookHandler.StripeWebhook, echomw.BodyLimit(webhookBodyLimit))

	// -------- admin --------
	admin := s.echo.Group("/admin", middleware.AdminAuth(s.adminCfg))
	admin.GET("/dashboard", s.adminHandler.Dashboard)

	admin.GET("/products", s.adminHandler.ListProducts)
	admin.POST("/products", s.adminHandler.CreateProduct)
	admin.PUT("/products/:id", s.adminHandler.UpdateProduct)
	admin.PATCH("/products/:id/availability", s.adminHandler.SetProductAvailability)
	admin.DELETE("/products/:id", s.adminHandler.DeleteProduct)

	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.DELETE("/orders/:id", s.adminHandler.DeleteOrder)

	admin.GET("/users", s.adminHandler.ListUsers)
	admin.DELETE("/users/:id", s.adminHandler.DeleteUser)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
