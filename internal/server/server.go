package server

import (
	"hiper-shop-api/internal/config"
	"hiper-shop-api/internal/handler"
	appmiddleware "hiper-shop-api/internal/middleware"
	"hiper-shop-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
}

func NewServer(checkoutService service.CheckoutService, cfg *config.Config) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	checkoutHandler := handler.NewCheckoutHandler(checkoutService)

	s := &Server{
		echo:            e,
		checkoutHandler: checkoutHandler,
	}

	s.setupRoutes(cfg)
	return s
}

func (s *Server) setupRoutes(cfg *config.Config) {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	authed := api.Group("", appmiddleware.OptionalAuth(cfg.Auth.JWTSecret))
	authed.POST("/checkout", s.checkoutHandler.CreateCheckoutSession)
	authed.GET("/order-status", s.checkoutHandler.GetOrderStatus)
	authed.GET("/orders", s.checkoutHandler.ListOrders)

	// -------- stripe webhooks --------
	api.POST("/webhook/stripe", s.checkoutHandler.StripeWebhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
