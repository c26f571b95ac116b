package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/errs"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/handler"
	adminmw "github.com/Kariaki58/Ciwaviv-sub000/internal/middleware"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	shippingHandler *handler.ShippingHandler
	recoveryHandler *handler.RecoveryHandler
	adminAPIKey     string
}

func NewServer(
	logger *slog.Logger,
	adminAPIKey string,
	checkoutService service.CheckoutService,
	paymentService service.PaymentService,
	orderService service.OrderService,
	shippingService service.ShippingService,
	recoveryService service.RecoveryService,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	s := &Server{
		echo:            e,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService, paymentService),
		orderHandler:    handler.NewOrderHandler(orderService),
		shippingHandler: handler.NewShippingHandler(shippingService),
		recoveryHandler: handler.NewRecoveryHandler(recoveryService),
		adminAPIKey:     adminAPIKey,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	api.POST("/checkout", s.checkoutHandler.Checkout)
	api.GET("/checkout/verify", s.checkoutHandler.VerifyPayment)
	api.POST("/shipping/calculate", s.shippingHandler.Calculate)
	api.POST("/recovery/request", s.recoveryHandler.RequestOTP)
	api.POST("/recovery/verify", s.recoveryHandler.VerifyOTP)

	// -------- back office --------
	admin := api.Group("/admin", adminmw.AdminAuth(s.adminAPIKey))
	admin.GET("/orders", s.orderHandler.ListOrders)
	admin.GET("/orders/:id", s.orderHandler.GetOrder)
	admin.PATCH("/orders/:id", s.orderHandler.UpdateOrder)
	admin.GET("/shipping", s.shippingHandler.GetSettings)
	admin.PUT("/shipping", s.shippingHandler.ReplaceSettings)
}

// errorHandler maps the domain error taxonomy onto HTTP responses; anything
// unclassified is a 500 with the detail kept out of the body.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if appErr, ok := errs.As(err); ok {
			body := map[string]interface{}{"error": appErr.Message}
			if len(appErr.Fields) > 0 {
				body["fields"] = appErr.Fields
			}
			if jsonErr := c.JSON(appErr.HTTPCode(), body); jsonErr != nil {
				logger.Error("write error response", "error", jsonErr)
			}
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if jsonErr := c.JSON(httpErr.Code, map[string]interface{}{"error": httpErr.Message}); jsonErr != nil {
				logger.Error("write error response", "error", jsonErr)
			}
			return
		}

		logger.Error("unhandled error", "path", c.Path(), "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
