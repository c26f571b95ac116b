package handler

import (
	"net/http"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/dto"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	paymentService  service.PaymentService
}

func NewCheckoutHandler(checkoutService service.CheckoutService, paymentService service.PaymentService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		paymentService:  paymentService,
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.Checkout(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	reference := c.QueryParam("reference")
	if reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing reference")
	}

	result, err := h.paymentService.VerifyPayment(ctx, reference)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
