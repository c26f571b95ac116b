package handler

import (
	"net/http"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/dto"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/service"

	"github.com/labstack/echo/v4"
)

type ShippingHandler struct {
	shippingService service.ShippingService
}

func NewShippingHandler(shippingService service.ShippingService) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

func (h *ShippingHandler) Calculate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ShippingCalcRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.shippingService.ResolveFee(ctx, req.Country, req.State, req.City)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *ShippingHandler) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()

	settings, err := h.shippingService.GetSettings(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, settings)
}

func (h *ShippingHandler) ReplaceSettings(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ShippingSettings
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.shippingService.ReplaceSettings(ctx, &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
