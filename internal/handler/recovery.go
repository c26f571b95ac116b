package handler

import (
	"net/http"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/dto"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/service"

	"github.com/labstack/echo/v4"
)

type RecoveryHandler struct {
	recoveryService service.RecoveryService
}

func NewRecoveryHandler(recoveryService service.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{
		recoveryService: recoveryService,
	}
}

func (h *RecoveryHandler) RequestOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecoveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.recoveryService.RequestOTP(ctx, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *RecoveryHandler) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecoveryVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	orders, err := h.recoveryService.VerifyOTP(ctx, req.Email, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}
