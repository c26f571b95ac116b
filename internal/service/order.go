package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/client"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/dto"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/errs"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	UpdateOrder(ctx context.Context, orderID uint, req *dto.OrderUpdateRequest) (*model.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*model.Order, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	notifier  *notifier
	logger    *slog.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	mailer client.Mailer,
	logger *slog.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
		notifier:  &notifier{mailer: mailer, logger: logger},
		logger:    logger,
	}
}

// UpdateOrder applies an admin's partial update. Any status may be set from
// any status; the gate is field completeness for the target, checked against
// the order as it will look after this update. Empty fields in the payload
// mean "leave alone", so there is no way to clear a field here.
func (s *orderServiceImpl) UpdateOrder(ctx context.Context, orderID uint, req *dto.OrderUpdateRequest) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound(fmt.Sprintf("order %d not found", orderID))
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	fields := map[string]interface{}{}
	if req.TrackingNumber != "" {
		fields["tracking_number"] = req.TrackingNumber
		order.TrackingNumber = req.TrackingNumber
	}
	if req.ShippingProvider != "" {
		fields["shipping_provider"] = req.ShippingProvider
		order.ShippingProvider = req.ShippingProvider
	}
	if req.Notes != "" {
		fields["notes"] = req.Notes
		order.Notes = req.Notes
	}
	if req.EstimatedDelivery != nil {
		fields["estimated_delivery"] = *req.EstimatedDelivery
		order.EstimatedDelivery = req.EstimatedDelivery
	}

	prevStatus := order.Status
	target := model.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if req.Status != "" {
		if !model.ValidOrderStatus(target) {
			return nil, errs.Validation(fmt.Sprintf("unknown status %q", req.Status))
		}
		if missing := model.MissingFieldsForStatus(target, order); len(missing) > 0 {
			return nil, errs.Validation(
				fmt.Sprintf("missing required fields for status %s: %s",
					target, strings.Join(missing, ", ")),
				missing...)
		}
		fields["status"] = target
		order.Status = target
	}

	if len(fields) == 0 {
		return order, nil
	}

	if err := s.orderRepo.UpdateFields(ctx, nil, orderID, fields); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if req.Status != "" && target != prevStatus {
		switch target {
		case model.StatusConfirmed:
			s.notifier.send(client.MailPaymentConfirmed, order.Customer.Email, map[string]string{
				"firstName":   order.Customer.FirstName,
				"orderNumber": order.OrderNumber,
				"total":       fmt.Sprintf("%.2f", order.TotalAmount),
			})
		case model.StatusDelivered:
			s.notifier.send(client.MailOrderDelivered, order.Customer.Email, map[string]string{
				"firstName":        order.Customer.FirstName,
				"orderNumber":      order.OrderNumber,
				"shippingProvider": order.ShippingProvider,
				"notes":            order.Notes,
			})
		}
	}

	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound(fmt.Sprintf("order %d not found", orderID))
		}
		return nil, err
	}

	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, limit, offset int) ([]*model.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.orderRepo.List(ctx, limit, offset)
}
