package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/client"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/dto"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/errs"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// totalTolerance absorbs client-side float rounding when comparing the
// submitted total against the server-derived one.
const totalTolerance = 0.01

type CheckoutService interface {
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutServiceImpl struct {
	db          *gorm.DB
	gateway     client.PaystackClient
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	shipping    ShippingService
	callbackURL string
	logger      *slog.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	gateway client.PaystackClient,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	shipping ShippingService,
	callbackURL string,
	logger *slog.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:          db,
		gateway:     gateway,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		shipping:    shipping,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	// Re-fetch every product: prices come from the store, never the client,
	// and the stock check here is advisory only. Nothing is reserved; the
	// guarded decrement at verification is what keeps inventory non-negative.
	subtotal := 0.0
	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound(fmt.Sprintf("product %s not found", item.ProductID))
			}
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}
		if product.Inventory < item.Quantity {
			return nil, errs.Validation(fmt.Sprintf(
				"insufficient stock for %s: %d available", product.Name, product.Inventory))
		}

		lineSubtotal := product.Price * float64(item.Quantity)
		subtotal += lineSubtotal
		items[i] = model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Subtotal:  lineSubtotal,
		}
	}

	fee, err := s.shipping.ResolveFee(ctx,
		req.ShippingAddress.Country, req.ShippingAddress.State, req.ShippingAddress.City)
	if err != nil {
		return nil, fmt.Errorf("resolve shipping fee: %w", err)
	}

	total := subtotal + fee.Fee + req.TaxAmount
	if math.Abs(total-req.TotalAmount) > totalTolerance {
		return nil, errs.Validation(fmt.Sprintf(
			"total amount mismatch: submitted %.2f, expected %.2f", req.TotalAmount, total))
	}

	orderNumber := newOrderNumber()
	order := &model.Order{
		OrderNumber: orderNumber,
		// the order number doubles as the requested gateway reference; seeding
		// it here keeps the unique reference column populated from the first
		// insert, and the gateway's echo overwrites it after initialization
		PaystackReference: orderNumber,
		Customer: model.Customer{
			Email:     strings.ToLower(strings.TrimSpace(req.Customer.Email)),
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Phone:     req.Customer.Phone,
		},
		ShippingAddress: model.ShippingAddress{
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			Country: req.ShippingAddress.Country,
			ZipCode: req.ShippingAddress.ZipCode,
		},
		Items:         items,
		Subtotal:      subtotal,
		ShippingFee:   fee.Fee,
		TaxAmount:     req.TaxAmount,
		TotalAmount:   total,
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentPending,
		PaymentMethod: req.PaymentMethod,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	initResp, err := s.gateway.InitializeTransaction(ctx, &client.InitializeRequest{
		Email:       order.Customer.Email,
		AmountKobo:  toKobo(total),
		Reference:   order.OrderNumber,
		CallbackURL: s.callbackURL,
		Metadata: map[string]any{
			"order_number": order.OrderNumber,
		},
	})
	if err != nil {
		// compensate: a pending order with no gateway transaction is garbage
		if delErr := s.orderRepo.Delete(ctx, order.ID); delErr != nil {
			s.logger.Error("delete order after gateway failure",
				"order_number", order.OrderNumber, "error", delErr)
		}
		return nil, errs.Gateway("payment initialization failed", err)
	}

	if err := s.orderRepo.SetReference(ctx, order.ID, initResp.Reference); err != nil {
		return nil, fmt.Errorf("store payment reference: %w", err)
	}

	return &dto.CheckoutResponse{
		OrderNumber:      order.OrderNumber,
		AuthorizationURL: initResp.AuthorizationURL,
		AccessCode:       initResp.AccessCode,
		Reference:        initResp.Reference,
	}, nil
}

// validateCheckoutRequest fails fast on the first violated precondition, in
// the order customers see the form: contact, address, cart.
func validateCheckoutRequest(req *dto.CheckoutRequest) error {
	c := req.Customer
	if c.Email == "" || c.FirstName == "" || c.LastName == "" || c.Phone == "" {
		return errs.Validation("customer info incomplete")
	}

	a := req.ShippingAddress
	if a.Street == "" || a.City == "" || a.State == "" || a.Country == "" {
		return errs.Validation("shipping address incomplete")
	}

	if len(req.Items) == 0 {
		return errs.Validation("empty cart")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return errs.Validation(fmt.Sprintf("invalid quantity for product %s", item.ProductID))
		}
	}

	return nil
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102150405"), suffix)
}

func toKobo(naira float64) int64 {
	return int64(math.Round(naira * 100))
}
