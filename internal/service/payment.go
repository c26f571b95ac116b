package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/client"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/dto"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/errs"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/repository"

	"gorm.io/gorm"
)

type PaymentService interface {
	VerifyPayment(ctx context.Context, reference string) (*dto.OrderSummary, error)
}

type paymentServiceImpl struct {
	db          *gorm.DB
	gateway     client.PaystackClient
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	notifier    *notifier
	adminEmail  string
	logger      *slog.Logger
}

func NewPaymentService(
	db *gorm.DB,
	gateway client.PaystackClient,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	mailer client.Mailer,
	adminEmail string,
	logger *slog.Logger,
) PaymentService {
	return &paymentServiceImpl{
		db:          db,
		gateway:     gateway,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    &notifier{mailer: mailer, logger: logger},
		adminEmail:  adminEmail,
		logger:      logger,
	}
}

// VerifyPayment settles the payment axis for a gateway reference. It is safe
// to call any number of times for the same reference: the paid transition is a
// conditional update and inventory is only applied on the invocation that wins
// it. A redirect callback and a webhook retry racing each other end up with
// exactly one decrement.
func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, reference string) (*dto.OrderSummary, error) {
	verifyResp, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, errs.Gateway("payment verification failed", err)
	}

	order, err := s.orderRepo.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound(fmt.Sprintf("no order for reference %s", reference))
		}
		return nil, fmt.Errorf("load order by reference: %w", err)
	}

	if !verifyResp.Success {
		if err := s.orderRepo.MarkPaymentFailed(ctx, order.ID); err != nil {
			return nil, fmt.Errorf("mark payment failed: %w", err)
		}
		s.logger.Info("payment verification reported failure",
			"order_number", order.OrderNumber, "detail", verifyResp.StatusDetail)
		return s.summarize(ctx, order.ID)
	}

	applied := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		applied, err = s.orderRepo.MarkPaid(ctx, tx, order.ID)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if !applied {
			// already resolved by an earlier verification
			return nil
		}

		notes := order.Notes
		for _, item := range order.Items {
			err := s.productRepo.SellStock(ctx, tx, item.ProductID, item.Quantity)
			if errors.Is(err, repository.ErrInsufficientStock) {
				// oversold between checkout and now; keep the payment on
				// record and flag the order instead of failing the customer
				s.logger.Warn("oversell detected at payment verification",
					"order_number", order.OrderNumber, "product_id", item.ProductID,
					"quantity", item.Quantity)
				flag := fmt.Sprintf("RECONCILE: could not decrement %d x %s (oversold)",
					item.Quantity, item.ProductID)
				if notes != "" {
					flag = notes + " | " + flag
				}
				notes = flag
				continue
			}
			if err != nil {
				return fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
			}
		}

		if notes != order.Notes {
			if err := s.orderRepo.UpdateFields(ctx, tx, order.ID, map[string]interface{}{
				"notes": notes,
			}); err != nil {
				return fmt.Errorf("flag order for reconciliation: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if applied {
		s.notifier.send(client.MailPaymentConfirmed, order.Customer.Email, map[string]string{
			"firstName":   order.Customer.FirstName,
			"orderNumber": order.OrderNumber,
			"total":       fmt.Sprintf("%.2f", order.TotalAmount),
		})
		s.notifier.send(client.MailOrderPlaced, s.adminEmail, map[string]string{
			"orderNumber": order.OrderNumber,
			"customer":    order.Customer.FirstName + " " + order.Customer.LastName,
			"total":       fmt.Sprintf("%.2f", order.TotalAmount),
		})
	}

	return s.summarize(ctx, order.ID)
}

func (s *paymentServiceImpl) summarize(ctx context.Context, orderID uint) (*dto.OrderSummary, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}

	return &dto.OrderSummary{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalAmount:   order.TotalAmount,
		Customer: dto.CheckoutCustomer{
			Email:     order.Customer.Email,
			FirstName: order.Customer.FirstName,
			LastName:  order.Customer.LastName,
			Phone:     order.Customer.Phone,
		},
	}, nil
}
