package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/client"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/dto"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/errs"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/repository"

	"gorm.io/gorm"
)

const (
	otpTTL          = 10 * time.Minute
	recoveryMaxRows = 10
)

type RecoveryService interface {
	RequestOTP(ctx context.Context, email string) (*dto.RecoveryRequestResponse, error)
	VerifyOTP(ctx context.Context, email, code string) ([]dto.RecoveryOrder, error)
}

type recoveryServiceImpl struct {
	orderRepo repository.OrderRepository
	otpRepo   repository.OTPRepository
	notifier  *notifier
	logger    *slog.Logger
}

func NewRecoveryService(
	orderRepo repository.OrderRepository,
	otpRepo repository.OTPRepository,
	mailer client.Mailer,
	logger *slog.Logger,
) RecoveryService {
	return &recoveryServiceImpl{
		orderRepo: orderRepo,
		otpRepo:   otpRepo,
		notifier:  &notifier{mailer: mailer, logger: logger},
		logger:    logger,
	}
}

// RequestOTP issues a fresh 6-digit code for an email that has at least one
// order, replacing any prior live code. The response only carries the order
// count; orders themselves come out through VerifyOTP.
func (s *recoveryServiceImpl) RequestOTP(ctx context.Context, email string) (*dto.RecoveryRequestResponse, error) {
	email = normalizeEmail(email)

	// opportunistic sweep instead of a background worker
	if err := s.otpRepo.DeleteExpired(ctx, time.Now()); err != nil {
		s.logger.Warn("sweep expired otp codes", "error", err)
	}

	count, err := s.orderRepo.CountByCustomerEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("count orders for email: %w", err)
	}
	if count == 0 {
		return nil, errs.NotFound("no orders found for this email")
	}

	code, err := newOTPCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp code: %w", err)
	}

	if err := s.otpRepo.Replace(ctx, &model.RecoveryOTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}); err != nil {
		return nil, fmt.Errorf("store otp code: %w", err)
	}

	s.notifier.send(client.MailOTPCode, email, map[string]string{"code": code})

	return &dto.RecoveryRequestResponse{OrderCount: int(count)}, nil
}

// VerifyOTP burns the code on first successful use. A wrong guess leaves the
// code in place so the customer can retry until expiry.
func (s *recoveryServiceImpl) VerifyOTP(ctx context.Context, email, code string) ([]dto.RecoveryOrder, error) {
	email = normalizeEmail(email)

	otp, err := s.otpRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Validation("code expired or never requested")
		}
		return nil, fmt.Errorf("load otp code: %w", err)
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
			s.logger.Warn("delete expired otp code", "error", err)
		}
		return nil, errs.Validation("code expired")
	}

	if otp.Code != code {
		return nil, errs.Validation("invalid code")
	}

	// single use
	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("delete used otp code: %w", err)
	}

	orders, err := s.orderRepo.FindRecentByCustomerEmail(ctx, email, recoveryMaxRows)
	if err != nil {
		return nil, fmt.Errorf("load orders for email: %w", err)
	}

	result := make([]dto.RecoveryOrder, len(orders))
	for i, order := range orders {
		result[i] = dto.RecoveryOrder{
			OrderNumber: order.OrderNumber,
			CreatedAt:   order.CreatedAt,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			ItemCount:   len(order.Items),
		}
	}

	return result, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
