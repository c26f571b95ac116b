package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/dto"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/repository"

	"gorm.io/gorm"
)

type ShippingService interface {
	ResolveFee(ctx context.Context, country, state, city string) (*dto.ShippingCalcResponse, error)
	GetSettings(ctx context.Context) (*dto.ShippingSettings, error)
	ReplaceSettings(ctx context.Context, settings *dto.ShippingSettings) error
}

type shippingServiceImpl struct {
	rateRepo repository.ShippingRateRepository
}

func NewShippingService(rateRepo repository.ShippingRateRepository) ShippingService {
	return &shippingServiceImpl{
		rateRepo: rateRepo,
	}
}

// ResolveFee walks the tiers in order: exact city, state-wide row (empty city
// sentinel), then the flat default. An unknown location is not an error; the
// checkout must never be blocked on shipping config, so the fallback bottoms
// out at zero.
func (s *shippingServiceImpl) ResolveFee(ctx context.Context, country, state, city string) (*dto.ShippingCalcResponse, error) {
	rate, err := s.rateRepo.FindSpecific(ctx, country, state, city)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup city rate: %w", err)
	}
	if rate == nil {
		rate, err = s.rateRepo.FindSpecific(ctx, country, state, "")
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lookup state rate: %w", err)
		}
	}
	if rate != nil {
		return &dto.ShippingCalcResponse{Fee: rate.Price, Tier: string(model.RateSpecific)}, nil
	}

	flat, err := s.rateRepo.FindFlat(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.ShippingCalcResponse{Fee: 0, Tier: string(model.RateFlat)}, nil
		}
		return nil, fmt.Errorf("lookup flat rate: %w", err)
	}

	return &dto.ShippingCalcResponse{Fee: flat.Price, Tier: string(model.RateFlat)}, nil
}

func (s *shippingServiceImpl) GetSettings(ctx context.Context) (*dto.ShippingSettings, error) {
	rates, err := s.rateRepo.ListSpecific(ctx)
	if err != nil {
		return nil, fmt.Errorf("list specific rates: %w", err)
	}

	settings := &dto.ShippingSettings{
		Rates: make([]dto.SpecificRate, len(rates)),
	}
	for i, rate := range rates {
		settings.Rates[i] = dto.SpecificRate{
			Country: rate.Country,
			State:   rate.State,
			City:    rate.City,
			Price:   rate.Price,
		}
	}

	flat, err := s.rateRepo.FindFlat(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup flat rate: %w", err)
	}
	if flat != nil {
		settings.FlatFee = flat.Price
	}

	return settings, nil
}

// ReplaceSettings applies the admin's full desired rate set; the repository
// swaps it transactionally.
func (s *shippingServiceImpl) ReplaceSettings(ctx context.Context, settings *dto.ShippingSettings) error {
	rates := make([]*model.ShippingRate, len(settings.Rates))
	for i, rate := range settings.Rates {
		rates[i] = &model.ShippingRate{
			Country: rate.Country,
			State:   rate.State,
			City:    rate.City,
			Price:   rate.Price,
		}
	}

	if err := s.rateRepo.ReplaceAll(ctx, rates, settings.FlatFee); err != nil {
		return fmt.Errorf("replace shipping rates: %w", err)
	}

	return nil
}
