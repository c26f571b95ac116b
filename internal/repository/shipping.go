package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShippingRateRepository interface {
	FindSpecific(ctx context.Context, country, state, city string) (*model.ShippingRate, error)
	FindFlat(ctx context.Context) (*model.ShippingRate, error)
	ListSpecific(ctx context.Context) ([]*model.ShippingRate, error)
	ReplaceAll(ctx context.Context, rates []*model.ShippingRate, flatPrice float64) error
}

type shippingRateRepoImpl struct {
	db *gorm.DB
}

func NewShippingRateRepository(db *gorm.DB) ShippingRateRepository {
	return &shippingRateRepoImpl{
		db: db,
	}
}

func (r *shippingRateRepoImpl) FindSpecific(ctx context.Context, country, state, city string) (*model.ShippingRate, error) {
	var rate model.ShippingRate
	err := r.db.WithContext(ctx).
		Where("type = ? AND country = ? AND state = ? AND city = ?",
			model.RateSpecific, norm(country), norm(state), norm(city)).
		First(&rate).Error
	if err != nil {
		return nil, err
	}

	return &rate, nil
}

func (r *shippingRateRepoImpl) FindFlat(ctx context.Context) (*model.ShippingRate, error) {
	var rate model.ShippingRate
	err := r.db.WithContext(ctx).
		Where("type = ?", model.RateFlat).
		First(&rate).Error
	if err != nil {
		return nil, err
	}

	return &rate, nil
}

func (r *shippingRateRepoImpl) ListSpecific(ctx context.Context) ([]*model.ShippingRate, error) {
	var rates []*model.ShippingRate
	err := r.db.WithContext(ctx).
		Where("type = ?", model.RateSpecific).
		Order("country, state, city").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}

	return rates, nil
}

// ReplaceAll swaps the whole specific-rate set and upserts the flat row in one
// transaction: a concurrent fee lookup sees either the old set or the new one,
// never a half-applied mix.
func (r *shippingRateRepoImpl) ReplaceAll(ctx context.Context, rates []*model.ShippingRate, flatPrice float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("type = ?", model.RateSpecific).
			Delete(&model.ShippingRate{}).Error; err != nil {
			return err
		}

		for _, rate := range rates {
			rate.Type = model.RateSpecific
			rate.Country = norm(rate.Country)
			rate.State = norm(rate.State)
			rate.City = norm(rate.City)
		}
		if len(rates) > 0 {
			if err := tx.Create(&rates).Error; err != nil {
				return err
			}
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "country"}, {Name: "state"}, {Name: "city"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"price":      flatPrice,
				"updated_at": time.Now(),
			}),
		}).Create(&model.ShippingRate{
			Type:  model.RateFlat,
			Price: flatPrice,
		}).Error
	})
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
