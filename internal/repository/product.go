package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"

	"gorm.io/gorm"
)

// ErrInsufficientStock is returned by SellStock when the conditional decrement
// matches no row, i.e. the product would have gone negative.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepository interface {
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	SellStock(ctx context.Context, tx *gorm.DB, productID string, quantity int) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

// SellStock moves quantity units from inventory to sold in a single guarded
// update, so concurrent verifications cannot drive inventory negative.
func (r *productRepoImpl) SellStock(ctx context.Context, tx *gorm.DB, productID string, quantity int) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND inventory >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"inventory":  gorm.Expr("inventory - ?", quantity),
			"sold":       gorm.Expr("sold + ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}

	return nil
}
