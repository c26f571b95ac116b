package repository

import (
	"context"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	Delete(ctx context.Context, orderID uint) error
	FindByID(ctx context.Context, orderID uint) (*model.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	FindByReference(ctx context.Context, reference string) (*model.Order, error)
	SetReference(ctx context.Context, orderID uint, reference string) error
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID uint) (bool, error)
	MarkPaymentFailed(ctx context.Context, orderID uint) error
	UpdateFields(ctx context.Context, tx *gorm.DB, orderID uint, fields map[string]interface{}) error
	List(ctx context.Context, limit, offset int) ([]*model.Order, error)
	CountByCustomerEmail(ctx context.Context, email string) (int64, error)
	FindRecentByCustomerEmail(ctx context.Context, email string, limit int) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) Delete(ctx context.Context, orderID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Order{}, orderID).Error
	})
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, orderID).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByReference(ctx context.Context, reference string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("paystack_reference = ?", reference).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) SetReference(ctx context.Context, orderID uint, reference string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"paystack_reference": reference,
			"updated_at":         time.Now(),
		}).Error
}

// MarkPaid flips the payment axis pending → paid and resets fulfillment to
// pending in one conditional update. Returns false when no row changed, which
// means the reference was already resolved; the caller must treat that as a
// no-op so inventory is never applied twice.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID uint) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND payment_status = ?", orderID, model.PaymentPending).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentPaid,
			"status":         model.StatusPending,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *orderRepoImpl) MarkPaymentFailed(ctx context.Context, orderID uint) error {
	// conditional on pending so a late failure report cannot downgrade a paid order
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND payment_status = ?", orderID, model.PaymentPending).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentFailed,
			"updated_at":     time.Now(),
		}).Error
}

func (r *orderRepoImpl) UpdateFields(ctx context.Context, tx *gorm.DB, orderID uint, fields map[string]interface{}) error {
	if tx == nil {
		tx = r.db
	}
	fields["updated_at"] = time.Now()

	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *orderRepoImpl) List(ctx context.Context, limit, offset int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) CountByCustomerEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("customer_email = ?", email).
		Count(&count).Error

	return count, err
}

func (r *orderRepoImpl) FindRecentByCustomerEmail(ctx context.Context, email string, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}
