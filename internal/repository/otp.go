package repository

import (
	"context"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OTPRepository interface {
	Replace(ctx context.Context, otp *model.RecoveryOTP) error
	FindByEmail(ctx context.Context, email string) (*model.RecoveryOTP, error)
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

type otpRepoImpl struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepoImpl{
		db: db,
	}
}

// Replace upserts on email, so issuing a new code invalidates the prior one.
func (r *otpRepoImpl) Replace(ctx context.Context, otp *model.RecoveryOTP) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"code":       otp.Code,
			"expires_at": otp.ExpiresAt,
			"created_at": time.Now(),
		}),
	}).Create(otp).Error
}

func (r *otpRepoImpl) FindByEmail(ctx context.Context, email string) (*model.RecoveryOTP, error) {
	var otp model.RecoveryOTP
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&otp).Error
	if err != nil {
		return nil, err
	}

	return &otp, nil
}

func (r *otpRepoImpl) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&model.RecoveryOTP{}).Error
}

func (r *otpRepoImpl) DeleteExpired(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.RecoveryOTP{}).Error
}
