package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/errs"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecoveryFixture(t *testing.T) (*gorm.DB, RecoveryService) {
	t.Helper()
	db := testDB(t)
	svc := NewRecoveryService(
		repository.NewOrderRepository(db),
		repository.NewOTPRepository(db),
		&fakeMailer{},
		testLogger(),
	)
	return db, svc
}

func storedCode(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	var otp model.RecoveryOTP
	require.NoError(t, db.First(&otp, "email = ?", email).Error)
	return otp.Code
}

func TestRequestOTP_NoOrdersForEmail(t *testing.T) {
	db, svc := newRecoveryFixture(t)

	_, err := svc.RequestOTP(context.Background(), "stranger@example.com")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))

	// no code may be left behind for an unknown email
	var count int64
	require.NoError(t, db.Model(&model.RecoveryOTP{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRequestOTP_IssuesSixDigitCodeAndCount(t *testing.T) {
	db, svc := newRecoveryFixture(t)
	seedOrder(t, db, "ORD-2001")
	seedOrder(t, db, "ORD-2002")

	resp, err := svc.RequestOTP(context.Background(), "  ADA@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.OrderCount)

	code := storedCode(t, db, "ada@example.com")
	assert.Len(t, code, 6)
}

func TestRequestOTP_ReplacesPriorCode(t *testing.T) {
	db, svc := newRecoveryFixture(t)
	seedOrder(t, db, "ORD-2003")
	ctx := context.Background()

	_, err := svc.RequestOTP(ctx, "ada@example.com")
	require.NoError(t, err)
	first := storedCode(t, db, "ada@example.com")

	_, err = svc.RequestOTP(ctx, "ada@example.com")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.RecoveryOTP{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// the old code only keeps working if the generator happened to repeat it
	second := storedCode(t, db, "ada@example.com")
	if first != second {
		_, err = svc.VerifyOTP(ctx, "ada@example.com", first)
		require.Error(t, err)
	}
}

func TestVerifyOTP_SingleUse(t *testing.T) {
	db, svc := newRecoveryFixture(t)
	seedOrder(t, db, "ORD-2004")
	ctx := context.Background()

	_, err := svc.RequestOTP(ctx, "ada@example.com")
	require.NoError(t, err)
	code := storedCode(t, db, "ada@example.com")

	orders, err := svc.VerifyOTP(ctx, "ada@example.com", code)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-2004", orders[0].OrderNumber)
	assert.Equal(t, 14500.0, orders[0].TotalAmount)

	// burnt on first use
	_, err = svc.VerifyOTP(ctx, "ada@example.com", code)
	require.Error(t, err)
	assert.EqualError(t, err, "code expired or never requested")
}

func TestVerifyOTP_WrongCodeAllowsRetry(t *testing.T) {
	db, svc := newRecoveryFixture(t)
	seedOrder(t, db, "ORD-2005")
	ctx := context.Background()

	_, err := svc.RequestOTP(ctx, "ada@example.com")
	require.NoError(t, err)
	code := storedCode(t, db, "ada@example.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	_, err = svc.VerifyOTP(ctx, "ada@example.com", wrong)
	require.Error(t, err)
	assert.EqualError(t, err, "invalid code")

	// a bad guess does not burn the code
	orders, err := svc.VerifyOTP(ctx, "ada@example.com", code)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestVerifyOTP_Expired(t *testing.T) {
	db, svc := newRecoveryFixture(t)
	seedOrder(t, db, "ORD-2006")
	ctx := context.Background()

	_, err := svc.RequestOTP(ctx, "ada@example.com")
	require.NoError(t, err)
	code := storedCode(t, db, "ada@example.com")

	require.NoError(t, db.Model(&model.RecoveryOTP{}).
		Where("email = ?", "ada@example.com").
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = svc.VerifyOTP(ctx, "ada@example.com", code)
	require.Error(t, err)
	assert.EqualError(t, err, "code expired")

	// expiry deletes the row, so the next attempt reads as never requested
	err = db.First(&model.RecoveryOTP{}, "email = ?", "ada@example.com").Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestVerifyOTP_CapsReturnedOrders(t *testing.T) {
	db, svc := newRecoveryFixture(t)
	for i := 0; i < 12; i++ {
		order := seedOrder(t, db, fmt.Sprintf("ORD-21%02d", i))
		// spread creation times so "most recent" is deterministic
		require.NoError(t, db.Model(order).
			Update("created_at", time.Now().Add(-time.Duration(i)*time.Hour)).Error)
	}
	ctx := context.Background()

	_, err := svc.RequestOTP(ctx, "ada@example.com")
	require.NoError(t, err)
	code := storedCode(t, db, "ada@example.com")

	orders, err := svc.VerifyOTP(ctx, "ada@example.com", code)
	require.NoError(t, err)
	require.Len(t, orders, 10)
	assert.Equal(t, "ORD-2100", orders[0].OrderNumber)
}
