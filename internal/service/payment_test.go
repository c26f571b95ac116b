package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/errs"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPaymentFixture(t *testing.T) (*gorm.DB, *fakeGateway, PaymentService) {
	t.Helper()
	db := testDB(t)
	gateway := &fakeGateway{verifySuccess: true}
	svc := NewPaymentService(
		db, gateway,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		&fakeMailer{},
		"admin@shop.example.com",
		testLogger(),
	)
	return db, gateway, svc
}

// placeOrder runs a real checkout so the order under test looks exactly like
// production data.
func placeOrder(t *testing.T, db *gorm.DB, gateway *fakeGateway) string {
	t.Helper()
	seedCheckoutCatalog(t, db)
	shipping := NewShippingService(repository.NewShippingRateRepository(db))
	checkout := NewCheckoutService(
		db, gateway,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		shipping,
		"https://shop.example.com/order/confirm",
		testLogger(),
	)
	resp, err := checkout.Checkout(context.Background(), validCheckoutRequest())
	require.NoError(t, err)
	return resp.Reference
}

func inventoryOf(t *testing.T, db *gorm.DB, id string) (inventory, sold int) {
	t.Helper()
	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Inventory, product.Sold
}

func TestVerifyPayment_SuccessAppliesInventoryOnce(t *testing.T) {
	db, gateway, svc := newPaymentFixture(t)
	reference := placeOrder(t, db, gateway)
	ctx := context.Background()

	summary, err := svc.VerifyPayment(ctx, reference)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, summary.PaymentStatus)
	assert.Equal(t, model.StatusPending, summary.Status)
	assert.Equal(t, 14500.0, summary.TotalAmount)
	assert.Equal(t, "ada@example.com", summary.Customer.Email)

	inv, sold := inventoryOf(t, db, "prod-a")
	assert.Equal(t, 8, inv)
	assert.Equal(t, 2, sold)
	inv, sold = inventoryOf(t, db, "prod-b")
	assert.Equal(t, 0, inv)
	assert.Equal(t, 1, sold)

	// second verification of the same reference is a no-op for inventory
	summary, err = svc.VerifyPayment(ctx, reference)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, summary.PaymentStatus)

	inv, sold = inventoryOf(t, db, "prod-a")
	assert.Equal(t, 8, inv)
	assert.Equal(t, 2, sold)
	inv, sold = inventoryOf(t, db, "prod-b")
	assert.Equal(t, 0, inv)
	assert.Equal(t, 1, sold)
}

func TestVerifyPayment_FailureHasNoSideEffects(t *testing.T) {
	db, gateway, svc := newPaymentFixture(t)
	reference := placeOrder(t, db, gateway)
	gateway.verifySuccess = false

	summary, err := svc.VerifyPayment(context.Background(), reference)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentFailed, summary.PaymentStatus)

	inv, sold := inventoryOf(t, db, "prod-a")
	assert.Equal(t, 10, inv)
	assert.Zero(t, sold)
}

func TestVerifyPayment_GatewayErrorLeavesOrderUntouched(t *testing.T) {
	db, gateway, svc := newPaymentFixture(t)
	reference := placeOrder(t, db, gateway)
	gateway.verifyErr = errors.New("paystack error 500")

	_, err := svc.VerifyPayment(context.Background(), reference)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindGateway))

	var order model.Order
	require.NoError(t, db.Where("paystack_reference = ?", reference).First(&order).Error)
	assert.Equal(t, model.PaymentPending, order.PaymentStatus)
}

func TestVerifyPayment_UnknownReference(t *testing.T) {
	_, _, svc := newPaymentFixture(t)

	_, err := svc.VerifyPayment(context.Background(), "ORD-UNKNOWN")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestVerifyPayment_OversellFlagsForReconciliation(t *testing.T) {
	db, gateway, svc := newPaymentFixture(t)
	reference := placeOrder(t, db, gateway)

	// a concurrent sale drained prod-b between checkout and verification
	require.NoError(t, db.Model(&model.Product{}).
		Where("id = ?", "prod-b").
		Update("inventory", 0).Error)

	summary, err := svc.VerifyPayment(context.Background(), reference)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, summary.PaymentStatus)

	// the sellable item still moved
	inv, sold := inventoryOf(t, db, "prod-a")
	assert.Equal(t, 8, inv)
	assert.Equal(t, 2, sold)

	// the oversold one did not go negative and the order is flagged
	inv, sold = inventoryOf(t, db, "prod-b")
	assert.Equal(t, 0, inv)
	assert.Zero(t, sold)

	var order model.Order
	require.NoError(t, db.Where("paystack_reference = ?", reference).First(&order).Error)
	assert.Contains(t, order.Notes, "RECONCILE")
	assert.Contains(t, order.Notes, "prod-b")
}
