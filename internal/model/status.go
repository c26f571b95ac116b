package model

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusRefunded   OrderStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// MissingFieldsForStatus reports every field an order still needs before it may
// be moved to the target status. Admins can set any status from any status; the
// only gate is field completeness:
//
//	processing — estimatedDelivery set and not in the past
//	shipped    — shippingProvider and notes (tracking detail) present
//
// The full list is returned in one pass so the admin can fix the form once.
func MissingFieldsForStatus(target OrderStatus, o *Order) []string {
	var missing []string

	switch target {
	case StatusProcessing:
		if o.EstimatedDelivery == nil {
			missing = append(missing, "estimatedDelivery")
		} else if o.EstimatedDelivery.Before(startOfToday()) {
			missing = append(missing, "estimatedDelivery (must be today or later)")
		}
	case StatusShipped:
		if o.ShippingProvider == "" {
			missing = append(missing, "shippingProvider")
		}
		if o.Notes == "" {
			missing = append(missing, "notes")
		}
	}

	return missing
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
