package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMissingFieldsForStatus(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)
	past := time.Now().Add(-48 * time.Hour)

	tests := []struct {
		name    string
		target  OrderStatus
		order   Order
		missing []string
	}{
		{
			name:    "processing without date",
			target:  StatusProcessing,
			order:   Order{},
			missing: []string{"estimatedDelivery"},
		},
		{
			name:    "processing with past date",
			target:  StatusProcessing,
			order:   Order{EstimatedDelivery: &past},
			missing: []string{"estimatedDelivery (must be today or later)"},
		},
		{
			name:   "processing with future date",
			target: StatusProcessing,
			order:  Order{EstimatedDelivery: &future},
		},
		{
			name:    "shipped missing everything",
			target:  StatusShipped,
			order:   Order{},
			missing: []string{"shippingProvider", "notes"},
		},
		{
			name:    "shipped missing notes only",
			target:  StatusShipped,
			order:   Order{ShippingProvider: "DHL"},
			missing: []string{"notes"},
		},
		{
			name:   "shipped complete",
			target: StatusShipped,
			order:  Order{ShippingProvider: "DHL", Notes: "tracking GH-220-NG"},
		},
		{
			name:   "cancelled never gated",
			target: StatusCancelled,
			order:  Order{},
		},
		{
			name:   "confirmed never gated",
			target: StatusConfirmed,
			order:  Order{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, MissingFieldsForStatus(tt.target, &tt.order))
		})
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{
		StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded,
	} {
		assert.True(t, ValidOrderStatus(s), string(s))
	}

	assert.False(t, ValidOrderStatus("paid"))
	assert.False(t, ValidOrderStatus(""))
}
