package dto

import (
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"
)

type CheckoutCustomer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type CheckoutAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

type CheckoutItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // client-side unit price, revalidated against the store
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

type CheckoutRequest struct {
	Customer        CheckoutCustomer `json:"customer"`
	ShippingAddress CheckoutAddress  `json:"shipping_address"`
	Items           []CheckoutItem   `json:"items"`
	ShippingFee     float64          `json:"shipping_fee"`
	TaxAmount       float64          `json:"tax_amount"`
	TotalAmount     float64          `json:"total_amount"`
	PaymentMethod   string           `json:"payment_method"`
}

type CheckoutResponse struct {
	OrderNumber      string `json:"order_number"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// OrderSummary is what a confirmation page needs, nothing more.
type OrderSummary struct {
	ID            uint                `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Status        model.OrderStatus   `json:"status"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	TotalAmount   float64             `json:"total_amount"`
	Customer      CheckoutCustomer    `json:"customer"`
}

// OrderUpdateRequest is partial: absent or empty fields are not applied.
type OrderUpdateRequest struct {
	Status            string     `json:"status"`
	TrackingNumber    string     `json:"tracking_number"`
	ShippingProvider  string     `json:"shipping_provider"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
	Notes             string     `json:"notes"`
}

type ShippingCalcRequest struct {
	Country string `json:"country" validate:"required"`
	State   string `json:"state" validate:"required"`
	City    string `json:"city" validate:"required"`
}

type ShippingCalcResponse struct {
	Fee  float64 `json:"fee"`
	Tier string  `json:"tier"` // "specific" | "flat"
}

type SpecificRate struct {
	Country string  `json:"country" validate:"required"`
	State   string  `json:"state" validate:"required"`
	City    string  `json:"city"` // empty means every city in the state
	Price   float64 `json:"price" validate:"gte=0"`
}

type ShippingSettings struct {
	Rates   []SpecificRate `json:"rates" validate:"dive"`
	FlatFee float64        `json:"flat_fee" validate:"gte=0"`
}

type RecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RecoveryRequestResponse struct {
	OrderCount int `json:"order_count"`
}

type RecoveryVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type RecoveryOrder struct {
	OrderNumber string            `json:"order_number"`
	CreatedAt   time.Time         `json:"created_at"`
	Status      model.OrderStatus `json:"status"`
	TotalAmount float64           `json:"total_amount"`
	ItemCount   int               `json:"item_count"`
}
