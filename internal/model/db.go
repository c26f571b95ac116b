package model

import "time"

type Product struct {
	ID        string  `gorm:"primaryKey;size:64;not null"`
	Name      string  `gorm:"size:128;not null"`
	Image     string  `gorm:"size:512"`
	Price     float64 `gorm:"not null"`
	Inventory int     `gorm:"not null"` // never negative; guarded by conditional decrement
	Sold      int     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Customer struct {
	Email     string `gorm:"size:128;index;not null"`
	FirstName string `gorm:"size:64;not null"`
	LastName  string `gorm:"size:64;not null"`
	Phone     string `gorm:"size:32;not null"`
}

type ShippingAddress struct {
	Street  string `gorm:"size:256;not null"`
	City    string `gorm:"size:64;not null"`
	State   string `gorm:"size:64;not null"`
	Country string `gorm:"size:64;not null"`
	ZipCode string `gorm:"size:16"`
}

type Order struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"size:64;uniqueIndex;not null"`

	// snapshot taken at checkout; later profile edits do not touch it
	Customer        Customer        `gorm:"embedded;embeddedPrefix:customer_"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`

	Subtotal    float64 `gorm:"not null"`
	ShippingFee float64 `gorm:"not null"`
	TaxAmount   float64 `gorm:"not null"`
	TotalAmount float64 `gorm:"not null"` // subtotal + shippingFee + taxAmount, fixed at creation

	Status        OrderStatus   `gorm:"size:32;index;not null"`
	PaymentStatus PaymentStatus `gorm:"size:32;index;not null"`
	PaymentMethod string        `gorm:"size:32"`

	// gateway correlation id; seeded with the order number at creation and
	// overwritten with the gateway's echo, so it is never empty and never shared
	PaystackReference string `gorm:"size:128;uniqueIndex"`

	TrackingNumber    string `gorm:"size:128"`
	ShippingProvider  string `gorm:"size:64"`
	EstimatedDelivery *time.Time
	Notes             string `gorm:"size:1024"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"index;not null"`
	// FK → product.id, plus a snapshot of what was bought at what price
	ProductID string  `gorm:"size:64;index;not null"`
	Name      string  `gorm:"size:128;not null"`
	Image     string  `gorm:"size:512"`
	Price     float64 `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	Size      string  `gorm:"size:16"`
	Color     string  `gorm:"size:32"`
	Subtotal  float64 `gorm:"not null"` // price * quantity

	CreatedAt time.Time
}

type RateType string

const (
	RateSpecific RateType = "specific"
	RateFlat     RateType = "flat"
)

// ShippingRate rows are stored with country/state/city lowercased so lookups
// are a plain equality match. The single flat row has empty location fields.
type ShippingRate struct {
	ID      uint     `gorm:"primaryKey"`
	Type    RateType `gorm:"size:16;index;not null"`
	Country string   `gorm:"size:64;uniqueIndex:idx_rate_location"`
	State   string   `gorm:"size:64;uniqueIndex:idx_rate_location"`
	City    string   `gorm:"size:64;uniqueIndex:idx_rate_location"`
	Price   float64  `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecoveryOTP keys on email: issuing a new code replaces the previous one.
type RecoveryOTP struct {
	Email     string `gorm:"primaryKey;size:128;not null"`
	Code      string `gorm:"size:6;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
