package Models

import (
	"gorm.io/gorm"
)

// VendorPayment is a standalone payment made to a vendor. VendorName is
// denormalized so payment lists render without joining vendors.
type VendorPayment struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"not null;index"`
	VendorID      uint    `json:"vendor_id" gorm:"not null;index"`
	VendorName    string  `json:"vendor_name" gorm:"size:255"`
	Date          string  `json:"date" gorm:"size:10;not null;index"`
	Amount        float64 `json:"amount" gorm:"not null"`
	PaymentMethod string  `json:"payment_method,omitempty" gorm:"size:50"`
	Notes         string  `json:"notes,omitempty" gorm:"type:text"`
}

// CustomerPayment is a payment received against one customer transaction.
type CustomerPayment struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"not null;index"`
	TransactionID uint    `json:"transaction_id" gorm:"not null;index"`
	Date          string  `json:"date" gorm:"size:10;not null;index"`
	Amount        float64 `json:"amount" gorm:"not null"`
	PaymentMethod string  `json:"payment_method,omitempty" gorm:"size:50"`
	Notes         string  `json:"notes,omitempty" gorm:"type:text"`
}

type PaymentRequest struct {
	Date          string   `json:"date" validate:"required"`
	Amount        *float64 `json:"amount" validate:"required"`
	PaymentMethod string   `json:"payment_method"`
	Notes         string   `json:"notes"`
}
