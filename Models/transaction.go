package Models

import (
	"gorm.io/gorm"
)

const (
	ParentVendorTransaction   = "vendor_transaction"
	ParentCustomerTransaction = "customer_transaction"
)

// VendorTransaction records a purchase from a vendor. TotalAmount is always
// MaterialAmount + TransportCharge.
type VendorTransaction struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"not null;index"`
	VendorID uint   `json:"vendor_id" gorm:"not null;index"`
	Date     string `json:"date" gorm:"size:10;not null;index"`
	// Cost of line items, either the sum over Items or an explicit override
	MaterialAmount  float64 `json:"material_amount" gorm:"not null"`
	TransportCharge float64 `json:"transport_charge" gorm:"default:0"`
	TotalAmount     float64 `json:"total_amount" gorm:"not null"`

	Items []TransactionItem `json:"items,omitempty" gorm:"polymorphic:Parent;constraint:OnDelete:CASCADE"`
}

// CustomerTransaction records a sale to a customer. There is no surcharge on
// sales, so TotalAmount equals MaterialAmount; payments against the sale are
// tracked separately and subtracted to obtain the outstanding amount.
type CustomerTransaction struct {
	gorm.Model
	UserID         uint    `json:"user_id" gorm:"not null;index"`
	CustomerID     uint    `json:"customer_id" gorm:"not null;index"`
	Date           string  `json:"date" gorm:"size:10;not null;index"`
	MaterialAmount float64 `json:"material_amount" gorm:"not null"`
	TotalAmount    float64 `json:"total_amount" gorm:"not null"`

	Items    []TransactionItem `json:"items,omitempty" gorm:"polymorphic:Parent;constraint:OnDelete:CASCADE"`
	Payments []CustomerPayment `json:"payments,omitempty" gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
}

// TransactionItem is a line item embedded in a vendor or customer transaction.
type TransactionItem struct {
	gorm.Model
	ParentID   uint    `json:"parent_id" gorm:"not null;index"`
	ParentType string  `json:"parent_type" gorm:"size:32;not null;index"`
	Name       string  `json:"name" gorm:"size:255"`
	Quantity   float64 `json:"quantity" gorm:"default:0"`
	UnitPrice  float64 `json:"unit_price" gorm:"default:0"`
	ItemOrder  int     `json:"item_order" gorm:"not null;default:0"`
}

type ItemRequest struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type TransactionRequest struct {
	Date  string        `json:"date" validate:"required"`
	Items []ItemRequest `json:"items"`
	// Explicit material amount; when present it overrides the item sum
	MaterialAmount  *float64 `json:"material_amount"`
	TransportCharge *float64 `json:"transport_charge"`
}
