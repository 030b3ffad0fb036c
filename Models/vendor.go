package Models

import (
	"gorm.io/gorm"
)

type Vendor struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	Name    string `json:"name" gorm:"size:255;not null"`
	// Lowercase copy of Name maintained on every write, used for prefix search
	NameLower string `json:"name_lower" gorm:"size:255;index"`
	Phone     string `json:"phone,omitempty" gorm:"size:50"`
	Address   string `json:"address,omitempty" gorm:"size:500"`
	// Amount of the most recent payment recorded against this vendor
	LastPaymentAmount float64 `json:"last_payment_amount" gorm:"default:0"`

	// Relationships
	Transactions []VendorTransaction `json:"transactions,omitempty" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	Payments     []VendorPayment     `json:"payments,omitempty" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
}

type Customer struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"size:255;not null"`
	NameLower string `json:"name_lower" gorm:"size:255;index"`
	Phone     string `json:"phone,omitempty" gorm:"size:50"`
	Address   string `json:"address,omitempty" gorm:"size:500"`

	Transactions []CustomerTransaction `json:"transactions,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

type EntityRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
