package Models

import (
	"gorm.io/gorm"
)

// FCMToken stores one push notification token per user device.
type FCMToken struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"not null;index"`
	Value  string `json:"value" gorm:"size:512;not null"`
}

type UpdateTokenRequest struct {
	Value string `json:"value" validate:"required"`
}
