package model

import (
	"time"
)

// Bid status lifecycle.
const (
	BidPending  = "pending"
	BidApproved = "approved"
	BidRejected = "rejected"
)

// Bid represents an offer placed by a non-owner user against a listing.
// The amount is immutable after creation; only the status transitions.
type Bid struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CarID     uint      `json:"car_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:pending"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty"`
	Car  *Car  `json:"car,omitempty"`
}
