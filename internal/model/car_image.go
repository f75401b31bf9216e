package model

import (
	"time"
)

// CarImage stores the externally hosted image attached to a listing.
// PublicID is the opaque identifier used to delete the object from the
// external store when the listing goes away.
type CarImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CarID     uint      `json:"car_id" gorm:"index;not null"`
	URL       string    `json:"url" gorm:"type:varchar(500);not null"`
	PublicID  string    `json:"public_id" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
