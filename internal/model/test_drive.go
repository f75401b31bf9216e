package model

import (
	"time"
)

// TestDrive status lifecycle.
const (
	TestDrivePending  = "pending"
	TestDriveApproved = "approved"
	TestDriveRejected = "rejected"
)

// TestDrive represents a scheduled appointment linking one user to one listing.
// A user may hold at most one test drive per car, regardless of status.
type TestDrive struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CarID         uint      `json:"car_id" gorm:"index;not null"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	ScheduledTime time.Time `json:"scheduled_time" gorm:"not null"`
	Status        string    `json:"status" gorm:"type:varchar(20);default:pending"`
	AdminNotes    string    `json:"admin_notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User *User `json:"user,omitempty"`
	Car  *Car  `json:"car,omitempty"`
}
