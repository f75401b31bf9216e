package model

import (
	"time"
)

// Role values stored on the user record. The marketplace only distinguishes
// regular users from administrators.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents the user model stored in the database
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255)"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Cars are removed by the database when the owning user is deleted.
	// Bids and test drives are kept for history.
	Cars       []Car       `json:"cars,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Bids       []Bid       `json:"bids,omitempty"`
	TestDrives []TestDrive `json:"test_drives,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
