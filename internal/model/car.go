package model

import (
	"time"
)

// Car listing status lifecycle. Only the transition to StatusSold is wired to
// an operation (bid approval); the earlier stages exist in the schema for
// future moderation workflow.
const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusSold     = "sold"
)

// Car represents a vehicle listing owned by a user
type Car struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"index;not null"`

	// Basic info
	Title       string  `json:"title" gorm:"type:varchar(255);not null"`
	Make        string  `json:"make" gorm:"type:varchar(255);not null"`
	Model       string  `json:"model" gorm:"type:varchar(255);not null"`
	Year        int     `json:"year" gorm:"not null"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	Description string  `json:"description,omitempty" gorm:"type:text"`

	// Detailed specifications
	Mileage           float64    `json:"mileage,omitempty" gorm:"type:decimal(8,2)"`
	MileageUnit       string     `json:"mileage_unit,omitempty" gorm:"type:varchar(50)"`
	FuelType          string     `json:"fuel_type,omitempty" gorm:"type:varchar(50)"`
	Transmission      string     `json:"transmission,omitempty" gorm:"type:varchar(50)"`
	OwnerNumber       string     `json:"owner_number,omitempty" gorm:"type:varchar(50)"`
	Color             string     `json:"color,omitempty" gorm:"type:varchar(50)"`
	Location          string     `json:"location,omitempty" gorm:"type:varchar(50)"`
	BodyType          string     `json:"body_type,omitempty" gorm:"type:varchar(50)"`
	RegistrationYear  int        `json:"registration_year,omitempty"`
	InsuranceValidity *time.Time `json:"insurance_validity,omitempty"`
	EngineCC          string     `json:"engine_cc,omitempty" gorm:"type:varchar(50)"`
	Variant           string     `json:"variant,omitempty" gorm:"type:varchar(255)"`

	// Features
	PowerWindows *bool `json:"power_windows,omitempty"`
	ABS          *bool `json:"abs,omitempty"`
	Airbags      *bool `json:"airbags,omitempty"`
	Sunroof      *bool `json:"sunroof,omitempty"`
	Navigation   *bool `json:"navigation,omitempty"`
	RearCamera   *bool `json:"rear_camera,omitempty"`
	LeatherSeats *bool `json:"leather_seats,omitempty"`

	Status string `json:"status" gorm:"type:varchar(20);default:draft"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User       *User       `json:"user,omitempty"`
	Images     []CarImage  `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Bids       []Bid       `json:"bids,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	TestDrives []TestDrive `json:"test_drives,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// CarSummary is the trimmed listing projection returned by the seller's
// own-listings endpoint.
type CarSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Make      string    `json:"make"`
	CreatedAt time.Time `json:"created_at"`
}
