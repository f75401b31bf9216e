package testdrive

import (
	"time"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
)

// ValidateScheduledTime rejects bookings that are not strictly in the
// future relative to now.
func ValidateScheduledTime(scheduled, now time.Time) error {
	if !scheduled.After(now) {
		return apierror.ValidationField("scheduled_time", "The scheduled time must be a date after now.")
	}
	return nil
}

// ForbidDuplicateBooking rejects a second booking for the same car by the
// same user. existing is the count of the user's bookings on the car in
// any status.
func ForbidDuplicateBooking(existing int64) error {
	if existing > 0 {
		return apierror.ValidationField("car_id", "You have already booked a test drive for this car.")
	}
	return nil
}

// ValidReviewStatus reports whether s is a status an admin may move a
// booking to. Pending is the initial state only.
func ValidReviewStatus(s string) bool {
	switch s {
	case model.TestDriveApproved, model.TestDriveRejected:
		return true
	}
	return false
}
