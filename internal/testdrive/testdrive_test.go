package testdrive

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
)

func TestValidateScheduledTimeInFuturePasses(t *testing.T) {
	now := time.Now()
	if err := ValidateScheduledTime(now.Add(48*time.Hour), now); err != nil {
		t.Fatalf("future booking should pass, got %v", err)
	}
}

func TestValidateScheduledTimeInPastFails(t *testing.T) {
	now := time.Now()
	err := ValidateScheduledTime(now.Add(-time.Minute), now)
	if err == nil {
		t.Fatal("past booking should fail")
	}
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apierror.Error, got %T", err)
	}
	if apiErr.Status != 422 {
		t.Fatalf("expected status 422, got %d", apiErr.Status)
	}
	if len(apiErr.Fields["scheduled_time"]) == 0 {
		t.Fatal("expected a field-level message for scheduled_time")
	}
}

func TestValidateScheduledTimeExactlyNowFails(t *testing.T) {
	now := time.Now()
	if err := ValidateScheduledTime(now, now); err == nil {
		t.Fatal("booking for the current instant should fail")
	}
}

func TestForbidDuplicateBooking(t *testing.T) {
	if err := ForbidDuplicateBooking(0); err != nil {
		t.Fatalf("first booking should pass, got %v", err)
	}

	err := ForbidDuplicateBooking(1)
	if err == nil {
		t.Fatal("second booking for the same car should fail")
	}
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 422 {
		t.Fatalf("expected 422, got %v", err)
	}
	msgs := apiErr.Fields["car_id"]
	if len(msgs) == 0 || !strings.Contains(msgs[0], "already booked a test drive") {
		t.Fatalf("unexpected field messages: %v", msgs)
	}
}

func TestValidReviewStatus(t *testing.T) {
	for _, s := range []string{model.TestDriveApproved, model.TestDriveRejected} {
		if !ValidReviewStatus(s) {
			t.Errorf("status %q should be valid", s)
		}
	}
	for _, s := range []string{"", model.TestDrivePending, "APPROVED", "done"} {
		if ValidReviewStatus(s) {
			t.Errorf("status %q should be invalid", s)
		}
	}
}
