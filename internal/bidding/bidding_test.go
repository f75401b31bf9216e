package bidding

import (
	"errors"
	"testing"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
)

func TestMinimumBidWithoutBidsIsAskingPrice(t *testing.T) {
	if got := MinimumBid(10000, nil); got != 10000 {
		t.Fatalf("expected minimum 10000, got %v", got)
	}
}

func TestMinimumBidWithHighestBidIsOneAbove(t *testing.T) {
	highest := 12500.0
	if got := MinimumBid(10000, &highest); got != 12501 {
		t.Fatalf("expected minimum 12501, got %v", got)
	}
}

func TestValidateAmountAtMinimumPasses(t *testing.T) {
	if err := ValidateAmount(10000, 10000); err != nil {
		t.Fatalf("bid equal to minimum should pass, got %v", err)
	}
}

func TestValidateAmountBelowMinimumFails(t *testing.T) {
	err := ValidateAmount(9999, 10000)
	if err == nil {
		t.Fatal("bid below minimum should fail")
	}
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apierror.Error, got %T", err)
	}
	if apiErr.Status != 422 {
		t.Fatalf("expected status 422, got %d", apiErr.Status)
	}
	if len(apiErr.Fields["amount"]) == 0 {
		t.Fatal("expected a field-level message for amount")
	}
}

func TestValidateAmountAgainstExistingHighest(t *testing.T) {
	highest := 10000.0
	min := MinimumBid(10000, &highest)

	if err := ValidateAmount(10001, min); err != nil {
		t.Fatalf("bid of highest+1 should pass, got %v", err)
	}
	if err := ValidateAmount(10000, min); err == nil {
		t.Fatal("bid equal to current highest should fail")
	}
}

func TestForbidOwnerBid(t *testing.T) {
	err := ForbidOwnerBid(7, 7)
	if err == nil {
		t.Fatal("owner bidding on own car should fail")
	}
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 403 {
		t.Fatalf("expected 403, got %v", err)
	}

	if err := ForbidOwnerBid(7, 8); err != nil {
		t.Fatalf("non-owner bid should pass, got %v", err)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{model.BidPending, model.BidApproved, model.BidRejected} {
		if !ValidStatus(s) {
			t.Errorf("status %q should be valid", s)
		}
	}
	for _, s := range []string{"", "sold", "APPROVED", "cancelled"} {
		if ValidStatus(s) {
			t.Errorf("status %q should be invalid", s)
		}
	}
}
