package bidding

import (
	"strconv"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
)

// MinimumBid returns the lowest acceptable amount for the next bid on a
// listing: one above the current highest bid, or the asking price when no
// bids exist yet.
func MinimumBid(price float64, highest *float64) float64 {
	if highest == nil {
		return price
	}
	return *highest + 1
}

// ValidateAmount checks a proposed bid against the current minimum.
func ValidateAmount(amount, minimum float64) error {
	if amount < minimum {
		msg := "The bid amount must be at least " + formatAmount(minimum) + " to compete with the last winning bid."
		return apierror.ValidationField("amount", msg)
	}
	return nil
}

// ForbidOwnerBid prevents a seller from bidding on their own listing.
func ForbidOwnerBid(ownerID, bidderID uint) error {
	if ownerID == bidderID {
		return apierror.Forbidden("You cannot bid on your own car.")
	}
	return nil
}

// ValidStatus reports whether s is an allowed bid status.
func ValidStatus(s string) bool {
	switch s {
	case model.BidPending, model.BidApproved, model.BidRejected:
		return true
	}
	return false
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
