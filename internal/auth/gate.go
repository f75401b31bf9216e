package auth

import (
	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
)

// RequireAdmin is the moderation gate guarding every administrative
// mutation. It is a pure check: no state is touched.
func RequireAdmin(id *Identity) error {
	if id == nil {
		return apierror.Forbidden("Unauthorized: No user found")
	}
	if !id.IsAdmin() {
		return apierror.Forbidden("Unauthorized: User does not have admin role")
	}
	return nil
}

// ForbidSelfTarget rejects an admin operation aimed at the admin's own
// account, such as deleting oneself through the admin user endpoint.
func ForbidSelfTarget(id *Identity, targetUserID uint) error {
	if id != nil && id.UserID == targetUserID {
		return apierror.Forbidden("You cannot delete yourself.")
	}
	return nil
}
