package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
)

// Identity is the authenticated caller, resolved once by the auth middleware
// from the bearer token and passed explicitly into every gated operation.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == model.RoleAdmin
}

const identityKey = "identity"

// SetIdentity stores the identity on the request context.
func SetIdentity(c echo.Context, id *Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity retrieves the identity stored by the auth middleware.
// Returns nil for unauthenticated requests.
func CurrentIdentity(c echo.Context) *Identity {
	if id, ok := c.Get(identityKey).(*Identity); ok {
		return id
	}
	return nil
}
