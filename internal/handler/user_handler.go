package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/auth"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/database"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/logger"
)

// ShowProfile returns the authenticated user's record
func ShowProfile(c echo.Context) error {
	id := auth.CurrentIdentity(c)

	var user model.User
	if result := database.GetDB().First(&user, id.UserID); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("User not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{"data": user})
}

// UpdateProfileRequest defines the self-service account update payload.
// All fields are optional; only provided ones are applied.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateProfile updates the authenticated user's own record
func UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)
	id := auth.CurrentIdentity(c)

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	var user model.User
	if result := database.GetDB().First(&user, id.UserID); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("User not found"))
	}

	if req.Name != nil {
		if *req.Name == "" {
			return apierror.Respond(c, apierror.ValidationField("name", "The name field is required."))
		}
		user.Name = *req.Name
	}

	if req.Email != nil {
		if *req.Email == "" {
			return apierror.Respond(c, apierror.ValidationField("email", "The email field is required."))
		}
		var count int64
		if err := database.GetDB().Model(&model.User{}).
			Where("email = ? AND id != ?", *req.Email, user.ID).
			Count(&count).Error; err != nil {
			log.Error("Failed to check email uniqueness", zap.Error(err))
			return apierror.Respond(c, apierror.Internal(err))
		}
		if count > 0 {
			return apierror.Respond(c, apierror.ValidationField("email", "The email has already been taken."))
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		if len(*req.Password) < 8 {
			return apierror.Respond(c, apierror.ValidationField("password", "The password must be at least 8 characters."))
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return apierror.Respond(c, apierror.Internal(err))
		}
		user.Password = string(hashed)
	}

	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to update user", zap.Uint("user_id", user.ID), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("User updated own profile", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated successfully.",
		"data":    user,
	})
}

// DeleteAccount removes the authenticated user's own account. Their car
// listings go with them via the database cascade.
func DeleteAccount(c echo.Context) error {
	log := logger.FromContext(c)
	id := auth.CurrentIdentity(c)

	var user model.User
	if result := database.GetDB().First(&user, id.UserID); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("User not found"))
	}

	if result := database.GetDB().Delete(&user); result.Error != nil {
		log.Error("Failed to delete user", zap.Uint("user_id", user.ID), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("User deleted own account", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully."})
}
