package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/auth"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
	"github.com/maynoewai/ABC-car-sale-BE/internal/pagination"
	"github.com/maynoewai/ABC-car-sale-BE/internal/testdrive"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/database"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/logger"
	"github.com/maynoewai/ABC-car-sale-BE/prometheus"
)

// ListTestDrives returns the authenticated user's test drives with car details
func ListTestDrives(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)

	page := pagination.ParsePage(c.QueryParams())
	db := database.GetDB().Model(&model.TestDrive{}).
		Preload("Car").
		Where("user_id = ?", identity.UserID)

	var testDrives []model.TestDrive
	meta, err := pagination.Paginate(db, page, &testDrives)
	if err != nil {
		log.Error("Failed to list test drives", zap.Uint("user_id", identity.UserID), zap.Error(err))
		return apierror.Respond(c, apierror.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       testDrives,
		"pagination": meta,
	})
}

// BookTestDriveRequest defines the booking payload
type BookTestDriveRequest struct {
	CarID         uint      `json:"car_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
}

// BookTestDrive handles scheduling a test drive. A user may hold at most
// one booking per car, whatever its status.
func BookTestDrive(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	prometheus.TestDriveOperationsCounter.WithLabelValues("book").Inc()

	var req BookTestDriveRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.CarID == 0 {
		return apierror.Respond(c, apierror.ValidationField("car_id", "The car_id field is required."))
	}
	if err := testdrive.ValidateScheduledTime(req.ScheduledTime, time.Now()); err != nil {
		return apierror.Respond(c, err)
	}

	var car model.Car
	if result := database.GetDB().First(&car, req.CarID); result.Error != nil {
		return apierror.Respond(c, apierror.ValidationField("car_id", "The selected car_id is invalid."))
	}

	var count int64
	if err := database.GetDB().Model(&model.TestDrive{}).
		Where("user_id = ? AND car_id = ?", identity.UserID, req.CarID).
		Count(&count).Error; err != nil {
		log.Error("Failed to count existing bookings", zap.Error(err))
		return apierror.Respond(c, apierror.Internal(err))
	}
	if err := testdrive.ForbidDuplicateBooking(count); err != nil {
		log.Warn("Duplicate test drive booking",
			zap.Uint("user_id", identity.UserID),
			zap.Uint("car_id", req.CarID))
		return apierror.Respond(c, err)
	}

	testDrive := model.TestDrive{
		CarID:         req.CarID,
		UserID:        identity.UserID,
		ScheduledTime: req.ScheduledTime,
		Status:        model.TestDrivePending,
	}
	if result := database.GetDB().Create(&testDrive); result.Error != nil {
		log.Error("Failed to create test drive", zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}
	testDrive.Car = &car

	log.Info("Test drive booked",
		zap.Uint("test_drive_id", testDrive.ID),
		zap.Uint("car_id", req.CarID),
		zap.Uint("user_id", identity.UserID),
		zap.Time("scheduled_time", req.ScheduledTime))

	return c.JSON(http.StatusCreated, testDrive)
}

// DeleteTestDrive lets a user withdraw their own booking while it is still
// pending. Anything else is refused.
func DeleteTestDrive(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")
	prometheus.TestDriveOperationsCounter.WithLabelValues("delete").Inc()

	var testDrive model.TestDrive
	if result := database.GetDB().First(&testDrive, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Test drive not found"))
	}

	if testDrive.UserID != identity.UserID || testDrive.Status != model.TestDrivePending {
		log.Warn("Refused test drive deletion",
			zap.String("test_drive_id", id),
			zap.Uint("user_id", identity.UserID),
			zap.String("status", testDrive.Status))
		return apierror.Respond(c, apierror.Forbidden("Unauthorized action."))
	}

	if result := database.GetDB().Delete(&testDrive); result.Error != nil {
		log.Error("Failed to delete test drive", zap.String("test_drive_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	return c.NoContent(http.StatusNoContent)
}

// MyTestDrives returns the authenticated user's test drives with car titles
func MyTestDrives(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)

	var testDrives []model.TestDrive
	result := database.GetDB().
		Preload("Car", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		Where("user_id = ?", identity.UserID).
		Find(&testDrives)
	if result.Error != nil {
		log.Error("Failed to list own test drives", zap.Uint("user_id", identity.UserID), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	return c.JSON(http.StatusOK, testDrives)
}

// AdminListTestDrives returns every test drive, admin-only
func AdminListTestDrives(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	page := pagination.ParsePage(c.QueryParams())
	db := database.GetDB().Model(&model.TestDrive{}).
		Preload("User").
		Preload("Car")

	var testDrives []model.TestDrive
	meta, err := pagination.Paginate(db, page, &testDrives)
	if err != nil {
		log.Error("Failed to list test drives", zap.Error(err))
		return apierror.Respond(c, apierror.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       testDrives,
		"pagination": meta,
	})
}

// AdminUpdateTestDriveRequest defines the admin review payload
type AdminUpdateTestDriveRequest struct {
	Status        string     `json:"status"`
	AdminNotes    *string    `json:"admin_notes"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

// AdminUpdateTestDrive moves a booking through the approval workflow and
// may revise its scheduled time, admin-only
func AdminUpdateTestDrive(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")
	prometheus.TestDriveOperationsCounter.WithLabelValues("review").Inc()

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	var req AdminUpdateTestDriveRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if !testdrive.ValidReviewStatus(req.Status) {
		return apierror.Respond(c, apierror.ValidationField("status", "The selected status is invalid."))
	}
	if req.ScheduledTime != nil {
		if err := testdrive.ValidateScheduledTime(*req.ScheduledTime, time.Now()); err != nil {
			return apierror.Respond(c, err)
		}
	}

	var testDrive model.TestDrive
	if result := database.GetDB().First(&testDrive, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Test drive not found"))
	}

	testDrive.Status = req.Status
	if req.AdminNotes != nil {
		testDrive.AdminNotes = *req.AdminNotes
	}
	if req.ScheduledTime != nil {
		testDrive.ScheduledTime = *req.ScheduledTime
	}

	if result := database.GetDB().Save(&testDrive); result.Error != nil {
		log.Error("Failed to update test drive", zap.String("test_drive_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	if result := database.GetDB().Preload("User").Preload("Car").First(&testDrive, testDrive.ID); result.Error != nil {
		log.Error("Failed to reload test drive", zap.String("test_drive_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("Test drive reviewed",
		zap.Uint("test_drive_id", testDrive.ID),
		zap.String("status", testDrive.Status),
		zap.Uint("admin_id", identity.UserID))

	return c.JSON(http.StatusOK, testDrive)
}

// AdminDeleteTestDrive removes any booking, admin-only
func AdminDeleteTestDrive(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	var testDrive model.TestDrive
	if result := database.GetDB().First(&testDrive, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Test drive not found"))
	}

	if result := database.GetDB().Delete(&testDrive); result.Error != nil {
		log.Error("Failed to delete test drive", zap.String("test_drive_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	return c.NoContent(http.StatusNoContent)
}
