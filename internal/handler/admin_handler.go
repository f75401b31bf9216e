package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/auth"
	"github.com/maynoewai/ABC-car-sale-BE/internal/bidding"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
	"github.com/maynoewai/ABC-car-sale-BE/internal/pagination"
	"github.com/maynoewai/ABC-car-sale-BE/internal/query"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/database"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/logger"
	"github.com/maynoewai/ABC-car-sale-BE/prometheus"
)

// AdminListUsers returns every registered user except the requesting admin
func AdminListUsers(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	page := pagination.ParsePage(c.QueryParams())
	db := database.GetDB().Model(&model.User{}).
		Where("id <> ?", identity.UserID)

	var users []model.User
	meta, err := pagination.Paginate(db, page, &users)
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		return apierror.Respond(c, apierror.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       users,
		"pagination": meta,
	})
}

// AdminDeleteUser removes a user account. An admin cannot delete their own
// account through this endpoint.
func AdminDeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	var user model.User
	if result := database.GetDB().First(&user, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("User not found"))
	}

	if err := auth.ForbidSelfTarget(identity, user.ID); err != nil {
		log.Warn("Admin tried to delete own account", zap.Uint("admin_id", identity.UserID))
		return apierror.Respond(c, err)
	}

	if result := database.GetDB().Delete(&user); result.Error != nil {
		log.Error("Failed to delete user", zap.String("user_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("User deleted by admin",
		zap.Uint("user_id", user.ID),
		zap.Uint("admin_id", identity.UserID))
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully."})
}

// AdminUpdateUserRoleRequest defines the role change payload
type AdminUpdateUserRoleRequest struct {
	Role string `json:"role"`
}

// AdminUpdateUserRole changes a user's role tag
func AdminUpdateUserRole(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	var req AdminUpdateUserRoleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.Role != model.RoleUser && req.Role != model.RoleAdmin {
		return apierror.Respond(c, apierror.ValidationField("role", "The selected role is invalid."))
	}

	var user model.User
	if result := database.GetDB().First(&user, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("User not found"))
	}

	user.Role = req.Role
	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to update user role", zap.String("user_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("User role updated",
		zap.Uint("user_id", user.ID),
		zap.String("role", user.Role),
		zap.Uint("admin_id", identity.UserID))
	return c.JSON(http.StatusOK, echo.Map{"message": "User role updated successfully."})
}

// AdminListCars returns every listing with the same filters as the public
// feed, admin-only
func AdminListCars(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	filters := query.ParseCarFilters(c.QueryParams())
	page := pagination.ParsePage(c.QueryParams())

	db := database.GetDB().Model(&model.Car{}).
		Preload("Images").
		Preload("User")
	db = filters.Apply(db)

	var cars []model.Car
	meta, err := pagination.Paginate(db, page, &cars)
	if err != nil {
		log.Error("Failed to list cars", zap.Error(err))
		return apierror.Respond(c, apierror.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       cars,
		"pagination": meta,
	})
}

// AdminShowCar returns one listing with images and seller, admin-only
func AdminShowCar(c echo.Context) error {
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	var car model.Car
	result := database.GetDB().
		Preload("Images").
		Preload("User").
		First(&car, id)
	if result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Car not found"))
	}

	return c.JSON(http.StatusOK, echo.Map{"data": car})
}

// AdminDeleteCar removes any listing and its external images, admin-only
func AdminDeleteCar(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")
	prometheus.CarOperationsCounter.WithLabelValues("admin_delete").Inc()

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	var car model.Car
	if result := database.GetDB().Preload("Images").First(&car, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Car not found"))
	}

	failed := releaseImages(c, &car)

	if result := database.GetDB().Select("Images", "Bids", "TestDrives").Delete(&car); result.Error != nil {
		log.Error("Failed to delete car", zap.String("car_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("Car deleted by admin",
		zap.Uint("car_id", car.ID),
		zap.Uint("admin_id", identity.UserID))
	response := echo.Map{"message": "Car deleted successfully."}
	if len(failed) > 0 {
		response["failed_image_cleanup"] = failed
	}
	return c.JSON(http.StatusOK, response)
}

// AdminListBids returns every bid with bidder and listing, admin-only
func AdminListBids(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	page := pagination.ParsePage(c.QueryParams())
	db := database.GetDB().Model(&model.Bid{}).
		Preload("User").
		Preload("Car")

	var bids []model.Bid
	meta, err := pagination.Paginate(db, page, &bids)
	if err != nil {
		log.Error("Failed to list bids", zap.Error(err))
		return apierror.Respond(c, apierror.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       bids,
		"pagination": meta,
	})
}

// AdminUpdateBidRequest defines the bid moderation payload
type AdminUpdateBidRequest struct {
	Status string `json:"status"`
}

// AdminUpdateBid moves a bid through its status lifecycle. Approving a bid
// marks the listing sold; a later approval of another bid on the same car
// wins and the car simply stays sold.
func AdminUpdateBid(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")
	prometheus.BidOperationsCounter.WithLabelValues("review").Inc()

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	var req AdminUpdateBidRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if !bidding.ValidStatus(req.Status) {
		return apierror.Respond(c, apierror.ValidationField("status", "The selected status is invalid."))
	}

	var bid model.Bid
	if result := database.GetDB().First(&bid, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Bid not found"))
	}

	bid.Status = req.Status
	if result := database.GetDB().Save(&bid); result.Error != nil {
		log.Error("Failed to update bid", zap.String("bid_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	// An approved bid closes the sale
	if bid.Status == model.BidApproved {
		result := database.GetDB().Model(&model.Car{}).
			Where("id = ?", bid.CarID).
			Update("status", model.StatusSold)
		if result.Error != nil {
			log.Error("Failed to mark car sold", zap.Uint("car_id", bid.CarID), zap.Error(result.Error))
			return apierror.Respond(c, apierror.Internal(result.Error))
		}
		log.Info("Car marked sold",
			zap.Uint("car_id", bid.CarID),
			zap.Uint("bid_id", bid.ID))
	}

	if result := database.GetDB().Preload("User").Preload("Car").First(&bid, bid.ID); result.Error != nil {
		log.Error("Failed to reload bid", zap.String("bid_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("Bid status updated",
		zap.Uint("bid_id", bid.ID),
		zap.String("status", bid.Status),
		zap.Uint("admin_id", identity.UserID))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Bid status updated successfully.",
		"data":    bid,
	})
}

// AdminDeleteBid removes a bid without touching the car's status
func AdminDeleteBid(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")
	prometheus.BidOperationsCounter.WithLabelValues("delete").Inc()

	if err := auth.RequireAdmin(identity); err != nil {
		return apierror.Respond(c, err)
	}

	var bid model.Bid
	if result := database.GetDB().First(&bid, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Bid not found"))
	}

	if result := database.GetDB().Delete(&bid); result.Error != nil {
		log.Error("Failed to delete bid", zap.String("bid_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("Bid deleted by admin",
		zap.Uint("bid_id", bid.ID),
		zap.Uint("admin_id", identity.UserID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Bid deleted successfully."})
}
