package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/auth"
	"github.com/maynoewai/ABC-car-sale-BE/internal/bidding"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
	"github.com/maynoewai/ABC-car-sale-BE/internal/pagination"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/database"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/logger"
	"github.com/maynoewai/ABC-car-sale-BE/prometheus"
)

// ListCarBids handles the public view of a listing's bids, highest first
func ListCarBids(c echo.Context) error {
	log := logger.FromContext(c)
	carID := c.Param("id")

	var car model.Car
	if result := database.GetDB().First(&car, carID); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Car not found"))
	}

	page := pagination.ParsePage(c.QueryParams())
	db := database.GetDB().Model(&model.Bid{}).
		Preload("User").
		Where("car_id = ?", car.ID).
		Order("amount DESC, created_at ASC")

	var bids []model.Bid
	meta, err := pagination.Paginate(db, page, &bids)
	if err != nil {
		log.Error("Failed to list bids", zap.String("car_id", carID), zap.Error(err))
		return apierror.Respond(c, apierror.Internal(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       bids,
		"pagination": meta,
	})
}

// PlaceBidRequest defines the bid placement payload
type PlaceBidRequest struct {
	Amount float64 `json:"amount"`
}

// PlaceBid handles placing a bid against a listing. The whole
// read-then-write runs in a transaction holding a row lock on the car, so
// two concurrent bids cannot both clear the same stale minimum.
func PlaceBid(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	carID := c.Param("id")
	prometheus.BidOperationsCounter.WithLabelValues("place").Inc()

	var req PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	var bid model.Bid
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var car model.Car
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&car, carID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Car not found")
			}
			return err
		}

		if err := bidding.ForbidOwnerBid(car.UserID, identity.UserID); err != nil {
			prometheus.BidRejectedCounter.WithLabelValues("self_bid").Inc()
			return err
		}

		// Highest existing bid; ties broken by insertion time
		var highest *float64
		var top model.Bid
		err := tx.Where("car_id = ?", car.ID).
			Order("amount DESC, created_at ASC").
			First(&top).Error
		if err == nil {
			highest = &top.Amount
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		minBid := bidding.MinimumBid(car.Price, highest)
		if err := bidding.ValidateAmount(req.Amount, minBid); err != nil {
			prometheus.BidRejectedCounter.WithLabelValues("below_minimum").Inc()
			return err
		}

		bid = model.Bid{
			CarID:  car.ID,
			UserID: identity.UserID,
			Amount: req.Amount,
			Status: model.BidPending,
		}
		return tx.Create(&bid).Error
	})
	if err != nil {
		var apiErr *apierror.Error
		if !errors.As(err, &apiErr) {
			log.Error("Failed to place bid", zap.String("car_id", carID), zap.Error(err))
		}
		return apierror.Respond(c, err)
	}

	log.Info("Bid placed",
		zap.Uint("bid_id", bid.ID),
		zap.Uint("car_id", bid.CarID),
		zap.Uint("user_id", identity.UserID),
		zap.Float64("amount", bid.Amount))

	return c.JSON(http.StatusCreated, bid)
}

// MyBids returns the authenticated user's bids with a summary of each car
func MyBids(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)

	var bids []model.Bid
	result := database.GetDB().
		Preload("Car", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "price", "model", "year")
		}).
		Where("user_id = ?", identity.UserID).
		Find(&bids)
	if result.Error != nil {
		log.Error("Failed to list own bids", zap.Uint("user_id", identity.UserID), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	return c.JSON(http.StatusOK, bids)
}
