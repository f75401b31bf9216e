package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/auth"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
	"github.com/maynoewai/ABC-car-sale-BE/internal/pagination"
	"github.com/maynoewai/ABC-car-sale-BE/internal/query"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/database"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/logger"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/mediastore"
	"github.com/maynoewai/ABC-car-sale-BE/prometheus"
)

const (
	maxImagesPerListing = 5
	maxImageSize        = 2 << 20 // 2MB
)

// ListCars handles the public listing feed with filtering, sorting and
// pagination
func ListCars(c echo.Context) error {
	log := logger.FromContext(c)

	filters := query.ParseCarFilters(c.QueryParams())
	page := pagination.ParsePage(c.QueryParams())

	db := database.GetDB().Model(&model.Car{}).
		Preload("Images").
		Preload("User").
		Preload("Bids")
	db = filters.Apply(db)

	var cars []model.Car
	meta, err := pagination.Paginate(db, page, &cars)
	if err != nil {
		log.Error("Failed to list cars", zap.Error(err))
		return apierror.Respond(c, apierror.Internal(err))
	}

	log.Info("Cars listed", zap.Int("count", len(cars)), zap.Int("page", page))
	return c.JSON(http.StatusOK, echo.Map{
		"data":       cars,
		"pagination": meta,
	})
}

// ShowCar handles retrieving a single listing with its images, seller and bids
func ShowCar(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var car model.Car
	result := database.GetDB().
		Preload("Images").
		Preload("User").
		Preload("Bids").
		First(&car, id)
	if result.Error != nil {
		log.Warn("Car not found", zap.String("car_id", id))
		return apierror.Respond(c, apierror.NotFound("Car not found"))
	}

	return c.JSON(http.StatusOK, car)
}

// CreateCar handles creating a listing from a multipart form carrying the
// descriptive fields and up to five images. The record is created first;
// when an image upload fails the record is deleted again so no half-built
// listing survives.
func CreateCar(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	prometheus.CarOperationsCounter.WithLabelValues("create").Inc()

	form, err := c.MultipartForm()
	if err != nil {
		log.Error("Invalid multipart form", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	car, fields := carFromForm(c)
	car.UserID = identity.UserID

	images := form.File["images"]
	if len(images) == 0 {
		fields["images"] = append(fields["images"], "The images field is required.")
	}
	if len(images) > maxImagesPerListing {
		fields["images"] = append(fields["images"], "The images may not have more than 5 items.")
	}
	for _, file := range images {
		if err := validateImageFile(file); err != nil {
			fields["images"] = append(fields["images"], err.Error())
		}
	}
	if len(fields) > 0 {
		return apierror.Respond(c, apierror.Validation("The given data was invalid.", fields))
	}

	if result := database.GetDB().Create(&car); result.Error != nil {
		log.Error("Failed to create car", zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	// Upload images; roll the listing back if the external host fails
	ctx := c.Request().Context()
	uploaded := make([]model.CarImage, 0, len(images))
	for _, file := range images {
		src, err := file.Open()
		if err == nil {
			var img mediastore.Image
			img, err = mediastore.Get().Upload(ctx, src, file.Size, file.Header.Get("Content-Type"))
			src.Close()
			if err == nil {
				prometheus.ImageUploadsCounter.Inc()
				uploaded = append(uploaded, model.CarImage{
					CarID:    car.ID,
					URL:      img.URL,
					PublicID: img.PublicID,
				})
				continue
			}
		}

		log.Error("Car listing creation failed",
			zap.Uint("car_id", car.ID),
			zap.String("filename", file.Filename),
			zap.Error(err))
		if result := database.GetDB().Delete(&car); result.Error != nil {
			log.Error("Failed to roll back car record", zap.Uint("car_id", car.ID), zap.Error(result.Error))
		}
		return apierror.Respond(c, apierror.Internal(err))
	}

	if result := database.GetDB().Create(&uploaded); result.Error != nil {
		log.Error("Failed to attach images", zap.Uint("car_id", car.ID), zap.Error(result.Error))
		if delResult := database.GetDB().Delete(&car); delResult.Error != nil {
			log.Error("Failed to roll back car record", zap.Uint("car_id", car.ID), zap.Error(delResult.Error))
		}
		return apierror.Respond(c, apierror.Internal(result.Error))
	}
	car.Images = uploaded

	log.Info("Car listing created",
		zap.Uint("car_id", car.ID),
		zap.Uint("user_id", identity.UserID),
		zap.String("title", car.Title),
		zap.Int("images", len(uploaded)))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Car listing created successfully",
		"data":    car,
	})
}

// UpdateCarRequest defines the owner-editable subset of listing fields
type UpdateCarRequest struct {
	Title       *string  `json:"title"`
	Make        *string  `json:"make"`
	Model       *string  `json:"model"`
	Year        *int     `json:"year"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

// UpdateCar handles editing a listing, restricted to its owner
func UpdateCar(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)
	id := c.Param("id")
	prometheus.CarOperationsCounter.WithLabelValues("update").Inc()

	var car model.Car
	if result := database.GetDB().First(&car, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Car not found"))
	}

	if car.UserID != identity.UserID {
		log.Warn("Non-owner tried to edit listing",
			zap.String("car_id", id),
			zap.Uint("user_id", identity.UserID))
		return apierror.Respond(c, apierror.Forbidden("Only Car Owner can edit listing"))
	}

	var req UpdateCarRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.Year != nil && *req.Year < 1900 {
		return apierror.Respond(c, apierror.ValidationField("year", "The year must be at least 1900."))
	}
	if req.Price != nil && *req.Price < 0 {
		return apierror.Respond(c, apierror.ValidationField("price", "The price must be at least 0."))
	}

	if req.Title != nil {
		car.Title = *req.Title
	}
	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Price != nil {
		car.Price = *req.Price
	}
	if req.Description != nil {
		car.Description = *req.Description
	}

	if result := database.GetDB().Save(&car); result.Error != nil {
		log.Error("Failed to update car", zap.String("car_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("Car listing updated", zap.Uint("car_id", car.ID), zap.Uint("user_id", identity.UserID))
	return c.JSON(http.StatusOK, car)
}

// DeleteCar handles removing a listing together with its externally hosted
// images. External cleanup is best-effort: failures are surfaced in the
// response and metrics, and the record is removed regardless.
func DeleteCar(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.CarOperationsCounter.WithLabelValues("delete").Inc()

	var car model.Car
	if result := database.GetDB().Preload("Images").First(&car, id); result.Error != nil {
		return apierror.Respond(c, apierror.NotFound("Car not found"))
	}

	failed := releaseImages(c, &car)

	if result := database.GetDB().Select("Images", "Bids", "TestDrives").Delete(&car); result.Error != nil {
		log.Error("Failed to delete car", zap.String("car_id", id), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	log.Info("Car listing deleted", zap.Uint("car_id", car.ID))
	response := echo.Map{"message": "Car deleted successfully."}
	if len(failed) > 0 {
		response["failed_image_cleanup"] = failed
	}
	return c.JSON(http.StatusOK, response)
}

// MyListings returns a summary of the authenticated seller's own cars
func MyListings(c echo.Context) error {
	log := logger.FromContext(c)
	identity := auth.CurrentIdentity(c)

	var listings []model.CarSummary
	result := database.GetDB().Model(&model.Car{}).
		Select("id", "title", "price", "model", "year", "created_at", "make").
		Where("user_id = ?", identity.UserID).
		Find(&listings)
	if result.Error != nil {
		log.Error("Failed to list own cars", zap.Uint("user_id", identity.UserID), zap.Error(result.Error))
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	return c.JSON(http.StatusOK, listings)
}

// releaseImages deletes the car's external images and returns the public
// IDs that could not be removed.
func releaseImages(c echo.Context, car *model.Car) []string {
	log := logger.FromContext(c)

	publicIDs := make([]string, 0, len(car.Images))
	for _, img := range car.Images {
		publicIDs = append(publicIDs, img.PublicID)
	}

	results := mediastore.Cleanup(c.Request().Context(), mediastore.Get(), publicIDs)
	failed := mediastore.FailedIDs(results)
	for _, publicID := range failed {
		prometheus.ImageCleanupFailedCounter.Inc()
		log.Warn("Failed to delete external image",
			zap.Uint("car_id", car.ID),
			zap.String("public_id", publicID))
	}
	return failed
}

// carFromForm builds a Car from the multipart fields, collecting
// validation messages for the required ones.
func carFromForm(c echo.Context) (model.Car, map[string][]string) {
	fields := map[string][]string{}

	car := model.Car{
		Title:        c.FormValue("title"),
		Make:         c.FormValue("make"),
		Model:        c.FormValue("model"),
		Description:  c.FormValue("description"),
		MileageUnit:  c.FormValue("mileage_unit"),
		FuelType:     c.FormValue("fuel_type"),
		Transmission: c.FormValue("transmission"),
		OwnerNumber:  c.FormValue("owner_number"),
		Color:        c.FormValue("color"),
		Location:     c.FormValue("location"),
		BodyType:     c.FormValue("body_type"),
		EngineCC:     c.FormValue("engine_cc"),
		Variant:      c.FormValue("variant"),
	}

	if car.Title == "" {
		fields["title"] = append(fields["title"], "The title field is required.")
	}
	if car.Make == "" {
		fields["make"] = append(fields["make"], "The make field is required.")
	}
	if car.Model == "" {
		fields["model"] = append(fields["model"], "The model field is required.")
	}

	year, err := strconv.Atoi(c.FormValue("year"))
	if err != nil || year < 1900 {
		fields["year"] = append(fields["year"], "The year must be an integer of at least 1900.")
	}
	car.Year = year

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		fields["price"] = append(fields["price"], "The price must be a number of at least 0.")
	}
	car.Price = price

	if v := c.FormValue("mileage"); v != "" {
		if mileage, err := strconv.ParseFloat(v, 64); err == nil {
			car.Mileage = mileage
		}
	}
	if v := c.FormValue("registration_year"); v != "" {
		if regYear, err := strconv.Atoi(v); err == nil {
			car.RegistrationYear = regYear
		}
	}
	if v := c.FormValue("insurance_validity"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			car.InsuranceValidity = &t
		}
	}

	car.PowerWindows = formBool(c, "power_windows")
	car.ABS = formBool(c, "abs")
	car.Airbags = formBool(c, "airbags")
	car.Sunroof = formBool(c, "sunroof")
	car.Navigation = formBool(c, "navigation")
	car.RearCamera = formBool(c, "rear_camera")
	car.LeatherSeats = formBool(c, "leather_seats")

	return car, fields
}

func formBool(c echo.Context, key string) *bool {
	v := c.FormValue(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// validateImageFile checks size and content type of one uploaded image.
func validateImageFile(file *multipart.FileHeader) error {
	if file.Size > maxImageSize {
		return errors.New("The image " + file.Filename + " may not be greater than 2048 kilobytes.")
	}
	switch file.Header.Get("Content-Type") {
	case "image/jpeg", "image/jpg", "image/png":
		return nil
	}
	return errors.New("The image " + file.Filename + " must be a file of type: jpeg, png.")
}
