package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/maynoewai/ABC-car-sale-BE/internal/apierror"
	"github.com/maynoewai/ABC-car-sale-BE/internal/model"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/database"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/jwtutil"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/logger"
	"github.com/maynoewai/ABC-car-sale-BE/prometheus"
)

// RegisterRequest defines the payload for account creation
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Register handles new account creation
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	fields := map[string][]string{}
	if req.Name == "" {
		fields["name"] = append(fields["name"], "The name field is required.")
	}
	if req.Email == "" {
		fields["email"] = append(fields["email"], "The email field is required.")
	}
	if len(req.Password) < 8 {
		fields["password"] = append(fields["password"], "The password must be at least 8 characters.")
	}
	if req.PasswordConfirmation != req.Password {
		fields["password"] = append(fields["password"], "The password confirmation does not match.")
	}
	if len(fields) > 0 {
		prometheus.RecordAuthError("invalid_registration")
		return apierror.Respond(c, apierror.Validation("The given data was invalid.", fields))
	}

	// Check email uniqueness - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	if err := database.GetDB().Model(&model.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		log.Error("Failed to check email uniqueness", zap.Error(err))
		return apierror.Respond(c, apierror.Internal(err))
	}
	if count > 0 {
		log.Warn("Email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return apierror.Respond(c, apierror.ValidationField("email", "The email has already been taken."))
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return apierror.Respond(c, apierror.Internal(err))
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     model.RoleUser,
	}

	if result := database.GetDB().Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.String("email", req.Email), zap.Error(result.Error))
		prometheus.RecordAuthError("user_create_failed")
		return apierror.Respond(c, apierror.Internal(result.Error))
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return apierror.Respond(c, apierror.Internal(err))
	}

	prometheus.ActiveTokensGauge.Inc()
	log.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

// LoginRequest defines the payload for authentication
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles credential verification and token issuance
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return apierror.Respond(c, apierror.Internal(err))
	}

	prometheus.ActiveTokensGauge.Inc()
	log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"role":  user.Role,
		"name":  user.Name,
	})
}
