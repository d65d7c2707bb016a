package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/aurafeed/backend/internal/models"
	"github.com/aurafeed/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	profileRepository repositories.ProfileRepository
	jwtSecret         string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(profileRepo repositories.ProfileRepository) *AuthHandler {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey"
	}
	return &AuthHandler{
		profileRepository: profileRepo,
		jwtSecret:         jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
}

// Signup handles profile registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Check if a profile with this email already exists
	if _, err := h.profileRepository.GetProfileByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Profile with this email already registered")
	}

	// Handles are unique across the app
	if _, err := h.profileRepository.GetProfileByHandle(req.Handle); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Handle is already taken")
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	profile := &models.Profile{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Handle:   req.Handle,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.profileRepository.CreateProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Generate and return JWT for the newly registered profile
	token, err := h.generateJWT(profile)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token, "profile": profile.ToAuthor()})
}

// SignIn handles profile authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileRepository.GetProfileByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "No profile found with email: "+req.Email)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	// Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
	}

	token, err := h.generateJWT(profile)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "profile": profile.ToAuthor()})
}

// generateJWT generates a JWT token for a given profile
func (h *AuthHandler) generateJWT(profile *models.Profile) (string, error) {
	claims := &models.JwtCustomClaims{
		ProfileID: profile.ID,
		Email:     profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)), // Token expires in 72 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", err
	}
	return t, nil
}
