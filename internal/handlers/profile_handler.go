package handlers

import (
	"io"
	"net/http"

	"github.com/aurafeed/backend/internal/models"
	"github.com/aurafeed/backend/internal/queries"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles HTTP requests related to profiles
type ProfileHandler struct {
	queries *queries.Queries
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(q *queries.Queries) *ProfileHandler {
	return &ProfileHandler{queries: q}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profiles/:id", h.GetProfile)
	g.GET("/profiles/:id/followers", h.GetFollowers)
	g.GET("/profiles/:id/following", h.GetFollowing)
	g.PUT("/profiles/me", h.UpdateProfile)
	g.PUT("/profiles/me/avatar", h.UpdateAvatar)
	g.DELETE("/profiles/me/avatar", h.ClearAvatar)
}

// GetProfile retrieves the public shape of a profile with its follow counts
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profileID := c.Param("id")

	author, err := h.queries.GetProfileData(c.Request().Context(), profileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if author == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}

	followers, following, err := h.queries.GetFollowCounts(c.Request().Context(), profileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"profile":         author,
		"followers_count": followers,
		"following_count": following,
	})
}

// UpdateProfile patches the viewer's editable profile fields
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author, err := h.queries.UpdateProfile(c.Request().Context(), viewerID, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, author)
}

// GetFollowers lists the profiles following the given profile
func (h *ProfileHandler) GetFollowers(c echo.Context) error {
	profileID := c.Param("id")

	followers, err := h.queries.GetFollowers(c.Request().Context(), profileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, followers)
}

// GetFollowing lists the profiles the given profile follows
func (h *ProfileHandler) GetFollowing(c echo.Context) error {
	profileID := c.Param("id")

	following, err := h.queries.GetFollowing(c.Request().Context(), profileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, following)
}

// UpdateAvatar replaces the viewer's avatar with an uploaded image. The
// stored object is named by the profile ID, so re-uploading replaces the
// previous avatar in place.
func (h *ProfileHandler) UpdateAvatar(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing avatar file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable avatar file")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable avatar file")
	}

	if err := h.queries.UpdateAvatar(c.Request().Context(), viewerID, data); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// ClearAvatar removes the viewer's avatar
func (h *ProfileHandler) ClearAvatar(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}

	if err := h.queries.UpdateAvatar(c.Request().Context(), viewerID, nil); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
