package handlers

import (
	"net/http"

	"github.com/aurafeed/backend/internal/queries"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow-related HTTP requests
type FollowHandler struct {
	queries *queries.Queries
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(q *queries.Queries) *FollowHandler {
	return &FollowHandler{queries: q}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/profiles/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the viewer's follow edge to a profile and returns
// the resulting state
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}
	profileID := c.Param("id")

	following, err := h.queries.ToggleFollowing(c.Request().Context(), viewerID, profileID)
	if err != nil {
		if err.Error() == "cannot follow yourself" {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"following": following})
}
