package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// getProfileIDFromContext reads the authenticated profile ID stored by the
// JWT middleware
func getProfileIDFromContext(c echo.Context) (string, error) {
	profileID, ok := c.Get("profileID").(string)
	if !ok || profileID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authenticated profile")
	}
	return profileID, nil
}
