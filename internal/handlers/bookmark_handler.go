package handlers

import (
	"net/http"

	"github.com/aurafeed/backend/internal/models"
	"github.com/aurafeed/backend/internal/queries"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles bookmark-related HTTP requests
type BookmarkHandler struct {
	queries *queries.Queries
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(q *queries.Queries) *BookmarkHandler {
	return &BookmarkHandler{queries: q}
}

// RegisterBookmarkRoutes registers bookmark-related routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.GET("/bookmarks", h.GetBookmarkedPosts)
	g.POST("/posts/:id/bookmark", h.AddBookmark)
	g.DELETE("/posts/:id/bookmark", h.RemoveBookmark)
	g.DELETE("/bookmarks", h.ClearBookmarks)
	g.POST("/bookmarks/import", h.ImportBookmarks)
}

// GetBookmarkedPosts lists the viewer's bookmarked posts, most recently
// bookmarked first
func (h *BookmarkHandler) GetBookmarkedPosts(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}

	posts, err := h.queries.GetBookmarkedPosts(c.Request().Context(), viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, posts)
}

// AddBookmark saves a post to the viewer's bookmarks
func (h *BookmarkHandler) AddBookmark(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	if err := h.queries.AddBookmark(c.Request().Context(), viewerID, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// RemoveBookmark removes a post from the viewer's bookmarks
func (h *BookmarkHandler) RemoveBookmark(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	if err := h.queries.RemoveBookmark(c.Request().Context(), viewerID, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// ClearBookmarks removes every bookmark the viewer holds
func (h *BookmarkHandler) ClearBookmarks(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}

	if err := h.queries.ClearBookmarks(c.Request().Context(), viewerID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// ImportBookmarks bulk-saves bookmark IDs exported from an older client
func (h *BookmarkHandler) ImportBookmarks(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.ImportBookmarksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.queries.ImportBookmarks(c.Request().Context(), viewerID, req.PostIDs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
