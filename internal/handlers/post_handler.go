package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/aurafeed/backend/internal/models"
	"github.com/aurafeed/backend/internal/queries"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	queries *queries.Queries
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(q *queries.Queries) *PostHandler {
	return &PostHandler{queries: q}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
}

// CreatePost creates a new post from a multipart form: content, optional
// poll fields, and optional media files
func (h *PostHandler) CreatePost(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}

	req := models.CreatePostRequest{
		Content:      c.FormValue("content"),
		PollQuestion: c.FormValue("poll_question"),
	}
	if raw := c.FormValue("poll_options"); raw != "" {
		req.PollOptions = strings.Split(raw, "\n")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	media, err := readMediaFiles(c)
	if err != nil {
		return err
	}

	var draft *models.PollDraft
	if len(req.PollOptions) > 0 {
		draft = &models.PollDraft{Options: req.PollOptions}
		if req.PollQuestion != "" {
			question := req.PollQuestion
			draft.Question = &question
		}
	}

	post, err := h.queries.CreatePost(c.Request().Context(), viewerID, req.Content, media, draft)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a fully assembled post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID := c.Param("id")

	post, err := h.queries.GetPost(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	return c.JSON(http.StatusOK, post)
}

// readMediaFiles collects the uploaded files of a multipart create-post
// request in submission order
func readMediaFiles(c echo.Context) ([]queries.MediaFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body means no media
		return nil, nil
	}

	files := form.File["files"]
	media := make([]queries.MediaFile, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Unreadable media file")
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Unreadable media file")
		}
		media = append(media, queries.MediaFile{Name: fileHeader.Filename, Data: data})
	}
	return media, nil
}
