package handlers

import (
	"net/http"
	"sync"

	"github.com/aurafeed/backend/internal/cache"
	"github.com/aurafeed/backend/internal/feed"
	"github.com/aurafeed/backend/internal/models"
	"github.com/aurafeed/backend/internal/queries"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the post feeds. Paging state lives server-side in one
// pager per viewer: each GET merges the next page into the viewer's feed,
// switching the kind param restarts from cursor zero, and refresh drops
// every cached feed page so all viewers refetch.
type FeedHandler struct {
	queries *queries.Queries
	cache   *cache.Cache

	mu     sync.Mutex
	pagers map[string]*feed.Pager
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(q *queries.Queries, queryCache *cache.Cache) *FeedHandler {
	return &FeedHandler{
		queries: q,
		cache:   queryCache,
		pagers:  make(map[string]*feed.Pager),
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.POST("/feed/refresh", h.RefreshFeed)
}

// pagerFor returns the viewer's pager, creating it on first use and
// switching it to the requested kind
func (h *FeedHandler) pagerFor(viewerID string, kind models.FeedKind) *feed.Pager {
	h.mu.Lock()
	defer h.mu.Unlock()
	pager, ok := h.pagers[viewerID]
	if !ok {
		pager = feed.NewPager(h.queries, h.cache, viewerID, kind)
		h.pagers[viewerID] = pager
		return pager
	}
	pager.SetKind(kind)
	return pager
}

// GetFeed loads the next page of the viewer's feed and returns the full
// merged list. The kind query param selects the feed (global, following,
// liked, mine) and defaults to global; changing it discards the previous
// feed's paging state.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}

	kind := models.FeedKind(c.QueryParam("kind"))
	if kind == "" {
		kind = models.FeedGlobal
	}
	if !kind.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown feed kind: "+string(kind))
	}

	pager := h.pagerFor(viewerID, kind)
	posts, err := pager.LoadMore(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"kind":     pager.Kind(),
		"posts":    posts,
		"has_more": pager.HasMore(),
	})
}

// RefreshFeed drops every cached feed page and restarts the viewer's pager
// from cursor zero. Other viewers' pagers restart on their next read.
func (h *FeedHandler) RefreshFeed(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}

	kind := models.FeedKind(c.QueryParam("kind"))
	if kind == "" {
		kind = models.FeedGlobal
	}
	if !kind.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown feed kind: "+string(kind))
	}

	h.pagerFor(viewerID, kind).Refresh()
	return c.NoContent(http.StatusNoContent)
}
