package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/aurafeed/backend/internal/interact"
	"github.com/aurafeed/backend/internal/models"
	"github.com/aurafeed/backend/internal/queries"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// InteractionHandler handles likes, vibe reactions, and poll votes. Each
// viewer/target pair gets an optimistic control: the next state is computed
// from the control's visible value, the write goes through the query layer,
// and a failed write reverts the control so the next request starts from
// the confirmed state.
type InteractionHandler struct {
	queries *queries.Queries

	mu    sync.Mutex
	likes map[string]*interact.Control[bool]
	vibes map[string]*interact.Control[models.VibeKind]
	votes map[string]*interact.Control[string]
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(q *queries.Queries) *InteractionHandler {
	return &InteractionHandler{
		queries: q,
		likes:   make(map[string]*interact.Control[bool]),
		vibes:   make(map[string]*interact.Control[models.VibeKind]),
		votes:   make(map[string]*interact.Control[string]),
	}
}

// RegisterInteractionRoutes registers interaction-related routes
func (h *InteractionHandler) RegisterInteractionRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
	g.PUT("/posts/:id/vibe", h.SetVibe)
	g.POST("/polls/options/:optionId/vote", h.VotePoll)
}

// likeControl returns the control for one viewer/post like, seeding it from
// the store on first use
func (h *InteractionHandler) likeControl(ctx context.Context, viewerID, postID string) (*interact.Control[bool], error) {
	key := viewerID + ":" + postID
	h.mu.Lock()
	ctl, ok := h.likes[key]
	h.mu.Unlock()
	if ok {
		return ctl, nil
	}

	liked, err := h.queries.HasLiked(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.likes[key]; ok {
		return existing, nil
	}
	ctl = interact.NewControl(liked, nil, nil)
	h.likes[key] = ctl
	return ctl, nil
}

func (h *InteractionHandler) vibeControl(ctx context.Context, viewerID, postID string) (*interact.Control[models.VibeKind], error) {
	key := viewerID + ":" + postID
	h.mu.Lock()
	ctl, ok := h.vibes[key]
	h.mu.Unlock()
	if ok {
		return ctl, nil
	}

	current, err := h.queries.GetViewerVibe(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.vibes[key]; ok {
		return existing, nil
	}
	ctl = interact.NewControl(current, nil, nil)
	h.vibes[key] = ctl
	return ctl, nil
}

// voteControl is keyed by poll, not option: a viewer holds at most one vote
// across a poll's options
func (h *InteractionHandler) voteControl(viewerID, pollID, selected string) *interact.Control[string] {
	key := viewerID + ":" + pollID
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.votes[key]; ok {
		return existing
	}
	ctl := interact.NewControl(selected, nil, nil)
	h.votes[key] = ctl
	return ctl
}

// ToggleLike flips the viewer's like on a post and returns the resulting
// state
func (h *InteractionHandler) ToggleLike(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	ctl, err := h.likeControl(c.Request().Context(), viewerID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	next := interact.NextToggle(ctl.Value())
	err = ctl.Do(c.Request().Context(), next, func(ctx context.Context) error {
		_, err := h.queries.ToggleLike(ctx, viewerID, postID)
		return err
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": ctl.Value()})
}

// SetVibe sets, replaces, or clears the viewer's vibe reaction on a post.
// Submitting the currently held vibe clears it.
func (h *InteractionHandler) SetVibe(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	var req models.SetVibeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctl, err := h.vibeControl(c.Request().Context(), viewerID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	next := interact.NextChoice(ctl.Value(), req.Vibe)
	err = ctl.Do(c.Request().Context(), next, func(ctx context.Context) error {
		_, err := h.queries.SetVibe(ctx, viewerID, postID, req.Vibe)
		return err
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"vibe": ctl.Value()})
}

// VotePoll casts, switches, or retracts the viewer's vote. Voting the
// currently selected option retracts it; voting another option moves the
// vote. The response carries the option the viewer now holds, empty when
// no vote remains.
func (h *InteractionHandler) VotePoll(c echo.Context) error {
	viewerID, err := getProfileIDFromContext(c)
	if err != nil {
		return err
	}
	optionID := c.Param("optionId")

	pollID, selected, err := h.queries.GetPollSelection(c.Request().Context(), viewerID, optionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctl := h.voteControl(viewerID, pollID, selected)
	next := interact.NextChoice(ctl.Value(), optionID)
	err = ctl.Do(c.Request().Context(), next, func(ctx context.Context) error {
		_, err := h.queries.VotePoll(ctx, viewerID, optionID)
		return err
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"selected_option_id": ctl.Value()})
}
