package playapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mazehub/mazehub-api/api/identity"
	"github.com/mazehub/mazehub-api/game/player"
	"github.com/mazehub/mazehub-api/service/i"
)

// PlayController manages play sessions over HTTP. The WebSocket channel
// in channel.go funnels into the same manager.
type PlayController struct {
	manager   i.PlayManager
	tokenizer i.Tokenizer
}

// NewPlayController initializes a PlayController.
func NewPlayController(manager i.PlayManager, tokenizer i.Tokenizer) (*PlayController, error) {
	return &PlayController{
		manager:   manager,
		tokenizer: tokenizer,
	}, nil
}

// RegisterPublic registers public routes. The channel authenticates
// itself from the token query parameter, since browsers cannot attach
// headers to a WebSocket dial.
func (pc *PlayController) RegisterPublic(route *gin.RouterGroup) {
	sessions := route.Group("/play/sessions")
	{
		sessions.GET("/:ID/channel", pc.channel)
	}
}

// RegisterProtected registers protected routes.
func (pc *PlayController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/play/sessions")
	{
		sessions.POST("/", pc.start)
		sessions.GET("/:ID", pc.state)
		sessions.POST("/:ID/move", pc.move)
		sessions.DELETE("/:ID", pc.end)
	}
}

// start opens a session on a stored maze.
func (pc *PlayController) start(ctx *gin.Context) {
	playerID, err := identity.CurrentUserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request StartRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mazeID, err := uuid.Parse(request.MazeID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	snap, err := pc.manager.Start(playerID, mazeID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, toSessionResponse(snap))
}

// state returns the session's current position and trail.
func (pc *PlayController) state(ctx *gin.Context) {
	playerID, id, ok := pc.sessionCall(ctx)
	if !ok {
		return
	}

	snap, err := pc.manager.State(id, playerID)
	if err != nil {
		pc.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSessionResponse(snap))
}

// move applies one directional step. Blocked moves are not errors: the
// response reports the unchanged position.
func (pc *PlayController) move(ctx *gin.Context) {
	playerID, id, ok := pc.sessionCall(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	direction, err := player.ParseDirection(request.Direction)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := pc.manager.Move(id, playerID, direction)
	if err != nil {
		pc.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSessionResponse(snap))
}

// end discards the session.
func (pc *PlayController) end(ctx *gin.Context) {
	playerID, id, ok := pc.sessionCall(ctx)
	if !ok {
		return
	}

	if err := pc.manager.End(id, playerID); err != nil {
		pc.sessionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// sessionCall pulls the caller identity and session id every session
// route needs. A false return means the response is already written.
func (pc *PlayController) sessionCall(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	playerID, err := identity.CurrentUserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return playerID, id, true
}

// sessionError maps manager failures onto statuses.
func (pc *PlayController) sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, i.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, i.ErrNotSessionOwner):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
