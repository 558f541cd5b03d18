package builderapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mazehub/mazehub-api/api/identity"
	"github.com/mazehub/mazehub-api/game/builder"
	"github.com/mazehub/mazehub-api/game/maze"
	"github.com/mazehub/mazehub-api/service/i"
)

// BuilderController manages authoring sessions over HTTP.
type BuilderController struct {
	manager i.BuilderManager
}

// NewBuilderController initializes a BuilderController.
func NewBuilderController(manager i.BuilderManager) (*BuilderController, error) {
	return &BuilderController{
		manager: manager,
	}, nil
}

// RegisterPublic registers public routes.
func (bc *BuilderController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (bc *BuilderController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/builder/sessions")
	{
		sessions.POST("/", bc.open)
		sessions.GET("/:ID", bc.snapshot)
		sessions.DELETE("/:ID", bc.discard)
		sessions.PUT("/:ID/tool", bc.tool)
		sessions.POST("/:ID/pointer", bc.pointer)
		sessions.POST("/:ID/save", bc.save)
	}
}

// open starts an authoring session: a blank draft, a scaffolded one, or
// an existing maze reopened for editing.
func (bc *BuilderController) open(ctx *gin.Context) {
	owner, err := identity.CurrentUserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request OpenRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		id   uuid.UUID
		snap builder.Snapshot
	)
	if request.MazeID != "" {
		mazeID, err := uuid.Parse(request.MazeID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
			return
		}
		id, snap, err = bc.manager.OpenExisting(owner, mazeID)
		if errors.Is(err, i.ErrNotMazeCreator) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	} else {
		id, snap, err = bc.manager.Open(owner, request.Scaffold)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	ctx.JSON(http.StatusCreated, toSessionResponse(id.String(), snap))
}

// snapshot returns the session's current draft state.
func (bc *BuilderController) snapshot(ctx *gin.Context) {
	owner, id, ok := bc.sessionCall(ctx)
	if !ok {
		return
	}

	snap, err := bc.manager.Snapshot(id, owner)
	if err != nil {
		bc.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSessionResponse(id.String(), snap))
}

// tool arms a paint tool on the draft.
func (bc *BuilderController) tool(ctx *gin.Context) {
	owner, id, ok := bc.sessionCall(ctx)
	if !ok {
		return
	}

	var request ToolRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tool, err := builder.ParseTool(request.Tool)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := bc.manager.SetTool(id, owner, tool)
	if err != nil {
		bc.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSessionResponse(id.String(), snap))
}

// pointer feeds one gesture step into the draft. Rejected paints are not
// errors: the response just reports nothing was applied.
func (bc *BuilderController) pointer(ctx *gin.Context) {
	owner, id, ok := bc.sessionCall(ctx)
	if !ok {
		return
	}

	var request PointerRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := builder.ParseEvent(request.Event)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied, snap, err := bc.manager.Pointer(id, owner, event, maze.Coord{X: request.X, Y: request.Y})
	if err != nil {
		bc.sessionError(ctx, err)
		return
	}

	response := &PointerResponse{
		Applied:         applied,
		SessionResponse: *toSessionResponse(id.String(), snap),
	}
	ctx.JSON(http.StatusOK, response)
}

// save persists the draft and closes the session.
func (bc *BuilderController) save(ctx *gin.Context) {
	owner, id, ok := bc.sessionCall(ctx)
	if !ok {
		return
	}

	var request SaveRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := bc.manager.Save(id, owner, request.Name)
	if err != nil {
		switch {
		case errors.Is(err, i.ErrSessionNotFound), errors.Is(err, i.ErrNotSessionOwner):
			bc.sessionError(ctx, err)
		default:
			// Validation failures: the session stays open for fixing.
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": doc.ID.String(), "name": doc.Name})
}

// discard drops the session without saving.
func (bc *BuilderController) discard(ctx *gin.Context) {
	owner, id, ok := bc.sessionCall(ctx)
	if !ok {
		return
	}

	if err := bc.manager.Discard(id, owner); err != nil {
		bc.sessionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// sessionCall pulls the caller identity and session id every session
// route needs. A false return means the response is already written.
func (bc *BuilderController) sessionCall(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	owner, err := identity.CurrentUserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}

// sessionError maps manager failures onto statuses.
func (bc *BuilderController) sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, i.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, i.ErrNotSessionOwner):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
