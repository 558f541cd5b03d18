package mazeapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mazehub/mazehub-api/api/identity"
	"github.com/mazehub/mazehub-api/service/i"
)

const (
	sseHeartbeat    = 30 * time.Second
	defaultTopSize  = 10
	scoreboardLimit = 100
)

// MazeController manages the shared maze collection over HTTP.
type MazeController struct {
	catalog    i.MazeCatalog
	feed       i.MazeFeed
	scoreboard i.Scoreboard
}

// NewMazeController initializes a MazeController.
func NewMazeController(catalog i.MazeCatalog, feed i.MazeFeed, scoreboard i.Scoreboard) (*MazeController, error) {
	return &MazeController{
		catalog:    catalog,
		feed:       feed,
		scoreboard: scoreboard,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/", mc.list)
		mazes.GET("/feed", mc.stream)
		mazes.GET("/:ID", mc.byID)
		mazes.DELETE("/:ID", mc.remove)
		mazes.GET("/:ID/scores", mc.scores)
	}
}

// list returns every stored maze, newest first.
func (mc *MazeController) list(ctx *gin.Context) {
	docs, err := mc.catalog.List()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, toMazeResponses(docs))
}

// byID returns one maze.
func (mc *MazeController) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	doc, err := mc.catalog.ByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
		return
	}

	ctx.JSON(http.StatusOK, toMazeResponse(doc))
}

// remove deletes a maze on its creator's request.
func (mc *MazeController) remove(ctx *gin.Context) {
	userID, err := identity.CurrentUserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	if err := mc.catalog.Delete(id, userID); err != nil {
		if errors.Is(err, i.ErrNotMazeCreator) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// scores returns the fastest solves of a maze, best first.
func (mc *MazeController) scores(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	limit := defaultTopSize
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > scoreboardLimit {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	scores, err := mc.scoreboard.Top(ctx, id, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, scores)
}

// stream pushes maze list snapshots over server-sent events: the full
// list on connect, then one frame per change, with heartbeats in
// between to keep proxies from cutting the stream.
func (mc *MazeController) stream(ctx *gin.Context) {
	updates, cancel := mc.feed.Subscribe()
	defer cancel()

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	docs, err := mc.catalog.List()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.SSEvent("list", toMazeResponses(docs))
	ctx.Writer.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Request.Context().Done():
			return
		case snapshot, ok := <-updates:
			if !ok {
				return
			}
			ctx.SSEvent("list", toMazeResponses(snapshot))
			ctx.Writer.Flush()
		case <-heartbeat.C:
			fmt.Fprintf(ctx.Writer, ": heartbeat\n\n")
			ctx.Writer.Flush()
		}
	}
}
