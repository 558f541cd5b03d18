package playapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mazehub/mazehub-api/game/player"
	"github.com/mazehub/mazehub-api/service/i"
)

// Allows WebSocket upgrade from any origin; the token check below is
// the actual gate.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// channelMessage is the inbound envelope on the play channel.
type channelMessage struct {
	Action    string `json:"action"`    // "move" or "state"
	Direction string `json:"direction"` // for "move"
}

// channelFrame is the outbound envelope.
type channelFrame struct {
	Action string `json:"action"` // "state" or "error"
	Error  string `json:"error,omitempty"`
	*SessionResponse
}

// channel upgrades to a WebSocket and drives one play session over it.
// Authentication happens before the upgrade, from the token query
// parameter.
func (pc *PlayController) channel(ctx *gin.Context) {
	claims, err := pc.tokenizer.Decode(ctx.Query("token"))
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	idString, ok := claims["userID"].(string)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	playerID, err := uuid.Parse(idString)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	// Check the session before switching protocols so dead ids fail
	// with a plain HTTP status.
	snap, err := pc.manager.State(id, playerID)
	if err != nil {
		pc.sessionError(ctx, err)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// First frame is the current state so the client starts in sync.
	writeState(conn, snap)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break // client disconnected or error
		}

		var msg channelMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			writeError(conn, "malformed message")
			continue
		}

		switch msg.Action {
		case "state":
			snap, err := pc.manager.State(id, playerID)
			if err != nil {
				writeError(conn, err.Error())
				if errors.Is(err, i.ErrSessionNotFound) {
					return
				}
				continue
			}
			writeState(conn, snap)

		case "move":
			direction, err := player.ParseDirection(msg.Direction)
			if err != nil {
				writeError(conn, err.Error())
				continue
			}

			snap, err := pc.manager.Move(id, playerID, direction)
			if err != nil {
				writeError(conn, err.Error())
				if errors.Is(err, i.ErrSessionNotFound) {
					return
				}
				continue
			}
			writeState(conn, snap)

		default:
			writeError(conn, "unknown action")
		}
	}
}

func writeState(conn *websocket.Conn, snap i.PlaySnapshot) {
	frame := channelFrame{
		Action:          "state",
		SessionResponse: toSessionResponse(snap),
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func writeError(conn *websocket.Conn, message string) {
	data, err := json.Marshal(channelFrame{Action: "error", Error: message})
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}
