package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/forkful/forkful-backend/internal/middleware"
	"github.com/forkful/forkful-backend/internal/service"
	"github.com/forkful/forkful-backend/internal/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler owns the save-selection channel: clients submit a
// SaveRecipeMessage and receive a single textual reply per message. Failures
// such as an unknown batch are reported in the reply text, because the
// channel is message-based rather than request/response.
type WSHandler struct {
	workflow  *service.SaveWorkflow
	validator middleware.TokenValidator
	log       zerolog.Logger
}

// NewWSHandler creates a new WSHandler instance.
func NewWSHandler(workflow *service.SaveWorkflow, validator middleware.TokenValidator, log zerolog.Logger) *WSHandler {
	return &WSHandler{workflow: workflow, validator: validator, log: log}
}

// SaveRecipes handles GET /ws/save-recipes. The token travels as a query
// parameter because browsers cannot set headers on WebSocket upgrades.
func (h *WSHandler) SaveRecipes(c *gin.Context) {
	claims, err := h.validator.ValidateToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var msg types.SaveRecipeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}

		// The creator is always the authenticated session, never the payload.
		msg.UserID = claims.UserID

		reply := h.workflow.HandleSaveSelection(c.Request.Context(), msg)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			h.log.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}
