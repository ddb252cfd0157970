package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"ConnexxBot_Backend/internal/methods"
	"ConnexxBot_Backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// 서버 -> 클라이언트 프레임
type StreamFrame struct {
	Type         string                `json:"type" example:"chunk"`
	Text         string                `json:"text,omitempty"`
	Reply        string                `json:"reply,omitempty"`
	Event        *models.CalendarEvent `json:"event,omitempty"`
	CalendarLink string                `json:"calendarLink,omitempty"`
	Error        string                `json:"error,omitempty"`
}

const (
	FrameChunk = "chunk"
	FrameDone  = "done"
	FrameError = "error"
)

// StreamCallModel godoc
// @Summary      모델 응답 스트리밍 WebSocket 연결
// @Description  call-model 과 같은 입력을 WebSocket 텍스트 프레임으로 받아 응답을 조각 단위로 스트리밍합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴을 사용하여 이 엔드포인트에 연결해야 합니다.
// @Description  서버 프레임: `{"type":"chunk","text":...}` 반복 후 `{"type":"done","reply":...,"event":...}`.
// @Description  오류 시 `{"type":"error","error":...}` 를 보내고 연결은 유지됩니다.
// @Tags         WebSocket (Chat)
// @Param        method query     string  false  "메서드 id (기본 call-model)"
// @Success      101    {string}  string  "101 Switching Protocols (WebSocket으로 프로토콜 전환 성공)"
// @Failure      400    {object}  handler.ErrorResponse "알 수 없는 메서드"
// @Router       /ws/call-model [get]
func (h *Handler) StreamCallModel(c *gin.Context) {
	methodID := c.DefaultQuery("method", "call-model")
	m, ok := h.registry.Lookup(methodID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown method"})
		return
	}

	// WebSocket 연결 업그레이드과 종료
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("StreamCallModel(): failed to upgrade to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log.Printf("StreamCallModel(): session %s started (method %s)", sessionID, m.ID)
	manageStreamSession(c.Request.Context(), conn, m, sessionID)
	log.Printf("StreamCallModel(): session %s ended", sessionID)
}

func manageStreamSession(ctx context.Context, conn *websocket.Conn, m methods.Method, sessionID string) {
ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("manageStreamSession(): error reading message in session %s: %v", sessionID, err)
			}
			break ReadLoop
		}
		if messageType != websocket.TextMessage {
			log.Printf("manageStreamSession(): unsupported message type in session %s: %d", sessionID, messageType)
			continue
		}

		var in methods.Input
		if err := json.Unmarshal(message, &in); err != nil {
			if err := conn.WriteJSON(StreamFrame{Type: FrameError, Error: "Invalid request"}); err != nil {
				break ReadLoop
			}
			continue
		}

		res, err := m.Executor.Stream(ctx, in, func(chunk string) error {
			return conn.WriteJSON(StreamFrame{Type: FrameChunk, Text: chunk})
		})
		if err != nil {
			_, message := methodErrorStatus(err)
			log.Printf("[ERROR] manageStreamSession(): session %s: %v", sessionID, err)
			if err := conn.WriteJSON(StreamFrame{Type: FrameError, Error: message}); err != nil {
				break ReadLoop
			}
			continue
		}

		done := StreamFrame{Type: FrameDone, Reply: res.Reply, Event: res.Event, CalendarLink: res.CalendarLink}
		if err := conn.WriteJSON(done); err != nil {
			log.Printf("manageStreamSession(): error sending message in session %s: %v", sessionID, err)
			break ReadLoop
		}
	}
}
