package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"ConnexxBot_Backend/internal/calendar"
	"ConnexxBot_Backend/internal/models"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/googleapi"
)

// /calendar/events 요청 바디
type CreateEventRequest struct {
	AccessToken string                `json:"accessToken" binding:"required" example:"ya29.a0AfH6SM..."`
	Event       *models.CalendarEvent `json:"event" binding:"required"`
	TimeZone    string                `json:"timeZone" example:"America/New_York"`
}

type CreateEventResponse struct {
	ID       string `json:"id" example:"7cbh8rpc10lrc0ckih9tafss99"`
	HTMLLink string `json:"htmlLink" example:"https://www.google.com/calendar/event?eid=..."`
}

// CreateCalendarEvent godoc
// @Summary      캘린더 이벤트 등록
// @Description  채팅 응답에서 추출한 이벤트를 사용자의 Google Calendar(primary)에 등록합니다.
// @Description  accessToken 은 /exchange-token 으로 발급받은 토큰입니다.
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        request body handler.CreateEventRequest true "등록할 이벤트"
// @Success      200 {object} handler.CreateEventResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse "Google 인증 실패"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /calendar/events [post]
func (h *Handler) CreateCalendarEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := calendar.Validate(req.Event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event: " + err.Error()})
		return
	}
	if req.TimeZone != "" {
		if _, err := time.LoadLocation(req.TimeZone); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown time zone"})
			return
		}
	}

	created, err := h.calendar.Insert(c.Request.Context(), req.AccessToken, req.Event, req.TimeZone)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code != 0 {
			log.Printf("[WARN] CreateCalendarEvent(): calendar API returned %d: %s", apiErr.Code, apiErr.Message)
			c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		log.Printf("[ERROR] CreateCalendarEvent(): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, CreateEventResponse{ID: created.Id, HTMLLink: created.HtmlLink})
}
