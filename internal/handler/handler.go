/**
* Name: 			handler.go
* Description: 		Gin HTTP 핸들러 공통 의존성과 라우트 등록
* Workflow: 		main 에서 Handler 생성 -> RegisterRoutes 로 인증 프록시/채팅/캘린더/스트리밍 라우트 연결
 */
package handler

import (
	"context"
	"net/http"

	"ConnexxBot_Backend/internal/methods"
	"ConnexxBot_Backend/internal/models"

	"github.com/gin-gonic/gin"
	gcal "google.golang.org/api/calendar/v3"
)

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

// OAuth 토큰 엔드포인트 프록시 (oauth.TokenClient)
type TokenProxy interface {
	Exchange(ctx context.Context, code, redirectURI, codeVerifier string) ([]byte, error)
	Revoke(ctx context.Context, token string) error
	Refresh(ctx context.Context, refreshToken string) ([]byte, error)
}

// Google Calendar 등록 (calendar.Inserter)
type EventInserter interface {
	Insert(ctx context.Context, accessToken string, ev *models.CalendarEvent, timeZone string) (*gcal.Event, error)
}

// 인덱스 준비 상태 (rag.Index)
type ReadinessChecker interface {
	Ready() bool
}

type Handler struct {
	tokens   TokenProxy
	registry *methods.Registry
	calendar EventInserter
	index    ReadinessChecker
}

// index 는 nil 가능 (RAG 비활성)
func New(tokens TokenProxy, registry *methods.Registry, calendar EventInserter, index ReadinessChecker) *Handler {
	return &Handler{tokens: tokens, registry: registry, calendar: calendar, index: index}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/healthz", h.Health)

	router.POST("/exchange-token", h.ExchangeToken)
	router.POST("/revoke-token", h.RevokeToken)
	router.POST("/refresh-token", h.RefreshToken)

	router.GET("/methods", h.ListMethods)
	for _, m := range h.registry.All() {
		router.Handle(m.HTTPMethod, m.Route, h.CallMethod(m))
	}

	router.POST("/calendar/events", h.CreateCalendarEvent)
	router.GET("/ws/call-model", h.StreamCallModel)
}

type HealthResponse struct {
	Status     string `json:"status" example:"ok"`
	IndexReady bool   `json:"indexReady" example:"true"`
}

// Health godoc
// @Summary      서버 상태 확인
// @Description  서버 가동 여부와 검색 인덱스 준비 상태를 반환합니다.
// @Tags         System
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Router       /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	ready := h.index != nil && h.index.Ready()
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", IndexReady: ready})
}
