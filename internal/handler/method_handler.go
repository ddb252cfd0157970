/**
* Name: 			method_handler.go
* Description: 		채팅 메서드 HTTP 핸들러
* Workflow: 		요청 바인딩 -> Executor 실행 -> 응답 JSON, 오류 종류별 상태 코드 매핑
 */
package handler

import (
	"errors"
	"log"
	"net/http"

	"ConnexxBot_Backend/internal/history"
	"ConnexxBot_Backend/internal/methods"
	"ConnexxBot_Backend/internal/rag"

	"github.com/gin-gonic/gin"
)

type MethodsResponse struct {
	Methods []methods.Method `json:"methods"`
}

// ListMethods godoc
// @Summary      채팅 메서드 목록
// @Description  등록된 채팅 메서드의 id, 라우트, 설명, 입력 변수 목록을 반환합니다.
// @Tags         Chat
// @Produce      json
// @Success      200 {object} handler.MethodsResponse
// @Router       /methods [get]
func (h *Handler) ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, MethodsResponse{Methods: h.registry.All()})
}

// CallMethod godoc
// @Summary      모델 호출 (call-model, call-model-rag)
// @Description  대화 기록과 사용자 프로필로 프롬프트를 만들어 Gemini 를 호출합니다.
// @Description  Message_History 는 "role^text|role^text|현재 입력" 형식이며 마지막 요소는 무시됩니다.
// @Description  응답에 유효한 캘린더 이벤트 블록이 있으면 event 와 calendarLink 가 함께 반환됩니다.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request body methods.Input true "채팅 입력"
// @Success      200 {object} methods.Result
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청 또는 대화 기록 형식 오류"
// @Failure      503 {object} handler.ErrorResponse "검색 인덱스 준비 전"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /call-model [post]
// @Router       /call-model-rag [post]
func (h *Handler) CallMethod(m methods.Method) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in methods.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		res, err := m.Executor.Execute(c.Request.Context(), in)
		if err != nil {
			status, message := methodErrorStatus(err)
			log.Printf("[ERROR] CallMethod(%s): %v", m.ID, err)
			c.JSON(status, gin.H{"error": message})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func methodErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, history.ErrMalformedHistoryEntry):
		return http.StatusBadRequest, "Malformed message history: " + err.Error()
	case errors.Is(err, rag.ErrIndexNotReady):
		return http.StatusServiceUnavailable, "Retrieval index is not ready"
	default:
		return http.StatusInternalServerError, "Failed to call model"
	}
}
