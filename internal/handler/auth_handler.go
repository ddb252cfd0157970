/**
* Name: 			auth_handler.go
* Description: 		캘린더 연동용 OAuth 토큰 프록시 핸들러
* Workflow: 		필수 값 확인 -> 토큰 엔드포인트 호출 -> 응답 JSON 그대로 전달, 실패 시 업스트림 상태 코드 전달
 */
package handler

import (
	"errors"
	"log"
	"net/http"

	"ConnexxBot_Backend/internal/oauth"

	"github.com/gin-gonic/gin"
)

// /exchange-token 요청 바디
type ExchangeTokenRequest struct {
	Code         string `json:"code" example:"4/0AX4XfWh..."`
	RedirectURI  string `json:"redirectUri" example:"com.connexx.app:/oauth2redirect"`
	CodeVerifier string `json:"codeVerifier" example:"dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"`
}

// /revoke-token 요청 바디
type RevokeTokenRequest struct {
	Token string `json:"token" example:"ya29.a0AfH6SM..."`
}

// /refresh-token 요청 바디
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" example:"1//0gLx..."`
}

type RevokeSuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// ExchangeToken godoc
// @Summary      인가 코드 -> 토큰 교환
// @Description  PKCE 인가 코드를 Google 토큰 엔드포인트에서 access/refresh 토큰으로 교환합니다.
// @Description  업스트림 응답 JSON 을 그대로 반환합니다.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.ExchangeTokenRequest true "인가 코드 교환 요청"
// @Success      200 {object} map[string]interface{} "토큰 JSON (업스트림 그대로)"
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /exchange-token [post]
func (h *Handler) ExchangeToken(c *gin.Context) {
	var req ExchangeTokenRequest
	// 바디 파싱 실패는 필수 값 누락으로 처리
	_ = c.ShouldBindJSON(&req)

	if req.Code == "" || req.RedirectURI == "" || req.CodeVerifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	body, err := h.tokens.Exchange(c.Request.Context(), req.Code, req.RedirectURI, req.CodeVerifier)
	if err != nil {
		log.Printf("[ERROR] ExchangeToken(): token exchange error: %v", err)
		relayUpstreamError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// RevokeToken godoc
// @Summary      토큰 폐기
// @Description  access 또는 refresh 토큰을 Google 에서 폐기합니다.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.RevokeTokenRequest true "폐기할 토큰"
// @Success      200 {object} handler.RevokeSuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /revoke-token [post]
func (h *Handler) RevokeToken(c *gin.Context) {
	var req RevokeTokenRequest
	_ = c.ShouldBindJSON(&req)

	if req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), req.Token); err != nil {
		log.Printf("[ERROR] RevokeToken(): token revocation error: %v", err)
		relayUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, RevokeSuccessResponse{Success: true})
}

// RefreshToken godoc
// @Summary      access 토큰 갱신
// @Description  refresh 토큰으로 새 access 토큰을 발급받습니다. 업스트림 응답 JSON 을 그대로 반환합니다.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.RefreshTokenRequest true "refresh 토큰"
// @Success      200 {object} map[string]interface{} "토큰 JSON (업스트림 그대로)"
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /refresh-token [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing refresh token"})
		return
	}

	body, err := h.tokens.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		log.Printf("[ERROR] RefreshToken(): token refresh error: %v", err)
		relayUpstreamError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// 업스트림 상태 코드와 "error" 값 전달, 없으면 500 / "Internal server error"
func relayUpstreamError(c *gin.Context, err error) {
	var upstream *oauth.UpstreamError
	if !errors.As(err, &upstream) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := upstream.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	value := upstream.ErrorValue()
	if value == nil || value == "" {
		value = "Internal server error"
	}
	c.JSON(status, gin.H{"error": value})
}
