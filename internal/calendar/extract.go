/**
* Name: 			extract.go
* Description: 		어시스턴트 응답에서 캘린더 이벤트 JSON 블록 추출
* Workflow: 		트리거 문구 이후 구간 우선 탐색 -> '{' 위치마다 디코딩 시도 -> 스키마 검증 -> 마지막 유효 블록 반환
 */

package calendar

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"ConnexxBot_Backend/internal/models"
	"ConnexxBot_Backend/internal/prompt"

	"github.com/go-playground/validator/v10"
)

var ErrNoEvent = errors.New("no calendar event in reply")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// YYYYMMDDTHHMMSS
	if err := v.RegisterValidation("calstamp", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.CalendarTimeLayout, fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// 응답에 이벤트 블록이 없거나 모두 깨져 있으면 ErrNoEvent
// 일정 제안이 아닌 일반 응답에서도 호출되므로 실패는 정상 흐름
func Extract(reply string) (*models.CalendarEvent, error) {
	if i := strings.LastIndex(reply, prompt.ScheduleTrigger); i >= 0 {
		if ev := lastValid(reply[i+len(prompt.ScheduleTrigger):]); ev != nil {
			return ev, nil
		}
	}
	if ev := lastValid(reply); ev != nil {
		return ev, nil
	}
	return nil, ErrNoEvent
}

func lastValid(text string) *models.CalendarEvent {
	var found *models.CalendarEvent
	for offset := 0; offset < len(text); {
		i := strings.IndexByte(text[offset:], '{')
		if i < 0 {
			break
		}
		start := offset + i
		offset = start + 1

		var ev models.CalendarEvent
		if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&ev); err != nil {
			continue
		}
		if Validate(&ev) != nil {
			continue
		}
		found = &ev
	}
	return found
}

// 스키마 + 시작/종료 순서 검사
func Validate(ev *models.CalendarEvent) error {
	if ev == nil {
		return ErrNoEvent
	}
	if err := validate.Struct(ev); err != nil {
		return err
	}
	// 같은 길이의 고정 포맷이라 문자열 비교로 충분
	if ev.EndTime < ev.StartTime {
		return errors.New("event ends before it starts")
	}
	return nil
}
