/**
* Name: 			history.go
* Description: 		직렬화된 대화 기록 파싱
* Workflow: 		"|" 로 턴 분리, 마지막 요소(현재 입력) 제거, 첫 "^" 로 역할/본문 분리
 */

package history

import (
	"errors"
	"fmt"
	"strings"

	"ConnexxBot_Backend/internal/models"
)

const (
	TurnSeparator = "|"
	RoleSeparator = "^"
)

var ErrMalformedHistoryEntry = errors.New("malformed history entry")

// 잘못된 턴 요소의 위치와 원인
type MalformedEntryError struct {
	Index  int
	Entry  string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("history entry %d (%q): %s", e.Index, e.Entry, e.Reason)
}

func (e *MalformedEntryError) Unwrap() error { return ErrMalformedHistoryEntry }

// raw 기록을 오래된 순서의 턴 목록으로 변환
// 마지막 요소는 호출 규약상 현재 입력이므로 기록에서 제외
func Parse(raw string) ([]models.Turn, error) {
	elements := strings.Split(raw, TurnSeparator)
	elements = elements[:len(elements)-1]

	turns := make([]models.Turn, 0, len(elements))
	for i, element := range elements {
		tag, text, found := strings.Cut(element, RoleSeparator)
		if !found {
			return nil, &MalformedEntryError{Index: i, Entry: element, Reason: "missing role separator"}
		}
		role, ok := models.RoleFromTag(tag)
		if !ok {
			return nil, &MalformedEntryError{Index: i, Entry: element, Reason: fmt.Sprintf("unknown role tag %q", tag)}
		}
		turns = append(turns, models.Turn{Role: role, Text: text})
	}
	return turns, nil
}

// Parse 의 역변환, input 은 마지막 요소로 붙음
// 본문이나 input 에 TurnSeparator 가 있으면 되돌릴 수 없으므로 ErrMalformedHistoryEntry
func Format(turns []models.Turn, input string) (string, error) {
	var b strings.Builder
	for i, turn := range turns {
		if strings.Contains(turn.Text, TurnSeparator) {
			return "", &MalformedEntryError{Index: i, Entry: turn.Text, Reason: "text contains turn separator"}
		}
		b.WriteString(turn.Role.Tag())
		b.WriteString(RoleSeparator)
		b.WriteString(turn.Text)
		b.WriteString(TurnSeparator)
	}
	if strings.Contains(input, TurnSeparator) {
		return "", &MalformedEntryError{Index: len(turns), Entry: input, Reason: "input contains turn separator"}
	}
	b.WriteString(input)
	return b.String(), nil
}
