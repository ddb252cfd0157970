/**
* Name: 			prompt.go
* Description: 		모델 호출용 프롬프트 조립
* Workflow: 		프로필/날짜를 시스템 지시문에 삽입, (선택) 검색 문서 추가, 기록과 새 입력 연결
 */

package prompt

import (
	"fmt"
	"strings"
	"time"

	"ConnexxBot_Backend/internal/models"
)

// 모델에 전달되는 구조화된 프롬프트
type Prompt struct {
	System string        `json:"system"`
	Turns  []models.Turn `json:"turns"`
	Input  string        `json:"input"`
}

// 날짜는 조립 시점(now)에서 한 번만 계산
func Assemble(profile models.UserProfile, now time.Time, turns []models.Turn, input string, snippets []string) Prompt {
	return Prompt{
		System: SystemText(profile, now, snippets),
		Turns:  turns,
		Input:  input,
	}
}

func SystemText(profile models.UserProfile, now time.Time, snippets []string) string {
	year, month, day := now.Date()
	system := fmt.Sprintf(systemTemplate,
		profile.Name,
		profile.Age,
		profile.HeightFeet,
		profile.HeightInches,
		profile.Weight,
		int(month),
		day,
		year,
	)
	if len(snippets) == 0 {
		return system
	}
	return system + "\n" + contextHeader + strings.Join(snippets, "\n")
}
