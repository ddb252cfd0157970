package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// 시스템 프롬프트에 그대로 삽입되는 사용자 프로필, 검증 없음
type UserProfile struct {
	Name         FreeText `json:"Name"`
	Age          FreeText `json:"Age"`
	HeightFeet   FreeText `json:"Height_Feet"`
	HeightInches FreeText `json:"Height_Inches"`
	Weight       FreeText `json:"Weight"`
}

// JSON 문자열과 숫자를 모두 받아 원문 그대로 보존하는 텍스트
type FreeText string

func (f *FreeText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FreeText(s)
		return nil
	}
	// 숫자, bool 등은 리터럴 그대로
	*f = FreeText(strings.TrimSpace(string(data)))
	return nil
}

func (f FreeText) String() string { return string(f) }
