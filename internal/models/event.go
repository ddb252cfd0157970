package models

// 어시스턴트 응답 끝에 붙는 캘린더 이벤트 JSON 블록
type CalendarEvent struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	StartTime   string      `json:"startTime" validate:"required,calstamp"`
	EndTime     string      `json:"endTime" validate:"required,calstamp"`
	Location    string      `json:"location"`
	Recurrence  *Recurrence `json:"recurrence,omitempty" validate:"omitempty"`
}

type Recurrence struct {
	Frequency string   `json:"frequency" validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	Days      []string `json:"days" validate:"dive,oneof=MO TU WE TH FR SA SU"`
	Until     string   `json:"until" validate:"omitempty,calstamp"`
}

// 이벤트 타임스탬프 포맷 (YYYYMMDDTHHMMSS)
const CalendarTimeLayout = "20060102T150405"
