package calendar

import (
	"net/url"
	"strings"
	"time"

	"ConnexxBot_Backend/internal/models"
)

const templateBaseURL = "https://calendar.google.com/calendar/render"

// RFC 5545 반복 규칙, 반복이 없으면 빈 문자열
// until 을 UTC 벽시계 시각으로 해석
func RRule(ev *models.CalendarEvent) string {
	return RRuleIn(ev, time.UTC)
}

// until 을 loc 의 벽시계 시각으로 해석해 UTC (…Z) 로 변환
func RRuleIn(ev *models.CalendarEvent, loc *time.Location) string {
	if ev == nil || ev.Recurrence == nil {
		return ""
	}
	r := ev.Recurrence

	parts := []string{"FREQ=" + r.Frequency}
	if len(r.Days) > 0 {
		parts = append(parts, "BYDAY="+strings.Join(r.Days, ","))
	}
	if r.Until != "" {
		parts = append(parts, "UNTIL="+untilUTC(r.Until, loc))
	}
	return "RRULE:" + strings.Join(parts, ";")
}

func untilUTC(until string, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(models.CalendarTimeLayout, until, loc)
	if err != nil {
		return until + "Z"
	}
	return t.UTC().Format(models.CalendarTimeLayout) + "Z"
}

// OAuth 연동 없이 사용자가 직접 저장할 수 있는 "캘린더에 추가" 링크
func TemplateLink(ev *models.CalendarEvent) string {
	if ev == nil {
		return ""
	}
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", ev.Title)
	q.Set("dates", ev.StartTime+"/"+ev.EndTime)
	if ev.Description != "" {
		q.Set("details", ev.Description)
	}
	if ev.Location != "" {
		q.Set("location", ev.Location)
	}
	if rule := RRule(ev); rule != "" {
		q.Set("recur", rule)
	}
	return templateBaseURL + "?" + q.Encode()
}
