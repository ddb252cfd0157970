/**
* Name: 			insert.go
* Description: 		Google Calendar API 로 이벤트 등록
* Workflow: 		클라이언트가 받은 access token 으로 정적 토큰 소스 구성 -> events.insert
 */

package calendar

import (
	"context"
	"fmt"
	"log"
	"time"
	_ "time/tzdata"

	"ConnexxBot_Backend/internal/config"
	"ConnexxBot_Backend/internal/models"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// 토큰은 저장하지 않고 요청마다 서비스 생성
type Inserter struct {
	calendarID      string
	defaultTimeZone string
	opts            []option.ClientOption
}

// opts 는 엔드포인트 교체 등 추가 클라이언트 옵션
func NewInserter(cfg config.CalendarConfig, opts ...option.ClientOption) *Inserter {
	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	tz := cfg.DefaultTimeZone
	if tz == "" {
		tz = "UTC"
	}
	return &Inserter{calendarID: calendarID, defaultTimeZone: tz, opts: opts}
}

// 업스트림 오류는 *googleapi.Error 그대로 반환
func (in *Inserter) Insert(ctx context.Context, accessToken string, ev *models.CalendarEvent, timeZone string) (*gcal.Event, error) {
	if err := Validate(ev); err != nil {
		return nil, fmt.Errorf("Inserter.Insert(): invalid event: %w", err)
	}
	if timeZone == "" {
		timeZone = in.defaultTimeZone
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("Inserter.Insert(): unknown time zone %q: %w", timeZone, err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, in.opts...)
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("Inserter.Insert(): failed to create calendar service: %w", err)
	}

	event, err := toAPIEvent(ev, loc)
	if err != nil {
		return nil, err
	}
	created, err := svc.Events.Insert(in.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	log.Printf("Inserter.Insert(): created event %s on %s", created.Id, in.calendarID)
	return created, nil
}

func toAPIEvent(ev *models.CalendarEvent, loc *time.Location) (*gcal.Event, error) {
	start, err := time.ParseInLocation(models.CalendarTimeLayout, ev.StartTime, loc)
	if err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation(models.CalendarTimeLayout, ev.EndTime, loc)
	if err != nil {
		return nil, err
	}

	event := &gcal.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: loc.String()},
	}
	if rule := RRuleIn(ev, loc); rule != "" {
		event.Recurrence = []string{rule}
	}
	return event, nil
}
