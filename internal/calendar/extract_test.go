package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleReply = `Great, John! Here is your proposed schedule:

Monday, Wednesday and Friday mornings: 30 minutes of strength training.

{
  "title": "Strength training",
  "description": "Full body routine",
  "startTime": "20250106T070000",
  "endTime": "20250106T073000",
  "location": "Home gym",
  "recurrence": {
    "frequency": "WEEKLY",
    "days": ["MO", "WE", "FR"],
    "until": "20250331T000000"
  }
}

Is there anything else I can help you with?`

func TestExtract_ScheduleReply(t *testing.T) {
	ev, err := Extract(scheduleReply)
	require.NoError(t, err)
	assert.Equal(t, "Strength training", ev.Title)
	assert.Equal(t, "20250106T070000", ev.StartTime)
	require.NotNil(t, ev.Recurrence)
	assert.Equal(t, []string{"MO", "WE", "FR"}, ev.Recurrence.Days)
}

func TestExtract_NoEvent(t *testing.T) {
	_, err := Extract("Drink water and sleep eight hours.")
	assert.ErrorIs(t, err, ErrNoEvent)
}

func TestExtract_BrokenJSON(t *testing.T) {
	reply := `Here is your proposed schedule: {"title": "Run", "startTime": "20250106T070000", `
	_, err := Extract(reply)
	assert.ErrorIs(t, err, ErrNoEvent)
}

func TestExtract_RejectsInvalidFields(t *testing.T) {
	cases := map[string]string{
		"missing title":     `{"startTime": "20250106T070000", "endTime": "20250106T080000"}`,
		"bad timestamp":     `{"title": "Run", "startTime": "2025-01-06 07:00", "endTime": "20250106T080000"}`,
		"bad frequency":     `{"title": "Run", "startTime": "20250106T070000", "endTime": "20250106T080000", "recurrence": {"frequency": "HOURLY"}}`,
		"bad weekday":       `{"title": "Run", "startTime": "20250106T070000", "endTime": "20250106T080000", "recurrence": {"frequency": "WEEKLY", "days": ["MON"]}}`,
		"ends before start": `{"title": "Run", "startTime": "20250106T070000", "endTime": "20250106T060000"}`,
	}
	for name, block := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Extract("Here is your proposed schedule: " + block)
			assert.ErrorIs(t, err, ErrNoEvent)
		})
	}
}

func TestExtract_LastValidBlockWins(t *testing.T) {
	reply := `{"title": "Old", "startTime": "20250106T070000", "endTime": "20250106T080000"}
Here is your proposed schedule:
{"title": "First", "startTime": "20250107T070000", "endTime": "20250107T080000"}
{"title": "Second", "startTime": "20250108T070000", "endTime": "20250108T080000"}`

	ev, err := Extract(reply)
	require.NoError(t, err)
	assert.Equal(t, "Second", ev.Title)
}

func TestExtract_FallsBackToWholeReply(t *testing.T) {
	reply := `{"title": "Yoga", "startTime": "20250106T180000", "endTime": "20250106T190000"} Here is your proposed schedule: see above.`

	ev, err := Extract(reply)
	require.NoError(t, err)
	assert.Equal(t, "Yoga", ev.Title)
	assert.Nil(t, ev.Recurrence)
}
