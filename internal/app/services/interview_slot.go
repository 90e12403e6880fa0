package services

import (
	"strings"
	"time"

	"github.com/madarij/center/internal/app/models/dto"
)

// SlotPolicy describes when interviews are held: on Weekdays, at Hour:Minute
// local time in Location. Weekdays are listed in tie-break order.
type SlotPolicy struct {
	Weekdays []time.Weekday
	Hour     int
	Minute   int
	Label    string
	Location *time.Location
}

// daysUntil counts days from today to the next occurrence of day.
// Today itself never counts, so the result is in [1, 7].
func daysUntil(today, day time.Weekday) int {
	n := (int(day) - int(today) + 7) % 7
	if n == 0 {
		return 7
	}
	return n
}

// NextInterviewSlot returns the nearest interview date strictly after today's
// date. On a tie the weekday listed first wins.
func NextInterviewSlot(today time.Time, policy SlotPolicy) dto.InterviewSlot {
	loc := policy.Location
	if loc == nil {
		loc = time.UTC
	}
	local := today.In(loc)

	best, bestDays := time.Weekday(-1), 8
	for _, wd := range policy.Weekdays {
		if d := daysUntil(local.Weekday(), wd); d < bestDays {
			best, bestDays = wd, d
		}
	}
	if best < 0 {
		return dto.InterviewSlot{}
	}

	y, m, d := local.Date()
	return dto.InterviewSlot{
		Date:      time.Date(y, m, d+bestDays, policy.Hour, policy.Minute, 0, 0, loc),
		DayOfWeek: strings.ToLower(best.String()),
		TimeSlot:  policy.Label,
		DaysAhead: bestDays,
	}
}
