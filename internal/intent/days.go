package intent

import (
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ResolveDays maps free-text day references to a closed [start, end] date
// interval anchored at now. Recognized: "today", "tomorrow", weekday names
// (the coming occurrence, today included), "weekend", and "X and Y" pairs.
// Unrecognized phrases are skipped; if nothing resolves the interval is
// [today, today].
func ResolveDays(phrases []string, now time.Time) (start, end time.Time) {
	today := midnightUTC(now)

	var dates []time.Time
	for _, phrase := range phrases {
		for _, part := range splitPhrase(phrase) {
			dates = append(dates, resolvePart(part, today)...)
		}
	}

	if len(dates) == 0 {
		return today, today
	}

	start, end = dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return start, end
}

func splitPhrase(phrase string) []string {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	parts := strings.Split(phrase, " and ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func resolvePart(part string, today time.Time) []time.Time {
	switch part {
	case "today", "tonight", "now":
		return []time.Time{today}
	case "tomorrow":
		return []time.Time{today.AddDate(0, 0, 1)}
	case "weekend", "this weekend", "the weekend":
		sat := nextWeekday(today, time.Saturday)
		return []time.Time{sat, sat.AddDate(0, 0, 1)}
	}

	part = strings.TrimPrefix(part, "this ")
	part = strings.TrimPrefix(part, "on ")
	if wd, ok := weekdays[part]; ok {
		return []time.Time{nextWeekday(today, wd)}
	}
	return nil
}

// nextWeekday returns the coming occurrence of wd, counting today.
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	offset := (int(wd) - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, offset)
}

func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
