package distribution

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// defaultHour is used when text names a day but no clock time.
const defaultHour = 9

var (
	clockAmPmRE    = regexp.MustCompile(`(\d{1,2})\s*(am|pm)`)
	clockAtRE      = regexp.MustCompile(`at\s+(\d{1,2})(?::(\d{2}))?`)
	clockChineseRE = regexp.MustCompile(`(\d{1,2})[点时時]`)
)

var englishWeekdays = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

var chineseWeekdays = []struct {
	name string
	day  time.Weekday
}{
	{"周一", time.Monday},
	{"周二", time.Tuesday},
	{"周三", time.Wednesday},
	{"周四", time.Thursday},
	{"周五", time.Friday},
	{"周六", time.Saturday},
	{"周日", time.Sunday},
	{"星期一", time.Monday},
	{"星期二", time.Tuesday},
	{"星期三", time.Wednesday},
	{"星期四", time.Thursday},
	{"星期五", time.Friday},
	{"星期六", time.Saturday},
	{"星期日", time.Sunday},
}

// ParseTime resolves a natural time expression against the wall clock.
func ParseTime(text string) (time.Time, bool) {
	return ParseTimeAt(text, time.Now())
}

// ParseTimeAt resolves relative dates and clock times in text against a
// reference moment. The date part and the hour part are independent:
// "tomorrow 3pm" combines both, "tomorrow" alone defaults to 09:00, and
// "at 15:30" alone means today.
func ParseTimeAt(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	date, dateOK := parseDate(lower, text, now)
	hour, minute, clockOK := parseClock(lower, text)
	if !dateOK && !clockOK {
		return time.Time{}, false
	}
	if !dateOK {
		date = now
	}
	if !clockOK {
		hour, minute = defaultHour, 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location()), true
}

// parseDate finds the day a time expression refers to. Relative words
// are checked before weekday names, and a weekday always means the next
// occurrence (one to seven days out).
func parseDate(lower, raw string, now time.Time) (time.Time, bool) {
	switch {
	case strings.Contains(lower, "tomorrow") || strings.Contains(raw, "明天"):
		return now.AddDate(0, 0, 1), true
	case strings.Contains(lower, "today") || strings.Contains(raw, "今天"):
		return now, true
	case strings.Contains(raw, "后天"):
		return now.AddDate(0, 0, 2), true
	}

	for _, wd := range englishWeekdays {
		if strings.Contains(lower, wd.name) {
			return now.AddDate(0, 0, daysUntil(now.Weekday(), wd.day)), true
		}
	}
	for _, wd := range chineseWeekdays {
		if strings.Contains(raw, wd.name) {
			return now.AddDate(0, 0, daysUntil(now.Weekday(), wd.day)), true
		}
	}

	if strings.Contains(raw, "下周") {
		return now.AddDate(0, 0, 7), true
	}
	return time.Time{}, false
}

// daysUntil is the distance to the next occurrence of target, never 0.
func daysUntil(from, target time.Weekday) int {
	d := (int(target) - int(from) + 7) % 7
	if d == 0 {
		d = 7
	}
	return d
}

// parseClock finds an explicit or implied hour. An explicit clock value
// overrides a day-period word.
func parseClock(lower, raw string) (hour, minute int, ok bool) {
	if m := clockAmPmRE.FindStringSubmatch(lower); m != nil {
		h, err := strconv.Atoi(m[1])
		if err == nil && h >= 1 && h <= 12 {
			if m[2] == "pm" && h != 12 {
				h += 12
			} else if m[2] == "am" && h == 12 {
				h = 0
			}
			return h, 0, true
		}
	}

	if m := clockAtRE.FindStringSubmatch(lower); m != nil {
		h, err := strconv.Atoi(m[1])
		if err == nil && h <= 23 {
			mins := 0
			if m[2] != "" {
				if v, err := strconv.Atoi(m[2]); err == nil && v <= 59 {
					mins = v
				}
			}
			return h, mins, true
		}
	}

	if m := clockChineseRE.FindStringSubmatch(raw); m != nil {
		h, err := strconv.Atoi(m[1])
		if err == nil && h <= 23 {
			return h, 0, true
		}
	}

	switch {
	case strings.Contains(raw, "早上") || strings.Contains(raw, "上午"):
		return 9, 0, true
	case strings.Contains(raw, "中午"):
		return 12, 0, true
	case strings.Contains(raw, "下午"):
		return 14, 0, true
	case strings.Contains(raw, "晚上"):
		return 19, 0, true
	}

	return 0, 0, false
}
