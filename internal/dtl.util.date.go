package internal

import (
	"strconv"
	"strings"
	"time"
)

// formatDate formats t using Django/PHP style format characters. A
// backslash escapes the next character; unknown characters are copied.
func formatDate(format string, t time.Time) string {
	var sb strings.Builder
	escaped := false

	for _, ch := range format {
		if escaped {
			sb.WriteRune(ch)
			escaped = false
			continue
		}
		if ch == CharBackslash {
			escaped = true
			continue
		}
		sb.WriteString(formatDateChar(ch, t))
	}
	return sb.String()
}

func formatDateChar(ch rune, t time.Time) string {
	switch ch {
	case 'a':
		if t.Hour() < 12 {
			return DateAnteMeridiem
		}
		return DatePostMeridiem
	case 'A':
		return t.Format(LayoutPeriod)
	case 'b':
		return strings.ToLower(t.Format(LayoutMonthShort))
	case 'c':
		return t.Format(LayoutISO8601Micro)
	case 'd':
		return t.Format(LayoutDay2)
	case 'D':
		return t.Format(LayoutWeekdayShort)
	case 'e', 'T':
		return t.Format(LayoutZoneName)
	case 'f':
		return hourMinute12(t)
	case 'F':
		return t.Format(LayoutMonthLong)
	case 'g':
		return t.Format(LayoutHour12)
	case 'G':
		return strconv.Itoa(t.Hour())
	case 'h':
		return t.Format(LayoutHour12Pad)
	case 'H':
		return t.Format(LayoutHour24Pad)
	case 'i':
		return t.Format(LayoutMinutePad)
	case 'j':
		return strconv.Itoa(t.Day())
	case 'l':
		return t.Format(LayoutWeekdayLong)
	case 'L':
		if isLeap(t.Year()) {
			return DateLeapTrue
		}
		return DateLeapFalse
	case 'm':
		return t.Format(LayoutMonthPad)
	case 'M':
		return t.Format(LayoutMonthShort)
	case 'n':
		return strconv.Itoa(int(t.Month()))
	case 'N':
		return apMonths[t.Month()-1]
	case 'O':
		return t.Format(LayoutZoneOffset)
	case 'P':
		return timeWithPeriod(t)
	case 'r':
		return t.Format(time.RFC1123Z)
	case 's':
		return t.Format(LayoutSecondPad)
	case 'S':
		return ordinalSuffix(t.Day())
	case 't':
		return strconv.Itoa(daysIn(t.Month(), t.Year()))
	case 'u':
		return strconv.Itoa(t.Nanosecond() / int(time.Microsecond))
	case 'U':
		return strconv.FormatInt(t.Unix(), IntBase10)
	case 'w':
		return strconv.Itoa(int(t.Weekday()))
	case 'W':
		_, week := t.ISOWeek()
		return strconv.Itoa(week)
	case 'y':
		return t.Format(LayoutYear2)
	case 'Y':
		return strconv.Itoa(t.Year())
	case 'z':
		return strconv.Itoa(t.YearDay())
	default:
		return string(ch)
	}
}

// hourMinute12 renders "1" or "1:30" (minutes omitted when zero)
func hourMinute12(t time.Time) string {
	if t.Minute() == 0 {
		return t.Format(LayoutHour12)
	}
	return t.Format(LayoutHourMinute12)
}

// timeWithPeriod renders "1 a.m.", "1:30 p.m.", "midnight" or "noon"
func timeWithPeriod(t time.Time) string {
	if t.Minute() == 0 && t.Hour() == 0 {
		return DateMidnight
	}
	if t.Minute() == 0 && t.Hour() == 12 {
		return DateNoon
	}
	return hourMinute12(t) + DateWordSpace + formatDateChar('a', t)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return OrdinalTh
	}
	switch day % 10 {
	case 1:
		return OrdinalSt
	case 2:
		return OrdinalNd
	case 3:
		return OrdinalRd
	}
	return OrdinalTh
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
