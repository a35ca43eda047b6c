package acta

import (
	"fmt"
	"strings"
	"time"
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// timestampLayouts are the date layouts that also carry a clock.
var timestampLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

var clockLayouts = append([]string{"15:04", "15:04:05"}, timestampLayouts...)

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SpanishDate renders t as "D de <mes> de YYYY".
func SpanishDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatDate renders a record date as "D de <mes> de YYYY". Empty input
// gives ""; input in no known layout is returned trimmed and unchanged.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	t, ok := parseDate(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return SpanishDate(t)
}

// FormatTime renders a clock as HH:mm with the same fallbacks as FormatDate.
func FormatTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, l := range clockLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}

// recordClock picks the record time, falling back to the clock carried by
// a full timestamp in Date.
func recordClock(r Record) string {
	if strings.TrimSpace(r.Time) != "" {
		return FormatTime(r.Time)
	}
	d := strings.TrimSpace(r.Date)
	for _, l := range timestampLayouts {
		if t, err := time.Parse(l, d); err == nil {
			return t.Format("15:04")
		}
	}
	return ""
}
