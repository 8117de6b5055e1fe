package utils

import (
	"strings"
	"time"
	_ "time/tzdata" // fallback sessions need exchange zones

	"github.com/scmhub/calendar"
)

// TradingCalendar answers market-hours questions with scmhub/calendar, or a
// weekday session when the library has no calendar for the market.
type TradingCalendar struct {
	MIC      string
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
	session  session
}

// -----------------------------------------------------------------------------

// MicForSymbol maps "2330.TW" to "xtai"; unsuffixed symbols map to DefaultMIC.
func MicForSymbol(symbol string) string {
	i := strings.LastIndex(symbol, ".")
	if i < 0 {
		return DefaultMIC
	}
	if mic, ok := suffixMIC[strings.ToUpper(symbol[i+1:])]; ok {
		return mic
	}
	return DefaultMIC
}

// -----------------------------------------------------------------------------

func GetCalendar(symbol string) *TradingCalendar {
	mic := MicForSymbol(symbol)

	if cal := calendar.GetCalendar(mic); cal != nil {
		return &TradingCalendar{MIC: mic, Calendar: cal, Timezone: cal.Loc}
	}
	return NewFallbackCalendar(mic)
}

// -----------------------------------------------------------------------------

// NewFallbackCalendar builds a Monday-Friday calendar for mic.
func NewFallbackCalendar(mic string) *TradingCalendar {
	s, ok := fallbackSessions[mic]
	if !ok {
		s = fallbackSessions[DefaultMIC]
	}

	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &TradingCalendar{MIC: mic, Fallback: true, Timezone: loc, session: s}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	// Normalize to timezone if available
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if !tc.Fallback {
		return tc.Calendar.IsOpen(t)
	}

	if !tc.IsTradingDay(t) {
		return false
	}

	minutes := t.Hour()*60 + t.Minute()
	open := tc.session.OpenHour*60 + tc.session.OpenMinute
	closing := tc.session.CloseHour*60 + tc.session.CloseMinute
	return minutes >= open && minutes < closing
}
