package utils

import (
	"time"

	"portfolio-observer/src/logger"
	"portfolio-observer/src/models"

	"github.com/scmhub/calendar"
)

// -----------------------------------------------------------------------------
// TradingWindow — the A-share trading clock, recomputed per call.
//
// Sessions: 09:30-11:30 and 13:00-15:00 local time (09:30 and 11:30 count,
// 15:00 does not). Weekends never trade; exchange holidays come from the
// XSHG calendar when available, with a Mon-Fri fallback otherwise.
// -----------------------------------------------------------------------------

const (
	morningOpen    = 9*60 + 30  // minutes since midnight
	morningClose   = 11*60 + 30 // last included minute
	afternoonOpen  = 13 * 60
	afternoonClose = 15 * 60 // first excluded minute

	// Off-hours wake policies.
	PolicyReschedule = "reschedule"
	PolicySuspend    = "suspend"

	// "Do not auto-refresh" sentinel for the suspend policy.
	suspendDuration = 365 * 24 * time.Hour
)

type TradingWindow struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location

	Interval       time.Duration
	OffHoursPolicy string
	Logger         *logger.Logger
}

// -----------------------------------------------------------------------------

func NewTradingWindow(cfg *models.MConfig, log *logger.Logger) *TradingWindow {
	loc, err := time.LoadLocation(cfg.Refresh.Timezone)
	if err != nil {
		log.Warning("Failed to load timezone '%s': %v. Using local time.", cfg.Refresh.Timezone, err)
		loc = time.Local
	}

	tw := &TradingWindow{
		Timezone:       loc,
		Interval:       time.Duration(cfg.Refresh.IntervalSeconds) * time.Second,
		OffHoursPolicy: cfg.Refresh.OffHoursPolicy,
		Logger:         log,
	}

	// Shanghai exchange calendar by MIC code (ISO 10383); holiday-aware
	// trading-day checks. Session minutes stay hardcoded above because the
	// lunch break matters here.
	cal := calendar.GetCalendar("xshg")
	if cal == nil {
		log.Warning("Failed to load calendar for MIC 'xshg'. Using simple fallback (Mon-Fri).")
		tw.Fallback = true
	} else {
		tw.Calendar = cal
	}

	return tw
}

// -----------------------------------------------------------------------------

// Location returns the exchange time zone; the daily cache stamps its date
// in the same zone.
func (tw *TradingWindow) Location() *time.Location {
	return tw.Timezone
}

// -----------------------------------------------------------------------------

// IsTradingDay reports whether the given date is an exchange trading day.
func (tw *TradingWindow) IsTradingDay(date time.Time) bool {
	date = date.In(tw.Timezone)

	weekday := date.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return false
	}

	if tw.Fallback {
		return true
	}
	return tw.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsTradingNow reports whether t falls inside a trading session.
func (tw *TradingWindow) IsTradingNow(t time.Time) bool {
	t = t.In(tw.Timezone)

	if !tw.IsTradingDay(t) {
		return false
	}

	m := t.Hour()*60 + t.Minute()
	if m >= morningOpen && m <= morningClose {
		return true
	}
	if m >= afternoonOpen && m < afternoonClose {
		return true
	}
	return false
}

// -----------------------------------------------------------------------------

// NextWakeDuration computes how long the consumer should sleep before the
// next refresh. Inside a session this is always the configured interval.
// Outside, the reschedule policy returns the exact duration to the next
// session boundary (13:00 across the lunch break, otherwise 09:30 of the
// next trading day); the suspend policy returns an effectively unbounded
// duration. The result is always strictly positive.
func (tw *TradingWindow) NextWakeDuration(t time.Time) time.Duration {
	t = t.In(tw.Timezone)

	if tw.IsTradingNow(t) {
		return tw.Interval
	}

	if tw.OffHoursPolicy == PolicySuspend {
		return suspendDuration
	}

	d := tw.nextSessionStart(t).Sub(t)
	if d <= 0 {
		// Should not happen; never hand the scheduler a non-positive sleep.
		return tw.Interval
	}
	return d
}

// -----------------------------------------------------------------------------

// nextSessionStart finds the next instant trading resumes after t.
func (tw *TradingWindow) nextSessionStart(t time.Time) time.Time {
	if tw.IsTradingDay(t) {
		m := t.Hour()*60 + t.Minute()
		if m < morningOpen {
			return sessionTime(t, morningOpen, tw.Timezone)
		}
		if m > morningClose && m < afternoonOpen {
			return sessionTime(t, afternoonOpen, tw.Timezone)
		}
		// Past the afternoon close: fall through to the next trading day.
	}

	day := t
	for i := 0; i < 366; i++ {
		day = day.AddDate(0, 0, 1)
		if tw.IsTradingDay(day) {
			return sessionTime(day, morningOpen, tw.Timezone)
		}
	}
	// A year without a trading day means a broken calendar; wake tomorrow.
	return sessionTime(t.AddDate(0, 0, 1), morningOpen, tw.Timezone)
}

// -----------------------------------------------------------------------------

func sessionTime(day time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc)
}
