package logic

import "time"

// TimezoneMode selects how the stored standard time maps to the local
// time shown to the user and fed to the interval evaluator.
type TimezoneMode byte

const (
	// AutomaticDst applies a one-hour offset during the daylight
	// saving period.
	AutomaticDst TimezoneMode = iota
	// StandardOnly keeps local time equal to standard time all year.
	StandardOnly
)

// TimezoneModeFromByte decodes a persisted mode byte. Out-of-range
// values coerce to AutomaticDst.
func TimezoneModeFromByte(b byte) TimezoneMode {
	m := TimezoneMode(b)
	if m > StandardOnly {
		return AutomaticDst
	}
	return m
}

func (m TimezoneMode) String() string {
	if m == StandardOnly {
		return "standard"
	}
	return "auto-dst"
}

const dstOffset = time.Hour

// The daylight period is defined on the standard timeline: it begins
// at 02:00 standard on the second Sunday of March and ends at 01:00
// standard (02:00 on the daylight clock) on the first Sunday of
// November. Values are plain time.Time pinned to UTC, used as
// zone-less containers; no tz database lookups happen anywhere.

func daylightStart(year int) time.Time {
	return nthSunday(year, time.March, 2, 2)
}

func daylightEnd(year int) time.Time {
	return nthSunday(year, time.November, 1, 1)
}

func nthSunday(year int, month time.Month, n, hour int) time.Time {
	first := time.Date(year, month, 1, hour, 0, 0, 0, time.UTC)
	days := (7 - int(first.Weekday())) % 7
	return first.AddDate(0, 0, days+(n-1)*7)
}

func inDaylight(standard time.Time) bool {
	start := daylightStart(standard.Year())
	end := daylightEnd(standard.Year())
	return !standard.Before(start) && standard.Before(end)
}

// ToLocal converts standard time to local display time under mode.
func ToLocal(standard time.Time, mode TimezoneMode) time.Time {
	if mode != AutomaticDst || !inDaylight(standard) {
		return standard
	}
	return standard.Add(dstOffset)
}

// ToStandard converts a local display time back to standard time under
// mode. The repeated fall-back hour resolves to its first (daylight)
// occurrence, so the round trip with ToLocal is identity everywhere
// except that single hour.
func ToStandard(local time.Time, mode TimezoneMode) time.Time {
	if mode != AutomaticDst {
		return local
	}
	start := daylightStart(local.Year()).Add(dstOffset)
	end := daylightEnd(local.Year()).Add(dstOffset)
	if !local.Before(start) && local.Before(end) {
		return local.Add(-dstOffset)
	}
	return local
}
