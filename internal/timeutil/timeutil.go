// Package timeutil holds the time-range arithmetic bookings are priced and
// conflict-checked with. Ranges are half-open [start, end): a booking that
// ends exactly when another starts does not overlap it.
package timeutil

import "time"

const billedUnitMinutes = 60

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// BilledHours returns the number of whole billing units covered by the
// range, rounding any partial unit up. A positive duration always bills at
// least one unit; non-positive durations are rejected before this point.
func BilledHours(start, end time.Time) int {
	minutes := int(end.Sub(start).Minutes())
	units := (minutes + billedUnitMinutes - 1) / billedUnitMinutes
	if units < 1 {
		units = 1
	}
	return units
}
