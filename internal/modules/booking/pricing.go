package booking

import (
	"math"
	"time"

	"studioreserve/internal/timeutil"
)

// HourlyTotal prices a time range at the room's hourly rate, billing whole
// units with partial units rounded up, and rounds the total half-up to two
// decimals. Pure, so a price can be reproduced for audits and disputes.
func HourlyTotal(hourlyPrice int64, start, end time.Time) float64 {
	total := float64(hourlyPrice) * float64(timeutil.BilledHours(start, end))
	return math.Round(total*100) / 100
}
