package service

import "math"

// attendanceRate is the percentage of registered users marked attended,
// rounded to the nearest whole percent. The denominator floors at 1 so an
// event with no registrations reports 0 instead of dividing by zero.
func attendanceRate(attended, registered int) int {
	if registered < 1 {
		registered = 1
	}
	return int(math.Round(100 * float64(attended) / float64(registered)))
}
