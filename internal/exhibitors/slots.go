package exhibitors

import "time"

// Webinar slots are a fixed published list; there is no scheduling system
// behind them and slots are not scarce (no cross-exhibitor booking guard).
var webinarSlots = []time.Time{
	time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC),
	time.Date(2024, time.March, 16, 14, 0, 0, 0, time.UTC),
	time.Date(2024, time.March, 17, 11, 0, 0, 0, time.UTC),
	time.Date(2024, time.March, 18, 15, 0, 0, 0, time.UTC),
	time.Date(2024, time.March, 19, 9, 0, 0, 0, time.UTC),
}

// WebinarSlots returns the published webinar date choices.
func WebinarSlots() []time.Time {
	out := make([]time.Time, len(webinarSlots))
	copy(out, webinarSlots)
	return out
}

// ValidWebinarSlot reports whether date matches one of the published slots.
func ValidWebinarSlot(date time.Time) bool {
	for _, s := range webinarSlots {
		if s.Equal(date) {
			return true
		}
	}
	return false
}
