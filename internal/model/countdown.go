package model

// TimeRemaining is a breakdown of the time left until a target instant.
// Days/Hours/Minutes/Seconds are the calendar-style components; the Total*
// fields are each computed independently from the full difference.
type TimeRemaining struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64

	TotalHours   int64
	TotalMinutes int64
	TotalSeconds int64
}

// Expired reports whether the countdown has reached zero.
func (t TimeRemaining) Expired() bool {
	return t.TotalSeconds <= 0 && t.Days == 0 && t.Hours == 0 &&
		t.Minutes == 0 && t.Seconds == 0
}
