// Package market holds the fixed trading-session table and the daily quote rotation.
package market

import "time"

// Session is a recurring daily pre-market window.
type Session struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	TimeStr string `json:"time"`
	Minutes int    `json:"minutes"` // minutes since UTC midnight
}

var sessions = [...]Session{
	{Name: "European pre-market", Label: "欧盘盘前", TimeStr: "15:30 (UTC+8)", Minutes: 450},
	{Name: "US pre-market", Label: "美盘盘前", TimeStr: "21:00 (UTC+8)", Minutes: 780},
	{Name: "Asian pre-market", Label: "亚盘盘前", TimeStr: "07:30 (UTC+8)", Minutes: 1410},
}

// Sessions returns the session table in schedule order.
func Sessions() []Session {
	out := make([]Session, len(sessions))
	copy(out[:], sessions[:])
	return out
}

// MinutesSinceUTCMidnight returns the UTC minute-of-day of t, in [0, 1440).
func MinutesSinceUTCMidnight(t time.Time) int {
	u := t.UTC()
	return u.Hour()*60 + u.Minute()
}

// NextSession returns the first session whose boundary is after now.
// Past the last boundary it wraps to the first session of the next day.
func NextSession(now time.Time) Session {
	m := MinutesSinceUTCMidnight(now)
	for _, s := range sessions {
		if m < s.Minutes {
			return s
		}
	}
	return sessions[0]
}
