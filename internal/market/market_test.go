package market

import (
	"testing"
	"time"
)

func utcMinute(m int) time.Time {
	return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m) * time.Minute)
}

func TestNextSession_Examples(t *testing.T) {
	tests := []struct {
		minute int
		want   string
	}{
		{0, "European pre-market"},
		{449, "European pre-market"},
		{450, "US pre-market"},
		{779, "US pre-market"},
		{780, "Asian pre-market"},
		{1409, "Asian pre-market"},
		{1410, "European pre-market"},
		{1420, "European pre-market"},
		{1439, "European pre-market"},
	}
	for _, tt := range tests {
		if got := NextSession(utcMinute(tt.minute)); got.Name != tt.want {
			t.Errorf("minute %d: got %q, want %q", tt.minute, got.Name, tt.want)
		}
	}
}

func TestNextSession_Total(t *testing.T) {
	known := map[string]bool{}
	for _, s := range Sessions() {
		known[s.Name] = true
	}
	for m := 0; m < 1440; m++ {
		s := NextSession(utcMinute(m))
		if !known[s.Name] {
			t.Fatalf("minute %d: unexpected session %+v", m, s)
		}
	}
}

func TestNextSession_UsesUTC(t *testing.T) {
	shanghai := time.FixedZone("UTC+8", 8*60*60)
	// 08:00 local is 00:00 UTC
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, shanghai)
	if got := NextSession(now); got.Name != "European pre-market" {
		t.Errorf("expected European pre-market, got %s", got.Name)
	}
	if got := MinutesSinceUTCMidnight(now); got != 0 {
		t.Errorf("expected minute 0, got %d", got)
	}
}

func TestSessions_IsCopy(t *testing.T) {
	s := Sessions()
	s[0].Name = "changed"
	if Sessions()[0].Name != "European pre-market" {
		t.Error("Sessions() exposed the internal table")
	}
}

func TestQuoteOfDay_JanFirstIsIndexOne(t *testing.T) {
	q := Quotes()
	jan1 := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	if got := QuoteOfDay(jan1); got != q[1] {
		t.Errorf("Jan 1: got %q, want %q", got, q[1])
	}
	if DayOfYear(jan1) != 1 {
		t.Errorf("expected day 1, got %d", DayOfYear(jan1))
	}
}

func TestQuoteOfDay_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 7, 15, 0, 1, 0, 0, time.UTC)
	night := time.Date(2024, 7, 15, 23, 59, 0, 0, time.UTC)
	if QuoteOfDay(morning) != QuoteOfDay(night) {
		t.Error("expected same quote for the same calendar date")
	}
}

func TestQuoteOfDay_Wraps(t *testing.T) {
	q := Quotes()
	// Jan 14 is day 14, 14 mod 14 = 0
	jan14 := time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)
	if got := QuoteOfDay(jan14); got != q[0] {
		t.Errorf("Jan 14: got %q, want %q", got, q[0])
	}
	if len(q) != 14 {
		t.Errorf("expected 14 quotes, got %d", len(q))
	}
}
