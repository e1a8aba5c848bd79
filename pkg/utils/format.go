package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatRupiah renders an amount as "Rp 1.500.000".
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return "Rp " + sign + b.String()
}

// FormatDeadline prints only the clock when t falls on the same calendar day as now,
// otherwise "02 January 2006 || _15:04_". Both are rendered in loc.
func FormatDeadline(t, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	now = now.In(loc)
	if sameDay(t, now) {
		return t.Format("15:04")
	}
	return fmt.Sprintf("%s || _%s_", t.Format("02 January 2006"), t.Format("15:04"))
}

// FormatRemaining renders a duration as "X jam Y menit" or "Y menit".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d.Minutes())
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if hours > 0 {
		return fmt.Sprintf("%d jam %d menit", hours, minutes)
	}
	return fmt.Sprintf("%d menit", minutes)
}

// IndonesianMonth returns the month name in Bahasa Indonesia.
func IndonesianMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return indonesianMonths[m-1]
}

// FormatShortDateID renders "02 Jan 2006" with Indonesian month abbreviations.
func FormatShortDateID(t time.Time) string {
	name := IndonesianMonth(t.Month())
	if len(name) > 3 {
		name = name[:3]
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), name, t.Year())
}

// FormatDayRangeID renders a week bucket as "1 - 7 Jan 2025".
func FormatDayRangeID(start, end time.Time) string {
	name := IndonesianMonth(end.Month())
	if len(name) > 3 {
		name = name[:3]
	}
	return fmt.Sprintf("%d - %d %s %d", start.Day(), end.Day(), name, end.Year())
}

// FormatThousands renders n with "." separators.
func FormatThousands(n int64) string {
	return strings.TrimPrefix(FormatRupiah(n), "Rp ")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
