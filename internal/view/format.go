package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Address shortens addresses longer than 6 characters to first3...last3.
func Address(addr string) string {
	if len(addr) <= 6 {
		return addr
	}
	return addr[:3] + "..." + addr[len(addr)-3:]
}

// MarketCap formats a usd market cap as 1.5M / 2.5K / 999.0.
func MarketCap(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// RelativeTime formats the age of t at now using the coarsest non-zero unit.
// Future times clamp to zero minutes.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	days := int64(d / (24 * time.Hour))
	hours := int64(d / time.Hour)
	minutes := int64(d / time.Minute)
	switch {
	case days > 0:
		return fmt.Sprintf("%d天前", days)
	case hours > 0:
		return fmt.Sprintf("%d小时前", hours)
	default:
		return fmt.Sprintf("%d分钟前", minutes)
	}
}

// Integer formats the integer part of v with thousands separators.
func Integer(v float64) string {
	n := int64(v)
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// IntegerOrBlank is Integer, but blank when v truncates to zero.
func IntegerOrBlank(v float64) string {
	if math.Trunc(v) == 0 {
		return ""
	}
	return Integer(v)
}

// CountPlus appends "+" to counts that reached the provider page cap.
func CountPlus(n, limit int) string {
	if limit > 0 && n >= limit {
		return strconv.Itoa(n) + "+"
	}
	return strconv.Itoa(n)
}

// Timestamp formats t as local date-time, blank for the zero time.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
