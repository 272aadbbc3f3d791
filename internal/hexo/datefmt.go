package hexo

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Hexo configures date_format and time_format with moment.js tokens.
// Longer tokens must precede their prefixes.
var momentTokens = []string{
	"YYYY", "YY",
	"MMMM", "MMM", "MM", "M",
	"DDDD", "DDD", "Do", "DD", "D",
	"dddd", "ddd",
	"HH", "H", "hh", "h",
	"mm", "m",
	"ss", "s",
	"SSS",
	"A", "a",
	"ZZ", "Z",
	"X",
}

// FormatDate formats t with a moment.js style pattern. Text inside square
// brackets is copied literally, as is any character that is not a token.
func FormatDate(t time.Time, pattern string) string {
	var sb strings.Builder

	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			if end := strings.IndexByte(pattern[i:], ']'); end > 0 {
				sb.WriteString(pattern[i+1 : i+end])
				i += end + 1
				continue
			}
		}

		token := matchToken(pattern[i:])
		if token == "" {
			sb.WriteByte(pattern[i])
			i++
			continue
		}

		sb.WriteString(formatToken(t, token))
		i += len(token)
	}

	return sb.String()
}

func matchToken(s string) string {
	for _, tok := range momentTokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func formatToken(t time.Time, token string) string {
	switch token {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DDDD":
		return fmt.Sprintf("%03d", t.YearDay())
	case "DDD":
		return strconv.Itoa(t.YearDay())
	case "Do":
		return ordinal(t.Day())
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return fmt.Sprintf("%02d", hour12(t))
	case "h":
		return strconv.Itoa(hour12(t))
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
	case "A":
		return t.Format("PM")
	case "a":
		return t.Format("pm")
	case "ZZ":
		return t.Format("-0700")
	case "Z":
		return t.Format("-07:00")
	case "X":
		return strconv.FormatInt(t.Unix(), 10)
	}
	return token
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
