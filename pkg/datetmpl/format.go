package datetmpl

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// formatTokens lists the moment.js tokens we understand, longest first
// within each family so prefix matching picks the longest token.
var formatTokens = []string{
	"LTS", "LT", "LLLL", "LLL", "LL", "L", "llll", "lll", "ll", "l",
	"YYYYYY", "YYYYY", "YYYY", "YY", "Y",
	"Qo", "Q",
	"MMMM", "MMM", "MM", "Mo", "M",
	"DDDD", "DDDo", "DDD", "DD", "Do", "D",
	"dddd", "ddd", "dd", "do", "d",
	"e", "E",
	"ww", "wo", "w", "WW", "Wo", "W",
	"gggg", "gg", "GGGG", "GG",
	"HH", "H", "hh", "h", "kk", "k",
	"mm", "m", "ss", "s",
	"SSSSSSSSS", "SSSSSSSS", "SSSSSSS", "SSSSSS", "SSSSS", "SSSS", "SSS", "SS", "S",
	"a", "A", "X", "x", "ZZ", "Z",
}

// longDateFormats are the English expansions of moment's localized tokens.
var longDateFormats = map[string]string{
	"LT":   "h:mm A",
	"LTS":  "h:mm:ss A",
	"L":    "MM/DD/YYYY",
	"LL":   "MMMM D, YYYY",
	"LLL":  "MMMM D, YYYY h:mm A",
	"LLLL": "dddd, MMMM D, YYYY h:mm A",
	"l":    "M/D/YYYY",
	"ll":   "MMM D, YYYY",
	"lll":  "MMM D, YYYY h:mm A",
	"llll": "ddd, MMM D, YYYY h:mm A",
}

var minWeekdayNames = [...]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Format renders t with a moment.js style format string using English
// names. Text inside [brackets] and characters escaped with a backslash are
// copied verbatim; characters that are not tokens are copied as-is.
func Format(t time.Time, layout string) string {
	var b strings.Builder
	for i := 0; i < len(layout); {
		switch layout[i] {
		case '[':
			if end := strings.IndexByte(layout[i+1:], ']'); end >= 0 && !strings.Contains(layout[i+1:i+1+end], "[") {
				b.WriteString(layout[i+1 : i+1+end])
				i += end + 2
				continue
			}
		case '\\':
			if i+1 < len(layout) {
				r, size := utf8.DecodeRuneInString(layout[i+1:])
				b.WriteRune(r)
				i += 1 + size
				continue
			}
		}

		if tok := matchToken(layout[i:]); tok != "" {
			b.WriteString(renderToken(t, tok))
			i += len(tok)
			continue
		}

		r, size := utf8.DecodeRuneInString(layout[i:])
		b.WriteRune(r)
		i += size
	}
	return b.String()
}

func matchToken(s string) string {
	for _, tok := range formatTokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func renderToken(t time.Time, tok string) string {
	if long, ok := longDateFormats[tok]; ok {
		return Format(t, long)
	}

	switch tok {
	case "YYYY", "Y":
		return pad(t.Year(), 4)
	case "YYYYY":
		return pad(t.Year(), 5)
	case "YYYYYY":
		if t.Year() < 0 {
			return "-" + pad(-t.Year(), 6)
		}
		return "+" + pad(t.Year(), 6)
	case "YY":
		return pad(t.Year()%100, 2)
	case "Q":
		return strconv.Itoa(quarter(t))
	case "Qo":
		return ordinal(quarter(t))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "Mo":
		return ordinal(int(t.Month()))
	case "MM":
		return pad(int(t.Month()), 2)
	case "MMM":
		return t.Month().String()[:3]
	case "MMMM":
		return t.Month().String()
	case "D":
		return strconv.Itoa(t.Day())
	case "Do":
		return ordinal(t.Day())
	case "DD":
		return pad(t.Day(), 2)
	case "DDD":
		return strconv.Itoa(t.YearDay())
	case "DDDo":
		return ordinal(t.YearDay())
	case "DDDD":
		return pad(t.YearDay(), 3)
	case "d", "e":
		return strconv.Itoa(int(t.Weekday()))
	case "do":
		return ordinal(int(t.Weekday()))
	case "dd":
		return minWeekdayNames[t.Weekday()]
	case "ddd":
		return t.Weekday().String()[:3]
	case "dddd":
		return t.Weekday().String()
	case "E":
		return strconv.Itoa(isoWeekday(t))
	case "w":
		_, week := localeWeek(t)
		return strconv.Itoa(week)
	case "wo":
		_, week := localeWeek(t)
		return ordinal(week)
	case "ww":
		_, week := localeWeek(t)
		return pad(week, 2)
	case "W":
		_, week := t.ISOWeek()
		return strconv.Itoa(week)
	case "Wo":
		_, week := t.ISOWeek()
		return ordinal(week)
	case "WW":
		_, week := t.ISOWeek()
		return pad(week, 2)
	case "gg":
		year, _ := localeWeek(t)
		return pad(year%100, 2)
	case "gggg":
		year, _ := localeWeek(t)
		return pad(year, 4)
	case "GG":
		year, _ := t.ISOWeek()
		return pad(year%100, 2)
	case "GGGG":
		year, _ := t.ISOWeek()
		return pad(year, 4)
	case "H":
		return strconv.Itoa(t.Hour())
	case "HH":
		return pad(t.Hour(), 2)
	case "h":
		return strconv.Itoa(hour12(t))
	case "hh":
		return pad(hour12(t), 2)
	case "k":
		return strconv.Itoa(hour24(t))
	case "kk":
		return pad(hour24(t), 2)
	case "m":
		return strconv.Itoa(t.Minute())
	case "mm":
		return pad(t.Minute(), 2)
	case "s":
		return strconv.Itoa(t.Second())
	case "ss":
		return pad(t.Second(), 2)
	case "a":
		if t.Hour() < 12 {
			return "am"
		}
		return "pm"
	case "A":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "X":
		return strconv.FormatInt(t.Unix(), 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	case "Z":
		return zoneOffset(t, ":")
	case "ZZ":
		return zoneOffset(t, "")
	}

	if strings.Trim(tok, "S") == "" {
		// Fractional seconds, truncated to len(tok) digits.
		return fmt.Sprintf("%09d", t.Nanosecond())[:len(tok)]
	}
	return tok
}

func pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

func ordinal(n int) string {
	suffix := "th"
	if (n%100)/10 != 1 {
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

func quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

func isoWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func hour24(t time.Time) int {
	if t.Hour() == 0 {
		return 24
	}
	return t.Hour()
}

// localeWeek returns the week-year and week number for the English locale:
// weeks start on Sunday and week 1 is the week containing January 1st.
func localeWeek(t time.Time) (int, int) {
	saturday := t.AddDate(0, 0, int(time.Saturday-t.Weekday()))
	return saturday.Year(), (saturday.YearDay()-1)/7 + 1
}

func zoneOffset(t time.Time, sep string) string {
	_, offset := t.Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d%s%02d", sign, offset/3600, sep, (offset%3600)/60)
}
