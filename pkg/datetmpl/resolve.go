// Package datetmpl resolves date-templated note paths.
//
// A template is plain text with optional tokens:
//
//	{YYYY-MM-DD}       the reference instant formatted with a moment.js format
//	{mon:YYYY-MM-DD}   the most recent Monday (today included), formatted
//
// Weekday codes are mon, tue, wed, thu, fri, sat and sun.
package datetmpl

import (
	"strings"
	"time"
)

var weekdayCodes = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// WeekdayCodes returns the supported weekday codes, Monday first.
func WeekdayCodes() []string {
	return []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
}

// Resolve substitutes every token in template against now.
//
// The template is scanned once, left to right. A token runs from a '{' to
// the nearest following '}'; a '{' that is followed by another '{' before
// any '}' is kept as text. Unbalanced braces, empty tokens and unknown
// weekday codes are copied through unchanged. Substituted text is never
// rescanned.
func Resolve(template string, now time.Time) string {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open+1:], '}')
		if end < 0 {
			break
		}
		end += open + 1
		if inner := strings.LastIndexByte(rest[open:end], '{'); inner > 0 {
			open += inner
		}

		b.WriteString(rest[:open])
		b.WriteString(expandToken(rest[open+1:end], rest[open:end+1], now))
		rest = rest[end+1:]
	}
	b.WriteString(rest)
	return b.String()
}

// IsMagic reports whether template contains at least one token that
// resolves to something other than its own text.
func IsMagic(template string, now time.Time) bool {
	return Resolve(template, now) != template
}

// PriorWeekday returns the most recent day on or before now that falls on
// wd. The time of day is kept.
func PriorWeekday(now time.Time, wd time.Weekday) time.Time {
	t := now
	for i := 0; i < 7 && t.Weekday() != wd; i++ {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

func expandToken(body, raw string, now time.Time) string {
	if body == "" {
		return raw
	}

	if code, layout, ok := strings.Cut(body, ":"); ok {
		if wd, known := weekdayCodes[code]; known {
			if layout == "" {
				return raw
			}
			return Format(PriorWeekday(now, wd), layout)
		}
		if looksLikeDayCode(code) {
			return raw
		}
	}

	return Format(now, body)
}

// formatLetters are the lowercase letters that start moment format tokens.
const formatLetters = "adeghklmswx"

// looksLikeDayCode matches three lowercase letters that are not all format
// letters, so "{xyz:...}" is rejected while runs like "{hmm:ss}" format.
func looksLikeDayCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	allFormat := true
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return false
		}
		if strings.IndexByte(formatLetters, code[i]) < 0 {
			allFormat = false
		}
	}
	return !allFormat
}
