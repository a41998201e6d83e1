package datetmpl

import (
	"strconv"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	ref := time.Date(2024, 3, 7, 14, 5, 9, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"YYYY-MM-DD", "2024-03-07"},
		{"YY", "24"},
		{"Y", "2024"},
		{"YYYYY YYYYYY", "02024 +002024"},
		{"LT", "2:05 PM"},
		{"LTS", "2:05:09 PM"},
		{"L", "03/07/2024"},
		{"LL", "March 7, 2024"},
		{"LLL", "March 7, 2024 2:05 PM"},
		{"LLLL", "Thursday, March 7, 2024 2:05 PM"},
		{"l", "3/7/2024"},
		{"ll", "Mar 7, 2024"},
		{"lll", "Mar 7, 2024 2:05 PM"},
		{"llll", "Thu, Mar 7, 2024 2:05 PM"},
		{"[LL] LL", "LL March 7, 2024"},
		{"Q Qo", "1 1st"},
		{"M Mo MM MMM MMMM", "3 3rd 03 Mar March"},
		{"D Do DD", "7 7th 07"},
		{"DDD DDDD DDDo", "67 067 67th"},
		{"d do dd ddd dddd", "4 4th Th Thu Thursday"},
		{"E e", "4 4"},
		{"W WW Wo", "10 10 10th"},
		{"w ww wo", "10 10 10th"},
		{"GGGG GG gggg gg", "2024 24 2024 24"},
		{"H HH h hh k kk", "14 14 2 02 14 14"},
		{"m mm s ss", "5 05 9 09"},
		{"S SS SSS SSSSSS SSSSSSSSS", "1 12 123 123456 123456789"},
		{"a A", "pm PM"},
		{"Z ZZ", "+00:00 +0000"},
		{"X", strconv.FormatInt(ref.Unix(), 10)},
		{"x", strconv.FormatInt(ref.UnixMilli(), 10)},
		{"[Week] W", "Week 10"},
		{`\Y YYYY`, "Y 2024"},
		{"YYYY[", "2024["},
		{"YYYY/MM é", "2024/03 é"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := Format(ref, tt.layout); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestFormatMidnightAndZone(t *testing.T) {
	zone := time.FixedZone("test", -(5*3600 + 30*60))
	ref := time.Date(2023, 12, 31, 0, 7, 0, 0, zone)

	if got := Format(ref, "h:mm a k"); got != "12:07 am 24" {
		t.Errorf("Format midnight = %q", got)
	}
	if got := Format(ref, "Z"); got != "-05:30" {
		t.Errorf("Format zone = %q", got)
	}
	// Sunday Dec 31st 2023 belongs to week 1 of 2024 in the English locale
	// and to ISO week 52 of 2023.
	if got := Format(ref, "gggg-ww GGGG-WW"); got != "2024-01 2023-52" {
		t.Errorf("Format week years = %q", got)
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd",
		101: "101st", 111: "111th", 0: "0th",
	}
	for n, want := range tests {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
