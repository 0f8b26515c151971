package recipex

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jinzhu/inflection"
)

// DurationPreset names a display style for durations.
type DurationPreset string

// Duration presets.
const (
	// PresetPluralizedWords renders "1 hour 30 minutes".
	PresetPluralizedWords DurationPreset = "pluralized-words"
	// PresetMinutesTotal renders the whole duration in minutes: "90 minutes".
	PresetMinutesTotal DurationPreset = "fixed-minutes-total"
	// PresetAbbreviated renders "1h 30min".
	PresetAbbreviated DurationPreset = "abbreviated"
	// PresetLocaleWords renders with a locale's own words: "1 ώρα 30 λεπτά".
	PresetLocaleWords DurationPreset = "locale-words"
)

// DurationPresets lists the known presets.
var DurationPresets = []DurationPreset{
	PresetPluralizedWords,
	PresetMinutesTotal,
	PresetAbbreviated,
	PresetLocaleWords,
}

// Valid reports whether p is a known preset.
func (p DurationPreset) Valid() bool {
	for _, known := range DurationPresets {
		if p == known {
			return true
		}
	}
	return false
}

// DurationWords holds the unit words used by word presets. Empty plural
// forms are derived from the singular.
type DurationWords struct {
	Hour    string
	Hours   string
	Minute  string
	Minutes string
}

// EnglishDurationWords is the default vocabulary.
var EnglishDurationWords = DurationWords{Hour: "hour", Hours: "hours", Minute: "minute", Minutes: "minutes"}

// DurationFormat is a site's duration display policy.
type DurationFormat struct {
	Preset DurationPreset
	// FoldMinutes carries minutes of 60 or more into hours.
	FoldMinutes bool
	Words       DurationWords
}

var (
	durationHours   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)H`)
	durationMinutes = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)M`)
)

// ParseDuration converts an ISO-8601 style token such as "PT1H30M" into
// display text. It returns nil when the token lacks the PT prefix or
// carries no hours or minutes.
func ParseDuration(token string, f DurationFormat) *string {
	token = strings.TrimSpace(token)
	if len(token) < 2 || !strings.EqualFold(token[:2], "PT") {
		return nil
	}
	body := token[2:]

	hours, minutes := splitDuration(body)
	if hours == 0 && minutes == 0 {
		return nil
	}

	if f.Preset == PresetMinutesTotal {
		w := f.words()
		s := strconv.Itoa(hours*60+minutes) + " " + w.Minutes
		return &s
	}

	if f.FoldMinutes && minutes >= 60 {
		hours += minutes / 60
		minutes %= 60
	}

	var parts []string
	switch f.Preset {
	case PresetAbbreviated:
		if hours > 0 {
			parts = append(parts, strconv.Itoa(hours)+"h")
		}
		if minutes > 0 {
			parts = append(parts, strconv.Itoa(minutes)+"min")
		}
	default:
		w := f.words()
		if hours > 0 {
			parts = append(parts, countWord(hours, w.Hour, w.Hours))
		}
		if minutes > 0 {
			parts = append(parts, countWord(minutes, w.Minute, w.Minutes))
		}
	}
	s := strings.Join(parts, " ")
	return &s
}

// words fills in the vocabulary for the preset. Locale words keep the
// singular when no plural is configured; the pluralized preset derives
// English plurals.
func (f DurationFormat) words() DurationWords {
	w := f.Words
	if w.Hour == "" && w.Minute == "" {
		w = EnglishDurationWords
	}
	if w.Hours == "" {
		w.Hours = w.Hour
		if f.Preset != PresetLocaleWords {
			w.Hours = inflection.Plural(w.Hour)
		}
	}
	if w.Minutes == "" {
		w.Minutes = w.Minute
		if f.Preset != PresetLocaleWords {
			w.Minutes = inflection.Plural(w.Minute)
		}
	}
	return w
}

// DurationMinutes returns the total minutes of a PT token, false when the
// token lacks the prefix or carries no hours or minutes.
func DurationMinutes(token string) (int, bool) {
	token = strings.TrimSpace(token)
	if len(token) < 2 || !strings.EqualFold(token[:2], "PT") {
		return 0, false
	}
	hours, minutes := splitDuration(token[2:])
	total := hours*60 + minutes
	return total, total > 0
}

func countWord(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// splitDuration reads the hour and minute counts of a PT token body.
// Hours and minutes are searched independently so either may be missing
// or out of order. A fractional hour ("1.5H") carries into minutes and
// fractional minutes round to the nearest whole minute.
func splitDuration(body string) (hours, minutes int) {
	h := firstNumber(durationHours, body)
	m := firstNumber(durationMinutes, body)
	whole := math.Floor(h)
	return int(whole), int(math.Round((h-whole)*60 + m))
}

func firstNumber(re *regexp.Regexp, s string) float64 {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return f
}
