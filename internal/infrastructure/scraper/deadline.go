package scraper

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Deadline shapes seen on Devpost challenge cards, in order of specificity.
var (
	submitDeadlineExpr = regexp.MustCompile(`([A-Z][a-z]{2}\s+\d{1,2},?\s+\d{4}\s+\d{1,2}:\d{2}\s*(?:AM|PM)\s*[A-Z]{2,4})\s+to submit`)
	dateRangeExpr      = regexp.MustCompile(`([A-Z][a-z]{2}\s+\d{1,2})\s*[–-]\s*(\d{1,2}),?\s*(\d{4})`)
	plainDeadlineExpr  = regexp.MustCompile(`([A-Z][a-z]{2}\s+\d{1,2},?\s+\d{4}\s+\d{1,2}:\d{2}\s*(?:AM|PM)\s*[A-Z]{2,4})`)
)

var zoneAbbrevExpr = regexp.MustCompile(`^[A-Z]{2,4}$`)

// Offsets for the timezone abbreviations Devpost emits. time.Parse cannot
// resolve names like EDT to an offset on its own.
var zoneOffsets = map[string]int{
	"UTC": 0,
	"GMT": 0,
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

var timestampLayouts = []string{
	"Jan 2, 2006 3:04 PM",
	"Jan 2 2006 3:04 PM",
}

var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// ParseDeadline extracts a submission deadline from challenge card text.
// Three shapes appear in the wild:
//
//	"Mar 16, 2026 08:00 PM EDT to submit"
//	"Feb 2 – 20, 2026" (a running range; the end date wins, closing 11:59 PM)
//	"Feb 09, 2026 08:00 PM EST"
func ParseDeadline(text string) (time.Time, bool) {
	if m := submitDeadlineExpr.FindStringSubmatch(text); m != nil {
		if t, err := parseTimestamp(m[1]); err == nil {
			return t, true
		}
	}

	if m := dateRangeExpr.FindStringSubmatch(text); m != nil {
		month := strings.Fields(m[1])[0]
		stamp := fmt.Sprintf("%s %s, %s 11:59 PM", month, m[2], m[3])
		if t, err := parseTimestamp(stamp); err == nil {
			return t, true
		}
	}

	if m := plainDeadlineExpr.FindStringSubmatch(text); m != nil {
		if t, err := parseTimestamp(m[1]); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseTimestamp parses "Mar 16, 2026 08:00 PM EDT" style stamps into UTC.
// Unknown zone abbreviations are dropped and the wall time is kept as-is,
// which beats discarding the whole record.
func parseTimestamp(stamp string) (time.Time, error) {
	stamp = collapseSpace(stamp)

	loc := time.UTC
	fields := strings.Fields(stamp)
	if last := fields[len(fields)-1]; last != "AM" && last != "PM" {
		if offset, ok := zoneOffsets[last]; ok {
			loc = time.FixedZone(last, offset)
			stamp = strings.Join(fields[:len(fields)-1], " ")
		} else if zoneAbbrevExpr.MatchString(last) {
			stamp = strings.Join(fields[:len(fields)-1], " ")
		}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, stamp, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", stamp)
}

// parseDate parses bare dates like "March 16, 2026"; midnight UTC.
func parseDate(stamp string) (time.Time, error) {
	stamp = collapseSpace(stamp)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, stamp, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", stamp)
}
