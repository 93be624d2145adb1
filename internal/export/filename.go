package export

import (
	"strings"
	"time"
)

// stems maps report-title keywords to export file stems. Entries are
// checked in order, so "Teams User Activity" lands on the teams stem, not
// the generic user one.
var stems = []struct {
	keyword string
	stem    string
}{
	{"license", "LicenseReport"},
	{"sign", "SignInReport"},
	{"mailbox", "MailboxReport"},
	{"teams", "TeamsUsageReport"},
	{"onedrive", "OneDriveReport"},
	{"user", "UserReport"},
}

// Stem derives the export file stem from the report title. Unrecognized
// titles fall back to "Report". Stems stay within [A-Za-z0-9_-] so the
// name is safe on any filesystem.
func Stem(title string) string {
	low := strings.ToLower(title)
	for _, s := range stems {
		if strings.Contains(low, s.keyword) {
			return s.stem
		}
	}
	return "Report"
}

// Filename builds "{Stem}_{YYYYMMDD_HHMM}.{ext}" with the timestamp taken
// at export time.
func Filename(title, ext string, now time.Time) string {
	return Stem(title) + "_" + now.Format("20060102_1504") + "." + ext
}
