package export

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStemKeywordMapping(t *testing.T) {
	as := assert.New(t)
	tests := []struct {
		title string
		want  string
	}{
		{"Office 365 License Report", "LicenseReport"},
		{"Sign-In Audit Report", "SignInReport"},
		{"Mailbox Usage Report", "MailboxReport"},
		{"Teams User Activity Report", "TeamsUsageReport"},
		{"OneDrive Usage Report", "OneDriveReport"},
		{"Active Users", "UserReport"},
		{"LICENSE SUMMARY", "LicenseReport"},
		{"Quarterly Numbers", "Report"},
		{"", "Report"},
	}
	for _, tc := range tests {
		as.Equal(tc.want, Stem(tc.title), "Stem(%q)", tc.title)
	}
}

func TestFilenamePattern(t *testing.T) {
	as := assert.New(t)
	at := time.Date(2026, 3, 7, 9, 5, 33, 0, time.UTC)
	as.Equal("LicenseReport_20260307_0905.csv", Filename("License Report", "csv", at))
	as.Equal("Report_20260307_0905.pdf", Filename("Misc", "pdf", at))

	pat := regexp.MustCompile(`^[A-Za-z0-9_-]+_\d{8}_\d{4}\.pdf$`)
	as.Regexp(pat, Filename("sign-in report «weird»", "pdf", time.Now()))
}
