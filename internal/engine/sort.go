package engine

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"reportview/internal/model"
)

// sortFiltered stably reorders the filtered slice by the active sort
// column. The slice arrives in original document order, so equal keys keep
// that order and repeated sorts are deterministic.
func (v *View) sortFiltered() {
	if !v.Sort.Active() {
		return
	}
	ci := v.Table.ColumnIndex(v.Sort.Column)
	if ci < 0 {
		return
	}
	if len(v.filtered) > 0 && &v.filtered[0] == &v.Table.Rows[0] {
		// The empty-filter path hands over the arena itself; sorting must
		// reorder a copy, never the document-order original.
		v.filtered = append([]model.Row(nil), v.filtered...)
	}
	cell := func(i int) string {
		r := v.filtered[i]
		if ci < len(r.Cells) {
			return r.Cells[ci]
		}
		return ""
	}
	desc := v.Sort.Desc
	sort.SliceStable(v.filtered, func(i, j int) bool {
		a, b := cell(i), cell(j)
		if desc {
			a, b = b, a
		}
		return v.compare(a, b) < 0
	})
}

// compare implements the typed comparison policy, per value pair:
// both numeric -> numeric, else both dates -> chronological, else
// locale-aware collation. Unparseable values simply fall through to the
// text comparison; the sort never fails.
func (v *View) compare(a, b string) int {
	na, aNum := parseNumber(a)
	nb, bNum := parseNumber(b)
	if aNum && bNum {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	da, aDate := parseDate(a)
	db, bDate := parseDate(b)
	if aDate && bDate {
		switch {
		case da.Before(db):
			return -1
		case da.After(db):
			return 1
		default:
			return 0
		}
	}
	return v.coll.CompareString(a, b)
}

var numberRE = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// parseNumber accepts display numbers: thousands separators are stripped
// before the parse, as is a leading currency sign.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if !numberRE.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var monthRE = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)

// parseDate recognizes date-like display values. The prefilter keeps
// dateparse away from plain numbers and free text: a candidate needs a
// digit plus either a date separator or a month name.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 6 || len(s) > 40 {
		return time.Time{}, false
	}
	hasDigit := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
	if !hasDigit {
		return time.Time{}, false
	}
	if !strings.ContainsAny(s, "-/:.") && !monthRE.MatchString(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
