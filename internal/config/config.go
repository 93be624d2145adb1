package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// PageSizes is the fixed choice set for rows per page.
var PageSizes = []int{10, 25, 50, 100}

type Config struct {
	FilePath    string
	UseStdin    bool
	Format      string // auto|html|csv
	Title       string // overrides the document title (CSV input has none)
	Locale      string // BCP 47 tag for text collation
	PageSize    int
	OutDir      string // directory for export files
	Theme       Theme
	Landscape   bool
	FontDirs    string // extra font search path(s) for the PDF exporter, colon-separated
	Static      bool   // force the non-interactive text view
	ShowVersion bool

	// Static-mode filter/sort knobs so the tool works in scripts
	Search   string
	Filters  map[string]string
	SortBy   string
	SortDesc bool

	// Internal
	IsPipedStdin bool
}

func Load() (*Config, error) {
	cfg := &Config{}

	// Detect if stdin is piped
	fi, _ := os.Stdin.Stat()
	cfg.IsPipedStdin = (fi.Mode() & os.ModeCharDevice) == 0

	fs := flag.NewFlagSet("reportview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.FilePath, "file", "", "path to report document (html or csv)")
	fs.BoolVar(&cfg.UseStdin, "stdin", false, "read document from stdin (default: auto if piped)")
	fs.StringVar(&cfg.Format, "format", "auto", "input format: auto|html|csv")
	fs.StringVar(&cfg.Title, "title", "", "report title override (used for export filenames)")
	fs.StringVar(&cfg.Locale, "locale", getenvDefault("REPORTVIEW_LOCALE", "en"), "locale for text sorting (BCP 47 tag)")
	fs.IntVar(&cfg.PageSize, "page-size", getenvDefaultInt("REPORTVIEW_PAGE_SIZE", 25), "rows per page: 10|25|50|100")
	fs.StringVar(&cfg.OutDir, "out-dir", getenvDefault("REPORTVIEW_OUT_DIR", "."), "directory for exported files")
	theme := string(ThemeDark)
	fs.StringVar(&theme, "theme", getenvDefault("REPORTVIEW_THEME", string(ThemeDark)), "theme: dark|light")
	fs.BoolVar(&cfg.Landscape, "landscape", true, "landscape page orientation for PDF export")
	fs.StringVar(&cfg.FontDirs, "font-dirs", getenvDefault("REPORTVIEW_FONT_DIRS", ""), "extra font directories for PDF export (colon-separated)")
	fs.BoolVar(&cfg.Static, "static", false, "print the table once and exit (default when stdout is not a terminal)")
	fs.StringVar(&cfg.Search, "search", "", "apply a search term before rendering (static mode)")
	cfg.Filters = map[string]string{}
	fs.Var(filterFlag(cfg.Filters), "filter", "column=value equality filter, repeatable (static mode)")
	fs.StringVar(&cfg.SortBy, "sort-by", "", "sort by this column before rendering (static mode)")
	fs.BoolVar(&cfg.SortDesc, "sort-desc", false, "sort descending (with -sort-by)")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}
	cfg.Theme = Theme(theme)

	switch cfg.Format {
	case "auto", "html", "csv":
	default:
		return nil, fmt.Errorf("invalid -format %q (want auto|html|csv)", cfg.Format)
	}
	if !validPageSize(cfg.PageSize) {
		return nil, fmt.Errorf("invalid -page-size %d (want one of %v)", cfg.PageSize, PageSizes)
	}
	if cfg.Theme != ThemeDark && cfg.Theme != ThemeLight {
		return nil, errors.New("invalid -theme (want dark|light)")
	}

	// Positional form: reportview report.html
	if cfg.FilePath == "" && fs.NArg() > 0 {
		cfg.FilePath = fs.Arg(0)
	}
	if cfg.UseStdin || (cfg.IsPipedStdin && cfg.FilePath == "") {
		cfg.UseStdin = true
	}
	if !cfg.UseStdin && cfg.FilePath == "" && !cfg.ShowVersion {
		return nil, errors.New("no input: pass a document path or pipe one on stdin")
	}

	return cfg, nil
}

func validPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}

// filterFlag collects repeatable column=value pairs.
type filterFlag map[string]string

func (f filterFlag) String() string {
	if len(f) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (f filterFlag) Set(s string) error {
	col, val, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(col) == "" {
		return fmt.Errorf("want column=value, got %q", s)
	}
	f[strings.TrimSpace(col)] = val
	return nil
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func (c *Config) String() string {
	return fmt.Sprintf("file=%s stdin=%v format=%s locale=%s pageSize=%d theme=%s", c.FilePath, c.UseStdin, c.Format, c.Locale, c.PageSize, c.Theme)
}
