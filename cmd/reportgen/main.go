package main

import (
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// reportgen emits sample tenant report documents in the HTML shape the
// viewer consumes: a title heading and a single data table, with the
// placeholder row when there is no data.

type reportSpec struct {
	Title   string
	Columns []string
	Row     func(r *rand.Rand, i int) []string
}

var reports = map[string]reportSpec{
	"users": {
		Title:   "User Accounts Report",
		Columns: []string{"Display Name", "User Principal Name", "Object Id", "Department", "Country", "Created Date", "Last Sign-In", "Licensed", "MFA Registered"},
		Row: func(r *rand.Rand, i int) []string {
			name := pick(r, firstNames) + " " + pick(r, lastNames)
			return []string{
				name, upn(name), newID(r),
				pick(r, departments), pick(r, countries),
				pastDate(r, 1500), pastDate(r, 45),
				yesNo(r, 0.85), yesNo(r, 0.7),
			}
		},
	},
	"licenses": {
		Title:   "License Usage Report",
		Columns: []string{"License", "SKU Id", "Assigned", "Available", "Total", "Expires"},
		Row: func(r *rand.Rand, i int) []string {
			total := 50 + r.Intn(20000)
			assigned := r.Intn(total + 1)
			expires := "Never"
			if r.Float64() < 0.6 {
				expires = futureDate(r, 700)
			}
			return []string{
				skuNames[i%len(skuNames)], newID(r),
				thousands(assigned), thousands(total - assigned), thousands(total),
				expires,
			}
		},
	},
	"signins": {
		Title:   "Sign-In Activity Report",
		Columns: []string{"Date (UTC)", "Display Name", "User Principal Name", "Application", "Client App", "IP Address", "Location", "Status"},
		Row: func(r *rand.Rand, i int) []string {
			name := pick(r, firstNames) + " " + pick(r, lastNames)
			return []string{
				pastDate(r, 30), name, upn(name),
				pick(r, applications), pick(r, clientApps),
				randIP(r), pick(r, locations), signInStatus(r),
			}
		},
	},
	"mailboxes": {
		Title:   "Mailbox Usage Report",
		Columns: []string{"Display Name", "User Principal Name", "Mailbox Type", "Item Count", "Total Size (MB)", "Quota (GB)", "Archive Enabled", "Last Activity"},
		Row: func(r *rand.Rand, i int) []string {
			name := pick(r, firstNames) + " " + pick(r, lastNames)
			return []string{
				name, upn(name), mailboxType(r),
				thousands(r.Intn(250000)), thousands(50 + r.Intn(49000)),
				pick(r, []string{"50", "100", "100", "150"}),
				yesNo(r, 0.4), pastDate(r, 90),
			}
		},
	},
	"teams": {
		Title:   "Teams User Activity Report",
		Columns: []string{"Display Name", "User Principal Name", "Team Chat Messages", "Private Chat Messages", "Calls", "Meetings", "Last Activity Date"},
		Row: func(r *rand.Rand, i int) []string {
			name := pick(r, firstNames) + " " + pick(r, lastNames)
			return []string{
				name, upn(name),
				thousands(r.Intn(5000)), thousands(r.Intn(20000)),
				thousands(r.Intn(300)), thousands(r.Intn(600)),
				pastDate(r, 30),
			}
		},
	},
	"onedrive": {
		Title:   "OneDrive Usage Report",
		Columns: []string{"Display Name", "User Principal Name", "Site URL", "File Count", "Storage Used (MB)", "Sharing Enabled", "Last Activity Date"},
		Row: func(r *rand.Rand, i int) []string {
			name := pick(r, firstNames) + " " + pick(r, lastNames)
			slug := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
			return []string{
				name, upn(name),
				"https://contoso-my.sharepoint.example.com/personal/" + slug,
				thousands(r.Intn(120000)), thousands(r.Intn(1024000)),
				yesNo(r, 0.5), pastDate(r, 60),
			}
		},
	},
}

const pageTpl = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{ .Title }}</title></head>
<body>
<h1>{{ .Title }}</h1>
<p>Generated {{ now | date "2006-01-02 15:04" }} for {{ .Tenant }}</p>
<table id="report">
<thead><tr>{{ range .Columns }}<th>{{ . }}</th>{{ end }}</tr></thead>
<tbody>
{{- if .Rows }}
{{- range .Rows }}
<tr>{{ range . }}<td>{{ . }}</td>{{ end }}</tr>
{{- end }}
{{- else }}
<tr><td colspan="{{ len .Columns }}">No data available</td></tr>
{{- end }}
</tbody>
</table>
</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Funcs(sprig.HtmlFuncMap()).Parse(pageTpl))

type page struct {
	Title   string
	Tenant  string
	Columns []string
	Rows    [][]string
}

func main() {
	var (
		kind string
		rows int
		out  string
		seed int64
		list bool
	)
	flag.StringVar(&kind, "report", "users", "report kind: "+strings.Join(kinds(), "|"))
	flag.IntVar(&rows, "rows", 200, "number of data rows (0 emits the no-data placeholder)")
	flag.StringVar(&out, "out", "", "output file (default stdout)")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	flag.BoolVar(&list, "list", false, "list report kinds and exit")
	flag.Parse()

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}))

	if list {
		for _, k := range kinds() {
			fmt.Println(k)
		}
		return
	}
	spec, ok := reports[kind]
	if !ok {
		log.Error("unknown report kind", "kind", kind)
		os.Exit(2)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	data := page{Title: spec.Title, Tenant: "Contoso Ltd", Columns: spec.Columns}
	for i := 0; i < rows; i++ {
		data.Rows = append(data.Rows, spec.Row(r, i))
	}

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			log.Error("create output", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Error("render report", "err", err)
		os.Exit(1)
	}
	log.Info("report generated", "kind", kind, "rows", rows, "seed", seed)
}

func kinds() []string {
	out := make([]string, 0, len(reports))
	for k := range reports {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var (
	firstNames = []string{"Amy", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Hugo", "Iris", "Jan", "Kemal", "Lena", "Marta", "Nils", "Olga", "Pavel", "Quinn", "Rosa", "Sven", "Tara", "Üli", "Vera", "Wei", "Ximena", "Yusuf", "Zoë"}
	lastNames  = []string{"Lee", "Stone", "Nguyen", "Køhler", "García", "Smith", "Patel", "Yamamoto", "Okafor", "Silva", "Novák", "Ali", "Johnson", "Berg", "Rossi", "Dubois", "Kowalski", "Ivanova"}

	departments = []string{"Engineering", "Sales", "Marketing", "Finance", "Human Resources", "IT Operations", "Legal", "Support"}
	countries   = []string{"United States", "Germany", "Brazil", "Japan", "Netherlands", "Canada", "Australia", "France"}

	skuNames = []string{"Microsoft 365 E5", "Office 365 E3", "Enterprise Mobility + Security E5", "Azure AD Premium P2", "Power BI Pro", "Teams Phone Standard", "Visio Plan 2", "Project Plan 3"}

	applications = []string{"Microsoft Teams", "Outlook", "SharePoint Online", "Azure Portal", "Power BI", "OneDrive for Business"}
	clientApps   = []string{"Browser", "Mobile Apps and Desktop clients", "Exchange ActiveSync", "IMAP", "Other clients"}
	locations    = []string{"Seattle, US", "Berlin, DE", "São Paulo, BR", "Tokyo, JP", "Amsterdam, NL", "Toronto, CA", "Sydney, AU", "Paris, FR"}
)

func pick(r *rand.Rand, choices []string) string {
	return choices[r.Intn(len(choices))]
}

func upn(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@contoso.example.com"
}

// newID draws uuids from the seeded source so runs are reproducible.
func newID(r *rand.Rand) string {
	u, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

func pastDate(r *rand.Rand, maxDays int) string {
	d := time.Duration(r.Intn(maxDays*24*60)) * time.Minute
	return time.Now().UTC().Add(-d).Format("2006-01-02 15:04")
}

func futureDate(r *rand.Rand, maxDays int) string {
	return time.Now().UTC().AddDate(0, 0, 1+r.Intn(maxDays)).Format("2006-01-02")
}

func yesNo(r *rand.Rand, p float64) string {
	if r.Float64() < p {
		return "Yes"
	}
	return "No"
}

func signInStatus(r *rand.Rand) string {
	v := r.Float64()
	switch {
	case v < 0.88:
		return "Success"
	case v < 0.97:
		return "Failure"
	default:
		return "Interrupted"
	}
}

func mailboxType(r *rand.Rand) string {
	if r.Float64() < 0.9 {
		return "UserMailbox"
	}
	return "SharedMailbox"
}

func randIP(r *rand.Rand) string {
	return fmt.Sprintf("%d.%d.%d.%d", r.Intn(223)+1, r.Intn(255), r.Intn(255), r.Intn(255))
}

// thousands renders an int with comma group separators, matching how the
// source reports format large counts.
func thousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
