// Package report discovers and searches the pre-generated news report files.
// A report is a plain HTML file named news_YYYY-MM-DD.html; the directory may
// also contain a reserved index.html and unrelated files, which are excluded
// from listings. Nothing is cached between calls: every listing re-reads the
// directory so newly generated reports show up immediately.
package report

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// IndexFilename is reserved for the generated history index page and never
// appears in catalog listings.
const IndexFilename = "index.html"

var filenamePattern = regexp.MustCompile(`^news_(\d{4})-(\d{2})-(\d{2})\.html$`)

// Report is one report file found in the reports directory.
type Report struct {
	// Filename is the bare file name, e.g. "news_2025-08-01.html".
	Filename string
	// Date is the calendar date parsed from the filename. Zero (and HasDate
	// false) when the filename does not follow the dated naming scheme.
	Date    time.Time
	HasDate bool
}

// DisplayName returns the human label for this report.
func (r Report) DisplayName() string {
	return DisplayName(r.Filename)
}

// DisplayName formats a report filename as the label shown on the site.
// news_2025-08-01.html becomes 2025年8月1日のニュース (zero padding stripped
// from month and day). Filenames that don't follow the naming scheme are
// returned verbatim. The function is pure; every page that needs a report
// label goes through it.
func DisplayName(filename string) string {
	m := filenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return filename
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%d年%d月%d日のニュース", year, month, day)
}

// FilenameForDate synthesizes the report filename for a calendar date.
func FilenameForDate(t time.Time) string {
	return "news_" + t.Format("2006-01-02") + ".html"
}

// ListReports enumerates the report files in dir, newest first. Only .html
// files are considered and index.html is excluded. Ordering is lexicographic
// descending on the filename, which matches date-descending because the dated
// names use zero-padded ISO dates; any stray non-conforming .html file sorts
// by its raw name.
func ListReports(dir string) ([]Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading reports directory %s: %w", dir, err)
	}

	var reports []Report
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".html") || name == IndexFilename {
			continue
		}
		reports = append(reports, newReport(name))
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Filename > reports[j].Filename
	})

	return reports, nil
}

// Latest returns the newest report in dir, or nil when the directory holds no
// qualifying files.
func Latest(dir string) (*Report, error) {
	reports, err := ListReports(dir)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return &reports[0], nil
}

func newReport(filename string) Report {
	r := Report{Filename: filename}
	if m := filenamePattern.FindStringSubmatch(filename); m != nil {
		if date, err := time.Parse("2006-01-02", m[1]+"-"+m[2]+"-"+m[3]); err == nil {
			r.Date = date
			r.HasDate = true
		}
	}
	return r
}
