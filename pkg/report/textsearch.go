package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mainyu/pkg/log"
)

var logger = log.ForService("report")

// textElements are the only elements whose text participates in matching.
// Scripts, attributes and layout markup never match a query.
const textElements = "h1, h2, h3, p, li"

// Match is one report whose extracted text contains the search keyword.
type Match struct {
	Filename    string `json:"filename"`
	DisplayName string `json:"display_name"`
}

// Searcher finds reports matching a keyword. The directory scanner below is
// the only implementation today; the interface exists so an inverted index
// can be dropped in later without touching callers.
type Searcher interface {
	Search(keyword string) ([]Match, error)
}

// DirScanner searches report files by scanning the whole directory on every
// call: each file is read, parsed and matched per request. That is an
// exhaustive linear scan with no cache, which is fine at a-report-a-day scale
// and documented as the known limitation of this engine.
type DirScanner struct {
	Dir string
}

// NewDirScanner returns a scanner over the given reports directory.
func NewDirScanner(dir string) *DirScanner {
	return &DirScanner{Dir: dir}
}

// Search returns the reports whose visible text contains keyword, in
// directory enumeration order. Matching is a case-insensitive substring test
// against the concatenated text of heading (h1-h3), paragraph and list-item
// elements. An empty or whitespace-only keyword returns no matches without
// touching the filesystem. A file that cannot be read or parsed is logged and
// skipped; it never fails the search.
func (s *DirScanner) Search(keyword string) ([]Match, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}
	needle := strings.ToLower(keyword)

	reports, err := ListReports(s.Dir)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, r := range reports {
		text, err := extractText(filepath.Join(s.Dir, r.Filename))
		if err != nil {
			logger.Warnf("skipping unreadable report %s: %v", r.Filename, err)
			continue
		}
		if strings.Contains(strings.ToLower(text), needle) {
			matches = append(matches, Match{
				Filename:    r.Filename,
				DisplayName: r.DisplayName(),
			})
		}
	}

	return matches, nil
}

// extractText concatenates the visible text of the matching elements in one
// report file.
func extractText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warnf("closing %s: %v", path, err)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	doc.Find(textElements).Each(func(_ int, sel *goquery.Selection) {
		sb.WriteString(sel.Text())
		sb.WriteByte(' ')
	})
	return sb.String(), nil
}
