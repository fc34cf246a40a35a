// Package store is the SQLite persistence layer for archived headlines. It
// owns the headlines table and exposes the read queries the site needs:
// recent distinct dates, title substring search and per-category listings.
// Every query is parameterized; user input never reaches query text.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"mainyu/pkg/headline"
)

// dateFormat is how dates are stored in the date column. Zero-padded ISO
// dates sort correctly as strings, which the recent-dates query relies on.
const dateFormat = "2006-01-02"

type Store struct {
	db *sql.DB

	// caseSensitive switches title matching between raw and case-folded
	// substring comparison. SQLite collation is not relied on either way.
	caseSensitive bool
}

// New opens (creating if needed) the headline database at dbPath.
func New(dbPath string, caseSensitive bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	return &Store{db: db, caseSensitive: caseSensitive}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema creates the headlines table and its indexes when missing.
func (s *Store) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS headlines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		date TEXT NOT NULL,
		category TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_headlines_date ON headlines(date);
	CREATE INDEX IF NOT EXISTS idx_headlines_category ON headlines(category);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating headlines schema: %w", err)
	}
	return nil
}

// RecentDates returns the n most recent distinct dates present in the store,
// newest first.
func (s *Store) RecentDates(n int) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT date FROM headlines ORDER BY date DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("querying recent dates: %w", err)
	}
	defer closeRows(rows)

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// SearchTitles returns headlines whose title contains keyword as a substring,
// date-descending with insertion order preserved within a date. When dates is
// non-empty only rows on those dates are considered; limit caps the result
// when positive.
func (s *Store) SearchTitles(keyword string, dates []string, limit int) ([]headline.Headline, error) {
	var (
		where strings.Builder
		args  []any
	)
	if s.caseSensitive {
		where.WriteString("instr(title, ?) > 0")
	} else {
		where.WriteString("instr(lower(title), lower(?)) > 0")
	}
	args = append(args, keyword)

	if len(dates) > 0 {
		where.WriteString(" AND date IN (")
		for i, d := range dates {
			if i > 0 {
				where.WriteString(", ")
			}
			where.WriteString("?")
			args = append(args, d)
		}
		where.WriteString(")")
	}

	query := "SELECT id, source, date, title, url, category FROM headlines WHERE " +
		where.String() + " ORDER BY date DESC, id ASC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return s.queryHeadlines(query, args...)
}

// ListByCategory returns every headline in the given category,
// date-descending. An unknown category simply matches nothing.
func (s *Store) ListByCategory(category headline.Category) ([]headline.Headline, error) {
	return s.queryHeadlines(
		"SELECT id, source, date, title, url, category FROM headlines WHERE category = ? ORDER BY date DESC, id ASC",
		string(category))
}

// InsertHeadlines stores new rows, skipping any whose URL is already present.
// The whole batch goes through one transaction. Returns the number of rows
// actually inserted.
func (s *Store) InsertHeadlines(headlines []headline.Headline) (int, error) {
	if len(headlines) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO headlines (source, title, url, date, category)
		SELECT ?, ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM headlines WHERE url = ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, h := range headlines {
		category := h.Category
		if category == "" {
			category = headline.Categorize(h.Title)
		}
		res, err := stmt.Exec(h.Source, h.Title, h.URL, h.Date.Format(dateFormat), string(category), h.URL)
		if err != nil {
			return 0, fmt.Errorf("inserting headline %q: %w", h.Title, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing insert: %w", err)
	}
	committed = true
	return inserted, nil
}

// AllTitles returns (id, title) for every stored headline, for
// reclassification runs.
func (s *Store) AllTitles() (map[int64]string, error) {
	rows, err := s.db.Query("SELECT id, title FROM headlines")
	if err != nil {
		return nil, fmt.Errorf("querying titles: %w", err)
	}
	defer closeRows(rows)

	titles := make(map[int64]string)
	for rows.Next() {
		var (
			id    int64
			title string
		)
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		titles[id] = title
	}
	return titles, rows.Err()
}

// UpdateCategory sets the category of one headline.
func (s *Store) UpdateCategory(id int64, category headline.Category) error {
	if _, err := s.db.Exec("UPDATE headlines SET category = ? WHERE id = ?", string(category), id); err != nil {
		return fmt.Errorf("updating category for headline %d: %w", id, err)
	}
	return nil
}

// Stats returns row counts per category plus totals, for the stats endpoint.
func (s *Store) Stats() (map[string]any, error) {
	stats := make(map[string]any)

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM headlines").Scan(&total); err != nil {
		return nil, fmt.Errorf("counting headlines: %w", err)
	}
	stats["total_headlines"] = total

	var days int
	if err := s.db.QueryRow("SELECT COUNT(DISTINCT date) FROM headlines").Scan(&days); err != nil {
		return nil, fmt.Errorf("counting dates: %w", err)
	}
	stats["distinct_dates"] = days

	rows, err := s.db.Query("SELECT category, COUNT(*) FROM headlines GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	defer closeRows(rows)

	categories := make(map[string]int)
	for rows.Next() {
		var (
			category sql.NullString
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		name := category.String
		if name == "" {
			name = string(headline.CategoryNone)
		}
		categories[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	stats["categories"] = categories

	return stats, nil
}

func (s *Store) queryHeadlines(query string, args ...any) ([]headline.Headline, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying headlines: %w", err)
	}
	defer closeRows(rows)

	var headlines []headline.Headline
	for rows.Next() {
		var (
			h        headline.Headline
			source   sql.NullString
			date     string
			category sql.NullString
		)
		if err := rows.Scan(&h.ID, &source, &date, &h.Title, &h.URL, &category); err != nil {
			return nil, fmt.Errorf("scanning headline: %w", err)
		}
		h.Source = source.String
		if t, err := time.Parse(dateFormat, date); err == nil {
			h.Date = t
		}
		if category.Valid && category.String != "" {
			h.Category = headline.Category(category.String)
		} else {
			h.Category = headline.CategoryNone
		}
		headlines = append(headlines, h)
	}
	return headlines, rows.Err()
}

func closeRows(rows *sql.Rows) {
	_ = rows.Close()
}
