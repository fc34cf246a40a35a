// Package headline defines the headline record stored in the database and the
// closed set of categories a headline can belong to.
package headline

import "time"

// Headline is one archived article: a title, its source link, the date it was
// collected, and a category. Rows are read-mostly; the web layer never
// mutates them.
type Headline struct {
	ID       int64     `json:"id"`
	Source   string    `json:"source,omitempty"`
	Date     time.Time `json:"date"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Category Category  `json:"category"`
}

// Category is the closed set of headline categories. Keeping this a distinct
// type (instead of a free string) means invalid values are rejected before
// they ever reach a store query.
type Category string

const (
	CategoryPolitics      Category = "politics"
	CategoryEconomy       Category = "economy"
	CategoryTechnology    Category = "technology"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
	CategoryInternational Category = "international"
	CategoryScience       Category = "science"
	// CategoryNone marks headlines the classifier could not place.
	CategoryNone Category = "uncategorized"
)

// Categories lists every valid category, uncategorized last. The web UI uses
// this for navigation affordances.
func Categories() []Category {
	return []Category{
		CategoryPolitics,
		CategoryEconomy,
		CategoryTechnology,
		CategorySports,
		CategoryEntertainment,
		CategoryInternational,
		CategoryScience,
		CategoryNone,
	}
}

// ParseCategory validates a user-supplied category value. Unknown values
// return false rather than an error; callers treat them as "no such
// category" and render an empty listing.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	for _, known := range Categories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

func (c Category) String() string {
	return string(c)
}
