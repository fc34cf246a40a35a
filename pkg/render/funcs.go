// Package render holds the template helpers shared by the web UI pages.
package render

import (
	"html/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mainyu/pkg/headline"
)

var titleCaser = cases.Title(language.English)

// categoryLabels maps categories to the Japanese labels shown in navigation.
// English category names fall back to title-casing when unmapped.
var categoryLabels = map[headline.Category]string{
	headline.CategoryPolitics:      "政治",
	headline.CategoryEconomy:       "経済",
	headline.CategoryTechnology:    "テクノロジー",
	headline.CategorySports:        "スポーツ",
	headline.CategoryEntertainment: "エンタメ",
	headline.CategoryInternational: "国際",
	headline.CategoryScience:       "科学",
	headline.CategoryNone:          "未分類",
}

// CategoryLabel returns the display label for a category.
func CategoryLabel(c headline.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return titleCaser.String(string(c))
}

// FormatDate renders a date the way the site shows them (2025/08/01).
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006/01/02")
}

// Funcs returns the function map installed into every page template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"categoryLabel": CategoryLabel,
		"formatDate":    FormatDate,
	}
}
