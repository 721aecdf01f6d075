package candidate

import "strings"

// Category values and their badge colors form a fixed bijection.
// Color is the authoritative source on import (legacy sheets carried
// only a Color column); category is inferred from it on load.
const (
	CategoryActive          = "Active Candidate"
	CategoryDifficultReach  = "Difficult to Reach"
	CategoryUnableToContact = "Unable to Contact"
	CategoryGotJob          = "Got a Job"
	CategoryActiveHold      = "Active Hold"
	CategoryBJO             = "BJO"
)

// CategoryOptions lists the supported categories in priority order.
// The order doubles as the sort rank for category sorting.
var CategoryOptions = []string{
	CategoryActive,
	CategoryDifficultReach,
	CategoryUnableToContact,
	CategoryGotJob,
	CategoryActiveHold,
	CategoryBJO,
}

var categoryColors = map[string]string{
	CategoryActive:          "green",
	CategoryDifficultReach:  "yellow",
	CategoryUnableToContact: "red",
	CategoryGotJob:          "purple",
	CategoryActiveHold:      "gray",
	CategoryBJO:             "brown",
}

var colorCategories = func() map[string]string {
	m := make(map[string]string, len(categoryColors))
	for cat, color := range categoryColors {
		m[color] = cat
	}
	return m
}()

// ColorOf returns the badge color for a category.
func ColorOf(category string) (string, bool) {
	color, ok := categoryColors[category]
	return color, ok
}

// CategoryOf returns the category for a stored color value. Matching
// is case-insensitive. A non-empty but unrecognized color falls back
// to Active Candidate so legacy highlight colors are never dropped.
func CategoryOf(color string) (string, bool) {
	color = strings.ToLower(strings.TrimSpace(color))
	if color == "" {
		return "", false
	}
	if cat, ok := colorCategories[color]; ok {
		return cat, true
	}
	return CategoryActive, false
}

// CategoryRank returns the sort rank of a category within the fixed
// priority order. Unrecognized categories rank after every known one.
func CategoryRank(category string) int {
	for i, cat := range CategoryOptions {
		if cat == category {
			return i
		}
	}
	return len(CategoryOptions)
}

// ResolveCategory applies the load-time precedence: a stored color
// wins, then an explicit category, then nothing.
func ResolveCategory(category, color string) string {
	if cat, ok := CategoryOf(color); ok || strings.TrimSpace(color) != "" {
		return cat
	}
	return category
}
