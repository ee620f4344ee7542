package core

import (
	"cmp"
	"slices"

	"github.com/fuikk/fuikk/schema"
)

// RankSummaries sorts rows by average rating, best (lowest) first, and
// returns the top limit rows. Rows without responses have no rating and go
// last. Ties keep report order. A limit of zero or less returns every row.
func RankSummaries(rows []schema.CourseSummary, limit int) []schema.CourseSummary {
	slices.SortStableFunc(rows, func(a, b schema.CourseSummary) int {
		if unrated := cmp.Compare(btoi(a.TotalResponses == 0), btoi(b.TotalResponses == 0)); unrated != 0 {
			return unrated
		}
		return cmp.Compare(a.AverageRating, b.AverageRating)
	})
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
