package domain

import "math"

// RatingSummary is the derived rating view of a place.
type RatingSummary struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"reviewsCount"`
}

// AggregateRatings returns the mean of ratings rounded to two decimals and
// the number of ratings. An empty input yields {0, 0}.
//
// Search and detail both go through this function so they always report the
// same numbers for a place.
func AggregateRatings(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	return RatingSummary{
		Average: RoundRating(float64(sum) / float64(len(ratings))),
		Count:   len(ratings),
	}
}

// RoundRating rounds v half away from zero to two decimal places.
func RoundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
