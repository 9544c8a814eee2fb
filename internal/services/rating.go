package services

// RatingCategory is the coarse bucket a numeric rating average falls into.
// It is derived on the fly and never persisted.
type RatingCategory string

const (
	RatingLow  RatingCategory = "low"
	RatingMid  RatingCategory = "mid"
	RatingHigh RatingCategory = "high"
)

// CategorizeRating maps a 1-5 rating average to its category. Out-of-range
// values are not rejected; they fall through the same thresholds.
func CategorizeRating(avg float64) RatingCategory {
	switch {
	case avg <= 2:
		return RatingLow
	case avg <= 3:
		return RatingMid
	default:
		return RatingHigh
	}
}
