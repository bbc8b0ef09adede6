package service

import (
	"strings"
	"unicode/utf8"
)

const (
	minRating       = 1.0
	maxRating       = 5.0
	minReviewLength = 10
	maxReviewLength = 1000
)

// validateRating checks the 1–5 range and the half-step rule (rating * 2
// must be a whole number). Both the create and update paths go through this
// one function.
func validateRating(rating float64) *ValidationError {
	if rating < minRating || rating > maxRating {
		return &ValidationError{
			Field:   "rating",
			Message: "Rating must be a number between 1 and 5",
			Detail:  map[string]interface{}{"received": rating},
		}
	}
	if doubled := rating * 2; doubled != float64(int64(doubled)) {
		return &ValidationError{
			Field:   "rating",
			Message: "Rating must be a whole number or half number (e.g., 1, 1.5, 2, etc.)",
			Detail:  map[string]interface{}{"received": rating},
		}
	}
	return nil
}

// validateReviewText trims the text and checks the 10–1000 character bounds,
// distinguishing too short from too long in the failure detail. Bounds are
// in characters, not bytes, matching the schema's char_length CHECK.
func validateReviewText(text string) (string, *ValidationError) {
	trimmed := strings.TrimSpace(text)
	length := utf8.RuneCountInString(trimmed)
	if length < minReviewLength {
		return "", &ValidationError{
			Field:   "reviewText",
			Message: "Review must be at least 10 characters long",
			Detail:  map[string]interface{}{"currentLength": length},
		}
	}
	if length > maxReviewLength {
		return "", &ValidationError{
			Field:   "reviewText",
			Message: "Review cannot exceed 1000 characters",
			Detail:  map[string]interface{}{"currentLength": length},
		}
	}
	return trimmed, nil
}
