package service

import (
	"errors"

	"github.com/dhanush217/Movie-review/internal/domain"
	"github.com/dhanush217/Movie-review/internal/store"
)

// ErrNotReviewOwner is returned when a user tries to mutate a review they
// did not create.
var ErrNotReviewOwner = errors.New("user is not the owner of this review")

// ValidationError reports a rejected input field with enough detail for the
// caller to correct it (e.g. current vs required length).
type ValidationError struct {
	Field   string                 `json:"field"`
	Message string                 `json:"message"`
	Detail  map[string]interface{} `json:"detail,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DuplicateReviewError is returned when a user already has a review for the
// movie. It carries the existing review so the caller can offer an edit path.
type DuplicateReviewError struct {
	Existing domain.ExistingReview
}

func (e *DuplicateReviewError) Error() string {
	return "you have already reviewed this movie"
}

// Unwrap lets errors.Is(err, store.ErrDuplicateReview) keep working for
// callers that only care about the category.
func (e *DuplicateReviewError) Unwrap() error {
	return store.ErrDuplicateReview
}
