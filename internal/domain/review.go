package domain

import (
	"time"
)

// Review is the source of truth for rating data. Exactly one review may
// exist per (user, movie) pair; the constraint is enforced by the store.
type Review struct {
	ID         string    `json:"id" db:"id"`
	MovieID    string    `json:"movieId" db:"movie_id"`
	UserID     string    `json:"userId" db:"user_id"`
	Rating     float64   `json:"rating" db:"rating"`
	ReviewText string    `json:"reviewText" db:"review_text"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
	Username   string    `json:"username,omitempty"` // populated from the user store, not persisted on reviews
}

// CreateReviewRequest defines the request body for submitting a review.
// Rating and text carry their own range/step and length rules, checked by
// the review service so failures can report field-level detail.
type CreateReviewRequest struct {
	Rating     *float64 `json:"rating"`
	ReviewText *string  `json:"reviewText"`
}

// UpdateReviewRequest is a partial patch; omitted fields are left unchanged.
type UpdateReviewRequest struct {
	Rating     *float64 `json:"rating"`
	ReviewText *string  `json:"reviewText"`
}

// ExistingReview is the payload surfaced on a duplicate submission so the
// caller can offer an edit path instead.
type ExistingReview struct {
	Rating     float64   `json:"rating"`
	ReviewText string    `json:"reviewText"`
	CreatedAt  time.Time `json:"createdAt"`
}
