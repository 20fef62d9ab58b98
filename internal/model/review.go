package model

import "time"

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

type Review struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ReviewInput is the add-review form payload.
type ReviewInput struct {
	ProductID    string `json:"productId"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}
