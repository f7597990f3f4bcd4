package dto

// RatingForm for creating or updating a rating; the rate is 1-5.
type RatingForm struct {
	Rate *int `json:"rate" binding:"required,min=1,max=5"`
}
