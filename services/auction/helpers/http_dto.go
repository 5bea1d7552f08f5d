package helpers

// Request DTOs
type PlaceBidRequest struct {
	Amount string `json:"amount"`
}

type QuestionRequest struct {
	Text string `json:"text"`
}

// CreateItemRequest binds from JSON or multipart form fields
type CreateItemRequest struct {
	Title         string `json:"title" form:"title"`
	Description   string `json:"description" form:"description"`
	StartingPrice string `json:"starting_price" form:"starting_price"`
	EndDatetime   string `json:"end_datetime" form:"end_datetime"`
}

// ProfileRequest distinguishes absent fields (nil) from empty ones
type ProfileRequest struct {
	Email       *string `json:"email" form:"email"`
	DateOfBirth *string `json:"date_of_birth" form:"date_of_birth"`
}

// Response DTOs
type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}
