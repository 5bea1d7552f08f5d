package models

// Response envelopes
type ItemsResponse struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

type BidsResponse struct {
	Bids  []Bid `json:"bids"`
	Count int   `json:"count"`
}

type QuestionsResponse struct {
	Questions []Question `json:"questions"`
	Count     int        `json:"count"`
}

type UserStatusResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body the backend sends with every non-2xx API status
type ErrorResponse struct {
	Error string `json:"error"`
}

// Upload is a file part of a multipart request
type Upload struct {
	Filename string
	Content  []byte
}

// Request forms
type CreateItemForm struct {
	Title         string
	Description   string
	StartingPrice string
	EndDatetime   string
	Image         *Upload
}

// UpdateProfileForm sends only the fields that are set.
type UpdateProfileForm struct {
	Email        string  `json:"email,omitempty"`
	DateOfBirth  string  `json:"date_of_birth,omitempty"`
	ProfileImage *Upload `json:"-"`
}

type PlaceBidForm struct {
	Amount string `json:"amount"`
}

type QuestionForm struct {
	Text string `json:"text"`
}
