package models

import "time"

// UserMinimal is the reduced user record embedded in items, bids and questions
type UserMinimal struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profile_image"`
}

// User is the full profile, only returned for the authenticated user
type User struct {
	UserMinimal
	Email       string  `json:"email"`
	DateOfBirth *string `json:"date_of_birth"`
}

// Item represents an auction listing
type Item struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	StartingPrice string      `json:"starting_price"`
	CurrentPrice  string      `json:"current_price"`
	Image         *string     `json:"image"`
	EndDatetime   time.Time   `json:"end_datetime"`
	Owner         UserMinimal `json:"owner"`
	BidCount      int         `json:"bid_count"`
	IsActive      bool        `json:"is_active"`
	CreatedAt     time.Time   `json:"created_at"`
}

// ItemDetail is an Item with its bid history and questions
type ItemDetail struct {
	Item
	Bids          []Bid        `json:"bids"`
	Questions     []Question   `json:"questions"`
	HighestBidder *UserMinimal `json:"highest_bidder"`
}

// Bid represents a user's bid on an item. Amount is a decimal string.
type Bid struct {
	ID        int64       `json:"id"`
	ItemID    int64       `json:"item_id"`
	Bidder    UserMinimal `json:"bidder"`
	Amount    string      `json:"amount"`
	Timestamp time.Time   `json:"timestamp"`
}

// Answer is the item owner's reply to a question
type Answer struct {
	ID         int64       `json:"id"`
	QuestionID int64       `json:"question_id"`
	Responder  UserMinimal `json:"responder"`
	Text       string      `json:"text"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Question is a public question asked about an item
type Question struct {
	ID        int64       `json:"id"`
	ItemID    int64       `json:"item_id"`
	Asker     UserMinimal `json:"asker"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
	Answers   []Answer    `json:"answers"`
}
