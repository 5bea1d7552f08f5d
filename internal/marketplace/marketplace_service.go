package marketplace

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-client/internal/auctionerrors"
	"auction-client/internal/models"
	"auction-client/internal/repository"

	"github.com/shopspring/decimal"
)

// detailBidLimit is how many of the latest bids an item detail carries
const detailBidLimit = 10

// ItemFilter selects the listing returned by ListItems
type ItemFilter struct {
	Query   string
	MyItems bool
	All     bool // include ended auctions
}

// NewItem is the validated-by-service input for CreateItem
type NewItem struct {
	Title         string
	Description   string
	StartingPrice string
	EndDatetime   string
	ImageURL      *string
}

// ProfileUpdate carries the profile fields a request set
type ProfileUpdate struct {
	Email           *string
	DateOfBirth     *string
	ProfileImageURL *string
}

// MarketplaceService implements the stub backend's auction rules
type MarketplaceService struct {
	repo repository.AuctionDB
	now  func() time.Time
}

// NewMarketplaceService creates a new MarketplaceService instance
func NewMarketplaceService(repo repository.AuctionDB) *MarketplaceService {
	return &MarketplaceService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the service clock, for tests
func (s *MarketplaceService) WithClock(now func() time.Time) *MarketplaceService {
	s.now = now
	return s
}

// Authenticate resolves a session token to its user
func (s *MarketplaceService) Authenticate(token string) (models.User, error) {
	if token == "" {
		return models.User{}, auctionerrors.ErrUnauthenticated
	}
	return s.repo.UserBySession(token)
}

// Login opens a session for userID and returns its token
func (s *MarketplaceService) Login(userID int64) (string, error) {
	token, err := s.repo.CreateSession(userID)
	if err != nil {
		return "", fmt.Errorf("service: failed to log in user %d: %w", userID, err)
	}
	return token, nil
}

// Logout closes a session
func (s *MarketplaceService) Logout(token string) {
	s.repo.DeleteSession(token)
}

// ListItems returns hydrated items matching filter, newest first
func (s *MarketplaceService) ListItems(userID int64, filter ItemFilter) ([]models.Item, error) {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	now := s.now()

	items := make([]models.Item, 0)
	for _, item := range s.repo.ListItems() {
		if filter.MyItems && item.Owner.ID != userID {
			continue
		}
		if !filter.All && !item.EndDatetime.After(now) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Title), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		items = append(items, s.hydrate(item))
	}
	return items, nil
}

// GetItemDetail returns an item with its latest bids, questions and highest bidder
func (s *MarketplaceService) GetItemDetail(itemID int64) (models.ItemDetail, error) {
	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return models.ItemDetail{}, fmt.Errorf("service: failed to get item %d: %w", itemID, err)
	}

	detail := models.ItemDetail{
		Item:      s.hydrate(item),
		Bids:      []models.Bid{},
		Questions: s.repo.GetQuestionsByItem(itemID),
	}

	bids, err := s.repo.GetBidsByItem(itemID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		return models.ItemDetail{}, fmt.Errorf("service: failed to get bids for item %d: %w", itemID, err)
	}
	if len(bids) > detailBidLimit {
		bids = bids[:detailBidLimit]
	}
	if bids != nil {
		detail.Bids = bids
	}

	if winning, err := s.repo.GetWinningBid(itemID); err == nil {
		bidder := winning.Bidder
		detail.HighestBidder = &bidder
	}
	return detail, nil
}

// CreateItem validates and stores a new listing owned by owner
func (s *MarketplaceService) CreateItem(owner models.User, input NewItem) (models.Item, error) {
	required := []struct{ name, value string }{
		{"title", input.Title},
		{"description", input.Description},
		{"starting_price", input.StartingPrice},
		{"end_datetime", input.EndDatetime},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return models.Item{}, auctionerrors.WithDetail(auctionerrors.ErrMissingField, "Missing required field: %s", field.name)
		}
	}

	price, err := decimal.NewFromString(input.StartingPrice)
	if err != nil || price.IsNegative() {
		return models.Item{}, auctionerrors.WithDetail(auctionerrors.ErrInvalidData, "Invalid data: starting_price %q", input.StartingPrice)
	}
	end, err := parseDatetime(input.EndDatetime)
	if err != nil {
		return models.Item{}, auctionerrors.WithDetail(auctionerrors.ErrInvalidData, "Invalid data: end_datetime %q", input.EndDatetime)
	}

	item := s.repo.AddItem(models.Item{
		Title:         input.Title,
		Description:   input.Description,
		StartingPrice: price.StringFixed(2),
		Image:         input.ImageURL,
		EndDatetime:   end,
		Owner:         owner.UserMinimal,
		CreatedAt:     s.now(),
	})
	return s.hydrate(item), nil
}

// DeleteItem removes an item; only its owner may do so
func (s *MarketplaceService) DeleteItem(userID, itemID int64) error {
	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return fmt.Errorf("service: failed to delete item %d: %w", itemID, err)
	}
	if item.Owner.ID != userID {
		return fmt.Errorf("service: %w - user %d does not own item %d", auctionerrors.ErrPermissionDenied, userID, itemID)
	}
	if err := s.repo.DeleteItem(itemID); err != nil {
		return fmt.Errorf("service: failed to delete item %d: %w", itemID, err)
	}
	return nil
}

// PlaceBid validates and records a user's bid for an item
func (s *MarketplaceService) PlaceBid(bidder models.User, itemID int64, amount string) (models.Bid, error) {
	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to place bid on item %d: %w", itemID, err)
	}

	value, err := s.validateBid(bidder, item, amount)
	if err != nil {
		return models.Bid{}, err
	}

	bid, err := s.repo.RecordBidForItem(models.Bid{
		ItemID:    itemID,
		Bidder:    bidder.UserMinimal,
		Amount:    value.StringFixed(2),
		Timestamp: s.now(),
	})
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for item %d by user %d: %w", itemID, bidder.ID, err)
	}
	return bid, nil
}

// validateBid checks input validity and business rules for bidding
func (s *MarketplaceService) validateBid(bidder models.User, item models.Item, amount string) (decimal.Decimal, error) {
	if !item.EndDatetime.After(s.now()) {
		return decimal.Decimal{}, auctionerrors.ErrAuctionEnded
	}
	if item.Owner.ID == bidder.ID {
		return decimal.Decimal{}, auctionerrors.ErrOwnItem
	}
	if strings.TrimSpace(amount) == "" {
		return decimal.Decimal{}, auctionerrors.WithDetail(auctionerrors.ErrInvalidBid, "Missing amount")
	}
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Decimal{}, auctionerrors.WithDetail(auctionerrors.ErrInvalidBid, "Invalid amount")
	}

	current, err := s.currentPrice(item)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if value.LessThanOrEqual(current) {
		return decimal.Decimal{}, auctionerrors.WithDetail(auctionerrors.ErrBidTooLow, "Bid must be higher than current price (£%s)", current.StringFixed(2))
	}
	return value, nil
}

// GetBidsForItem returns all bids for a specific item, newest first
func (s *MarketplaceService) GetBidsForItem(itemID int64) ([]models.Bid, error) {
	if _, err := s.repo.GetItem(itemID); err != nil {
		return nil, fmt.Errorf("service: failed to get bids for item %d: %w", itemID, err)
	}

	bids, err := s.repo.GetBidsByItem(itemID)
	if errors.Is(err, auctionerrors.ErrNoBids) {
		return []models.Bid{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for item %d: %w", itemID, err)
	}
	return bids, nil
}

// AskQuestion stores a question about an item
func (s *MarketplaceService) AskQuestion(asker models.User, itemID int64, text string) (models.Question, error) {
	if strings.TrimSpace(text) == "" {
		return models.Question{}, auctionerrors.WithDetail(auctionerrors.ErrMissingField, "Question text is required")
	}

	q, err := s.repo.AddQuestion(models.Question{
		ItemID:    itemID,
		Asker:     asker.UserMinimal,
		Text:      strings.TrimSpace(text),
		Timestamp: s.now(),
	})
	if err != nil {
		return models.Question{}, fmt.Errorf("service: failed to ask question on item %d: %w", itemID, err)
	}
	return q, nil
}

// GetQuestionsForItem returns an item's questions with answers
func (s *MarketplaceService) GetQuestionsForItem(itemID int64) ([]models.Question, error) {
	if _, err := s.repo.GetItem(itemID); err != nil {
		return nil, fmt.Errorf("service: failed to get questions for item %d: %w", itemID, err)
	}
	return s.repo.GetQuestionsByItem(itemID), nil
}

// AnswerQuestion stores an answer; only the item's owner may answer
func (s *MarketplaceService) AnswerQuestion(responder models.User, questionID int64, text string) (models.Answer, error) {
	q, err := s.repo.GetQuestion(questionID)
	if err != nil {
		return models.Answer{}, fmt.Errorf("service: failed to answer question %d: %w", questionID, err)
	}
	item, err := s.repo.GetItem(q.ItemID)
	if err != nil {
		return models.Answer{}, fmt.Errorf("service: failed to answer question %d: %w", questionID, err)
	}
	if item.Owner.ID != responder.ID {
		return models.Answer{}, auctionerrors.WithDetail(auctionerrors.ErrPermissionDenied, "Only the item owner can answer questions")
	}
	if strings.TrimSpace(text) == "" {
		return models.Answer{}, auctionerrors.WithDetail(auctionerrors.ErrMissingField, "Answer text is required")
	}

	answer, err := s.repo.AddAnswer(models.Answer{
		QuestionID: questionID,
		Responder:  responder.UserMinimal,
		Text:       strings.TrimSpace(text),
		Timestamp:  s.now(),
	})
	if err != nil {
		return models.Answer{}, fmt.Errorf("service: failed to answer question %d: %w", questionID, err)
	}
	return answer, nil
}

// UpdateProfile applies the set fields of update to the user's profile
func (s *MarketplaceService) UpdateProfile(userID int64, update ProfileUpdate) (models.User, error) {
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to update profile %d: %w", userID, err)
	}

	if update.Email != nil {
		if *update.Email != "" && !strings.Contains(*update.Email, "@") {
			return models.User{}, auctionerrors.WithDetail(auctionerrors.ErrInvalidData, "Enter a valid email address.")
		}
		user.Email = *update.Email
	}
	if update.DateOfBirth != nil && *update.DateOfBirth != "" {
		if _, err := time.Parse(time.DateOnly, *update.DateOfBirth); err != nil {
			return models.User{}, auctionerrors.WithDetail(auctionerrors.ErrInvalidData, "Invalid data: date_of_birth %q", *update.DateOfBirth)
		}
		dob := *update.DateOfBirth
		user.DateOfBirth = &dob
	}
	if update.ProfileImageURL != nil {
		user.ProfileImage = update.ProfileImageURL
	}

	if err := s.repo.UpdateUser(user); err != nil {
		return models.User{}, fmt.Errorf("service: failed to update profile %d: %w", userID, err)
	}
	return user, nil
}

// hydrate fills the derived fields: current price, bid count and active flag
func (s *MarketplaceService) hydrate(item models.Item) models.Item {
	if current, err := s.currentPrice(item); err == nil {
		item.CurrentPrice = current.StringFixed(2)
	} else {
		item.CurrentPrice = item.StartingPrice
	}

	bids, _ := s.repo.GetBidsByItem(item.ID)
	item.BidCount = len(bids)
	item.IsActive = item.EndDatetime.After(s.now())
	return item
}

// currentPrice is the highest bid, or the starting price when there are none
func (s *MarketplaceService) currentPrice(item models.Item) (decimal.Decimal, error) {
	winning, err := s.repo.GetWinningBid(item.ID)
	if err == nil {
		return decimal.NewFromString(winning.Amount)
	}
	if !errors.Is(err, auctionerrors.ErrNoBids) {
		return decimal.Decimal{}, fmt.Errorf("service: failed to check winning bid: %w", err)
	}
	return decimal.NewFromString(item.StartingPrice)
}

// parseDatetime accepts RFC 3339 and the HTML datetime-local format
func parseDatetime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", value)
}
