package repository

import (
	"fmt"
	"sort"
	"sync"

	"auction-client/internal/auctionerrors"
	model "auction-client/internal/models"
	"auction-client/utils"

	"github.com/shopspring/decimal"
)

// AuctionDB defines the storage interface for the stub auction backend
type AuctionDB interface {
	AddUser(user model.User) model.User
	GetUser(userID int64) (model.User, error)
	UpdateUser(user model.User) error

	CreateSession(userID int64) (string, error)
	UserBySession(token string) (model.User, error)
	DeleteSession(token string)

	AddItem(item model.Item) model.Item
	GetItem(itemID int64) (model.Item, error)
	ListItems() []model.Item
	DeleteItem(itemID int64) error

	RecordBidForItem(bid model.Bid) (model.Bid, error)
	GetBidsByItem(itemID int64) ([]model.Bid, error)
	GetWinningBid(itemID int64) (model.Bid, error)

	AddQuestion(question model.Question) (model.Question, error)
	GetQuestion(questionID int64) (model.Question, error)
	GetQuestionsByItem(itemID int64) []model.Question
	AddAnswer(answer model.Answer) (model.Answer, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu        sync.RWMutex
	nextID    int64
	users     map[int64]model.User
	sessions  map[string]int64         // key: session token -> value: userID
	items     map[int64]model.Item     // key: itemID -> value: item
	bids      map[int64][]model.Bid    // key: itemID -> value: bids in insertion order
	questions map[int64]model.Question // key: questionID -> value: question without answers
	answers   map[int64][]model.Answer // key: questionID -> value: answers
	itemQs    map[int64][]int64        // key: itemID -> value: questionIDs
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:     make(map[int64]model.User),
		sessions:  make(map[string]int64),
		items:     make(map[int64]model.Item),
		bids:      make(map[int64][]model.Bid),
		questions: make(map[int64]model.Question),
		answers:   make(map[int64][]model.Answer),
		itemQs:    make(map[int64][]int64),
	}
}

// id returns the next identifier. Callers hold mu.
func (r *MemoryRepo) id() int64 {
	r.nextID++
	return r.nextID
}

// AddUser stores a user, assigning an ID when it has none
func (r *MemoryRepo) AddUser(user model.User) model.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		user.ID = r.id()
	} else if user.ID > r.nextID {
		r.nextID = user.ID
	}
	r.users[user.ID] = user
	return user
}

// GetUser returns a user by ID
func (r *MemoryRepo) GetUser(userID int64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %d: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// UpdateUser replaces an existing user and refreshes the owner copy embedded in their items
func (r *MemoryRepo) UpdateUser(user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("update user %d: %w", user.ID, auctionerrors.ErrUserNotFound)
	}
	r.users[user.ID] = user

	for id, item := range r.items {
		if item.Owner.ID == user.ID {
			item.Owner = user.UserMinimal
			r.items[id] = item
		}
	}
	return nil
}

// CreateSession issues a session token for a known user
func (r *MemoryRepo) CreateSession(userID int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return "", fmt.Errorf("create session for user %d: %w", userID, auctionerrors.ErrUserNotFound)
	}
	token := utils.GenerateToken()
	r.sessions[token] = userID
	return token, nil
}

// UserBySession resolves a session token to its user
func (r *MemoryRepo) UserBySession(token string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.sessions[token]
	if !ok {
		return model.User{}, auctionerrors.ErrUnauthenticated
	}
	user, ok := r.users[userID]
	if !ok {
		return model.User{}, auctionerrors.ErrUnauthenticated
	}
	return user, nil
}

// DeleteSession forgets a session token
func (r *MemoryRepo) DeleteSession(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

// AddItem stores an item, assigning an ID when it has none
func (r *MemoryRepo) AddItem(item model.Item) model.Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		item.ID = r.id()
	} else if item.ID > r.nextID {
		r.nextID = item.ID
	}
	r.items[item.ID] = item
	return item
}

// GetItem returns an item by ID
func (r *MemoryRepo) GetItem(itemID int64) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return model.Item{}, fmt.Errorf("get item %d: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	return item, nil
}

// ListItems returns all items, newest first
func (r *MemoryRepo) ListItems() []model.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

// DeleteItem removes an item with its bids, questions and answers
func (r *MemoryRepo) DeleteItem(itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return fmt.Errorf("delete item %d: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	delete(r.items, itemID)
	delete(r.bids, itemID)
	for _, qID := range r.itemQs[itemID] {
		delete(r.questions, qID)
		delete(r.answers, qID)
	}
	delete(r.itemQs, itemID)
	return nil
}

// RecordBidForItem records a user's bid on an item
func (r *MemoryRepo) RecordBidForItem(bid model.Bid) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[bid.ItemID]; !ok {
		return model.Bid{}, fmt.Errorf("record bid for item %d: %w", bid.ItemID, auctionerrors.ErrItemNotFound)
	}

	bid.ID = r.id()
	r.bids[bid.ItemID] = append(r.bids[bid.ItemID], bid)
	return bid, nil
}

// GetBidsByItem returns all bids for an item, newest first
func (r *MemoryRepo) GetBidsByItem(itemID int64) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[itemID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for item %d: %w", itemID, auctionerrors.ErrNoBids)
	}

	out := make([]model.Bid, len(bids))
	for i, b := range bids {
		out[len(bids)-1-i] = b
	}
	return out, nil
}

// GetWinningBid returns the highest bid for an item
func (r *MemoryRepo) GetWinningBid(itemID int64) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[itemID]
	if !ok || len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("get winning bid for item %d: %w", itemID, auctionerrors.ErrNoBids)
	}

	winning := bids[0]
	winningAmount := decimal.RequireFromString(winning.Amount)
	for _, b := range bids[1:] {
		amount := decimal.RequireFromString(b.Amount)
		if amount.GreaterThan(winningAmount) || (amount.Equal(winningAmount) && b.Timestamp.Before(winning.Timestamp)) {
			winning = b
			winningAmount = amount
		}
	}
	return winning, nil
}

// AddQuestion stores a question about an existing item
func (r *MemoryRepo) AddQuestion(question model.Question) (model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[question.ItemID]; !ok {
		return model.Question{}, fmt.Errorf("add question for item %d: %w", question.ItemID, auctionerrors.ErrItemNotFound)
	}

	question.ID = r.id()
	question.Answers = []model.Answer{}
	r.questions[question.ID] = question
	r.itemQs[question.ItemID] = append(r.itemQs[question.ItemID], question.ID)
	return question, nil
}

// GetQuestion returns a question with its answers
func (r *MemoryRepo) GetQuestion(questionID int64) (model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[questionID]
	if !ok {
		return model.Question{}, fmt.Errorf("get question %d: %w", questionID, auctionerrors.ErrQuestionNotFound)
	}
	return r.withAnswers(q), nil
}

// GetQuestionsByItem returns an item's questions, newest first, with answers
func (r *MemoryRepo) GetQuestionsByItem(itemID int64) []model.Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.itemQs[itemID]
	out := make([]model.Question, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, r.withAnswers(r.questions[ids[i]]))
	}
	return out
}

// AddAnswer stores an answer to an existing question
func (r *MemoryRepo) AddAnswer(answer model.Answer) (model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[answer.QuestionID]; !ok {
		return model.Answer{}, fmt.Errorf("add answer to question %d: %w", answer.QuestionID, auctionerrors.ErrQuestionNotFound)
	}

	answer.ID = r.id()
	r.answers[answer.QuestionID] = append(r.answers[answer.QuestionID], answer)
	return answer, nil
}

// withAnswers attaches a copy of the question's answers. Callers hold mu.
func (r *MemoryRepo) withAnswers(q model.Question) model.Question {
	q.Answers = append([]model.Answer{}, r.answers[q.ID]...)
	return q
}
