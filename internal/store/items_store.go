package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"auction-client/internal/api"
	"auction-client/internal/models"
	"auction-client/utils"
)

const itemsPath = "/api/items/"

// ItemsState is a point-in-time copy of the catalog container.
type ItemsState struct {
	Items         []models.Item
	CurrentItem   *models.ItemDetail
	SearchResults []models.Item
	MyItems       []models.Item
	Loading       bool
	Error         string
	SearchQuery   string
}

// ItemsStore is the catalog container. Its collections are fetched and
// replaced independently; mutations refresh or patch only the collections
// they affect. Overlapping calls are not coordinated: the last response to
// arrive wins.
type ItemsStore struct {
	Observable

	api api.Requester

	mu    sync.RWMutex
	state ItemsState
}

// NewItemsStore creates an empty catalog container.
func NewItemsStore(requester api.Requester) *ItemsStore {
	return &ItemsStore{api: requester}
}

// State returns a copy of the current state.
func (s *ItemsStore) State() ItemsState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Items = append([]models.Item(nil), st.Items...)
	st.SearchResults = append([]models.Item(nil), st.SearchResults...)
	st.MyItems = append([]models.Item(nil), st.MyItems...)
	if st.CurrentItem != nil {
		detail := *st.CurrentItem
		detail.Bids = append([]models.Bid(nil), detail.Bids...)
		detail.Questions = append([]models.Question(nil), detail.Questions...)
		for i := range detail.Questions {
			detail.Questions[i].Answers = append([]models.Answer(nil), detail.Questions[i].Answers...)
		}
		st.CurrentItem = &detail
	}
	return st
}

// ActiveItems returns the items in the primary collection that are still active.
func (s *ItemsStore) ActiveItems() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]models.Item, 0, len(s.state.Items))
	for _, item := range s.state.Items {
		if item.IsActive {
			active = append(active, item)
		}
	}
	return active
}

func (s *ItemsStore) HasItems() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Items) > 0
}

// IsSearching reports whether a non-empty query is set, regardless of results.
func (s *ItemsStore) IsSearching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.SearchQuery) > 0
}

// FetchItems replaces the primary collection with the active-items listing.
func (s *ItemsStore) FetchItems(ctx context.Context) {
	_ = s.run("FetchItems", "Failed to fetch items", func() error {
		var resp models.ItemsResponse
		if err := s.api.Get(ctx, itemsPath, &resp); err != nil {
			return err
		}
		s.update(func(st *ItemsState) { st.Items = resp.Items })
		return nil
	})
}

// SearchItems records query and, unless it is blank, replaces the search
// results with the backend's keyword matches. A blank query clears the
// results without a network call.
func (s *ItemsStore) SearchItems(ctx context.Context, query string) {
	s.update(func(st *ItemsState) { st.SearchQuery = query })
	if strings.TrimSpace(query) == "" {
		s.update(func(st *ItemsState) { st.SearchResults = []models.Item{} })
		return
	}

	_ = s.run("SearchItems", "Failed to search items", func() error {
		var resp models.ItemsResponse
		path := itemsPath + "?" + url.Values{"q": {query}}.Encode()
		if err := s.api.Get(ctx, path, &resp); err != nil {
			return err
		}
		s.update(func(st *ItemsState) { st.SearchResults = resp.Items })
		return nil
	})
}

// FetchMyItems loads the caller's own items, including ended ones.
func (s *ItemsStore) FetchMyItems(ctx context.Context) {
	_ = s.run("FetchMyItems", "Failed to fetch your items", func() error {
		var resp models.ItemsResponse
		if err := s.api.Get(ctx, itemsPath+"?my=true&all=true", &resp); err != nil {
			return err
		}
		s.update(func(st *ItemsState) { st.MyItems = resp.Items })
		return nil
	})
}

// FetchItem replaces CurrentItem with the item's full detail. On failure the
// previous CurrentItem is kept.
func (s *ItemsStore) FetchItem(ctx context.Context, itemID int64) {
	_ = s.run("FetchItem", "Failed to fetch item", func() error {
		var detail models.ItemDetail
		if err := s.api.Get(ctx, itemPath(itemID), &detail); err != nil {
			return err
		}
		s.update(func(st *ItemsState) { st.CurrentItem = &detail })
		return nil
	})
}

// CreateItem posts a new listing as multipart and prepends the created item
// to the primary collection.
func (s *ItemsStore) CreateItem(ctx context.Context, form models.CreateItemForm) (models.Item, error) {
	var created models.Item
	err := s.run("CreateItem", "Failed to create item", func() error {
		payload := api.NewForm().
			Set("title", form.Title).
			Set("description", form.Description).
			Set("starting_price", form.StartingPrice).
			Set("end_datetime", form.EndDatetime)
		if form.Image != nil {
			payload.AttachFile("image", *form.Image)
		}

		if err := s.api.Post(ctx, itemsPath, payload, &created); err != nil {
			return err
		}
		s.update(func(st *ItemsState) {
			st.Items = append([]models.Item{created}, st.Items...)
		})
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}
	return created, nil
}

// DeleteItem removes the item remotely and then from both the primary and
// "my items" collections. CurrentItem is left as is.
func (s *ItemsStore) DeleteItem(ctx context.Context, itemID int64) error {
	return s.run("DeleteItem", "Failed to delete item", func() error {
		var resp models.DeleteResponse
		if err := s.api.Delete(ctx, itemPath(itemID), &resp); err != nil {
			return err
		}
		s.update(func(st *ItemsState) {
			st.Items = withoutItem(st.Items, itemID)
			st.MyItems = withoutItem(st.MyItems, itemID)
		})
		return nil
	})
}

// PlaceBid posts a bid and then refetches the item detail so the price and
// bid list come from the server.
func (s *ItemsStore) PlaceBid(ctx context.Context, itemID int64, form models.PlaceBidForm) (models.Bid, error) {
	var bid models.Bid
	err := s.run("PlaceBid", "Failed to place bid", func() error {
		if err := s.api.Post(ctx, itemPath(itemID)+"bids/", form, &bid); err != nil {
			return err
		}
		s.FetchItem(ctx, itemID)
		return nil
	})
	if err != nil {
		return models.Bid{}, err
	}
	return bid, nil
}

// AskQuestion posts a question and refetches the item detail.
func (s *ItemsStore) AskQuestion(ctx context.Context, itemID int64, form models.QuestionForm) (models.Question, error) {
	var question models.Question
	err := s.run("AskQuestion", "Failed to ask question", func() error {
		if err := s.api.Post(ctx, itemPath(itemID)+"questions/", form, &question); err != nil {
			return err
		}
		s.FetchItem(ctx, itemID)
		return nil
	})
	if err != nil {
		return models.Question{}, err
	}
	return question, nil
}

// AnswerQuestion posts an answer. The current item, if one is loaded, is
// refetched; otherwise the refresh is skipped.
func (s *ItemsStore) AnswerQuestion(ctx context.Context, questionID int64, form models.QuestionForm) (models.Answer, error) {
	var answer models.Answer
	err := s.run("AnswerQuestion", "Failed to answer question", func() error {
		path := fmt.Sprintf("/api/questions/%d/answers/", questionID)
		if err := s.api.Post(ctx, path, form, &answer); err != nil {
			return err
		}

		s.mu.RLock()
		current := s.state.CurrentItem
		s.mu.RUnlock()
		if current != nil {
			s.FetchItem(ctx, current.ID)
		}
		return nil
	})
	if err != nil {
		return models.Answer{}, err
	}
	return answer, nil
}

func (s *ItemsStore) ClearCurrentItem() {
	s.update(func(st *ItemsState) { st.CurrentItem = nil })
}

func (s *ItemsStore) ClearSearch() {
	s.update(func(st *ItemsState) {
		st.SearchQuery = ""
		st.SearchResults = []models.Item{}
	})
}

func (s *ItemsStore) ClearError() {
	s.update(func(st *ItemsState) { st.Error = "" })
}

// run applies the shared action policy: loading on and error cleared before
// the call, error recorded on failure, loading off afterwards. The error is
// returned for mutating actions to re-raise.
func (s *ItemsStore) run(action, fallbackMsg string, fn func() error) error {
	s.update(func(st *ItemsState) {
		st.Loading = true
		st.Error = ""
	})
	defer s.update(func(st *ItemsState) { st.Loading = false })

	if err := fn(); err != nil {
		msg := errorMessage(err, fallbackMsg)
		utils.Warn(action+": failed", map[string]any{"error": msg})
		s.update(func(st *ItemsState) { st.Error = msg })
		return err
	}
	return nil
}

func (s *ItemsStore) update(fn func(st *ItemsState)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.notify()
}

func itemPath(itemID int64) string {
	return fmt.Sprintf("%s%d/", itemsPath, itemID)
}

func withoutItem(items []models.Item, itemID int64) []models.Item {
	kept := make([]models.Item, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	return kept
}
