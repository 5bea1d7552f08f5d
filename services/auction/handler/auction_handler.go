package handler

import (
	"errors"
	"net/http"

	"auction-client/internal/auctionerrors"
	"auction-client/internal/marketplace"
	"auction-client/internal/models"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

type MarketplaceServiceInterface interface {
	ListItems(userID int64, filter marketplace.ItemFilter) ([]models.Item, error)
	GetItemDetail(itemID int64) (models.ItemDetail, error)
	CreateItem(owner models.User, input marketplace.NewItem) (models.Item, error)
	DeleteItem(userID, itemID int64) error
	PlaceBid(bidder models.User, itemID int64, amount string) (models.Bid, error)
	GetBidsForItem(itemID int64) ([]models.Bid, error)
	AskQuestion(asker models.User, itemID int64, text string) (models.Question, error)
	GetQuestionsForItem(itemID int64) ([]models.Question, error)
	AnswerQuestion(responder models.User, questionID int64, text string) (models.Answer, error)
	UpdateProfile(userID int64, update marketplace.ProfileUpdate) (models.User, error)
}

type AuctionHandler struct {
	service MarketplaceServiceInterface
}

func NewAuctionHandler(service MarketplaceServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// UserStatusHandler handles GET /api/user/status/
func (h *AuctionHandler) UserStatusHandler(c *gin.Context) {
	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONResponse(c, http.StatusOK, models.UserStatusResponse{Authenticated: false})
		return
	}
	utils.JSONResponse(c, http.StatusOK, models.UserStatusResponse{Authenticated: true, User: &user})
}

// GetProfileHandler handles GET /api/profile/
func (h *AuctionHandler) GetProfileHandler(c *gin.Context) {
	user, ok := h.requireUser(c, "GetProfileHandler")
	if !ok {
		return
	}
	utils.JSONResponse(c, http.StatusOK, user)
}

// UpdateProfileHandler handles PUT /api/profile/ with a JSON or multipart body
func (h *AuctionHandler) UpdateProfileHandler(c *gin.Context) {
	user, ok := h.requireUser(c, "UpdateProfileHandler")
	if !ok {
		return
	}

	var req helpers.ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.HandleBindError(c, "UpdateProfileHandler", err)
		return
	}

	update := marketplace.ProfileUpdate{Email: req.Email, DateOfBirth: req.DateOfBirth}
	if url, ok := helpers.UploadedFileURL(c, "profile_image", "profiles"); ok {
		update.ProfileImageURL = &url
	}

	updated, err := h.service.UpdateProfile(user.ID, update)
	if err != nil {
		helpers.RespondError(c, "UpdateProfileHandler", err, map[string]any{"user_id": user.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, updated)
	helpers.LogSuccess("UpdateProfileHandler", "profile updated", map[string]any{"user_id": user.ID})
}

// ListItemsHandler handles GET /api/items/?q=&my=true&all=true
func (h *AuctionHandler) ListItemsHandler(c *gin.Context) {
	user, _ := helpers.CurrentUser(c)
	filter := marketplace.ItemFilter{
		Query:   c.Query("q"),
		MyItems: c.Query("my") == "true",
		All:     c.Query("all") == "true",
	}
	if filter.MyItems && user.ID == 0 {
		helpers.RespondError(c, "ListItemsHandler", auctionerrors.ErrUnauthenticated, nil)
		return
	}

	items, err := h.service.ListItems(user.ID, filter)
	if err != nil {
		helpers.RespondError(c, "ListItemsHandler", err, map[string]any{"query": filter.Query})
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.JSONResponse(c, http.StatusOK, models.ItemsResponse{Items: items, Count: len(items)})
	helpers.LogSuccess("ListItemsHandler", "items retrieved successfully", map[string]any{
		"query": filter.Query,
		"mine":  filter.MyItems,
		"count": len(items),
	})
}

// CreateItemHandler handles POST /api/items/ with a multipart or JSON body
func (h *AuctionHandler) CreateItemHandler(c *gin.Context) {
	user, ok := h.requireUser(c, "CreateItemHandler")
	if !ok {
		return
	}

	var req helpers.CreateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", err)
		return
	}

	input := marketplace.NewItem{
		Title:         req.Title,
		Description:   req.Description,
		StartingPrice: req.StartingPrice,
		EndDatetime:   req.EndDatetime,
	}
	if url, ok := helpers.UploadedFileURL(c, "image", "items"); ok {
		input.ImageURL = &url
	}

	item, err := h.service.CreateItem(user, input)
	if err != nil {
		helpers.RespondError(c, "CreateItemHandler", err, map[string]any{"user_id": user.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item)
	helpers.LogSuccess("CreateItemHandler", "item created", map[string]any{"item_id": item.ID, "user_id": user.ID})
}

// GetItemHandler handles GET /api/items/:item_id/
func (h *AuctionHandler) GetItemHandler(c *gin.Context) {
	itemID, err := helpers.ParseIDParam(c, "item_id")
	if err != nil {
		helpers.RespondError(c, "GetItemHandler", err, nil)
		return
	}

	detail, err := h.service.GetItemDetail(itemID)
	if err != nil {
		helpers.RespondError(c, "GetItemHandler", err, map[string]any{"item_id": itemID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, detail)
}

// DeleteItemHandler handles DELETE /api/items/:item_id/
func (h *AuctionHandler) DeleteItemHandler(c *gin.Context) {
	user, ok := h.requireUser(c, "DeleteItemHandler")
	if !ok {
		return
	}
	itemID, err := helpers.ParseIDParam(c, "item_id")
	if err != nil {
		helpers.RespondError(c, "DeleteItemHandler", err, nil)
		return
	}

	if err := h.service.DeleteItem(user.ID, itemID); err != nil {
		helpers.RespondError(c, "DeleteItemHandler", err, map[string]any{"item_id": itemID, "user_id": user.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, models.DeleteResponse{Success: true})
	helpers.LogSuccess("DeleteItemHandler", "item deleted", map[string]any{"item_id": itemID, "user_id": user.ID})
}

// GetBidsHandler handles GET /api/items/:item_id/bids/
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	itemID, err := helpers.ParseIDParam(c, "item_id")
	if err != nil {
		helpers.RespondError(c, "GetBidsHandler", err, nil)
		return
	}

	bids, err := h.service.GetBidsForItem(itemID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		helpers.RespondError(c, "GetBidsHandler", err, map[string]any{"item_id": itemID})
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, models.BidsResponse{Bids: bids, Count: len(bids)})
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"item_id": itemID,
		"count":   len(bids),
	})
}

// PlaceBidHandler handles POST /api/items/:item_id/bids/
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	user, ok := h.requireUser(c, "PlaceBidHandler")
	if !ok {
		return
	}
	itemID, err := helpers.ParseIDParam(c, "item_id")
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, nil)
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(user, itemID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"item_id": itemID,
			"user_id": user.ID,
			"amount":  req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bid)
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":  bid.ID,
		"item_id": itemID,
		"user_id": user.ID,
		"amount":  bid.Amount,
	})
}

// GetQuestionsHandler handles GET /api/items/:item_id/questions/
func (h *AuctionHandler) GetQuestionsHandler(c *gin.Context) {
	itemID, err := helpers.ParseIDParam(c, "item_id")
	if err != nil {
		helpers.RespondError(c, "GetQuestionsHandler", err, nil)
		return
	}

	questions, err := h.service.GetQuestionsForItem(itemID)
	if err != nil {
		helpers.RespondError(c, "GetQuestionsHandler", err, map[string]any{"item_id": itemID})
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	utils.JSONResponse(c, http.StatusOK, models.QuestionsResponse{Questions: questions, Count: len(questions)})
}

// AskQuestionHandler handles POST /api/items/:item_id/questions/
func (h *AuctionHandler) AskQuestionHandler(c *gin.Context) {
	user, ok := h.requireUser(c, "AskQuestionHandler")
	if !ok {
		return
	}
	itemID, err := helpers.ParseIDParam(c, "item_id")
	if err != nil {
		helpers.RespondError(c, "AskQuestionHandler", err, nil)
		return
	}

	var req helpers.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AskQuestionHandler", err)
		return
	}

	question, err := h.service.AskQuestion(user, itemID, req.Text)
	if err != nil {
		helpers.RespondError(c, "AskQuestionHandler", err, map[string]any{"item_id": itemID, "user_id": user.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, question)
	helpers.LogSuccess("AskQuestionHandler", "question asked", map[string]any{"question_id": question.ID, "item_id": itemID})
}

// AnswerQuestionHandler handles POST /api/questions/:question_id/answers/
func (h *AuctionHandler) AnswerQuestionHandler(c *gin.Context) {
	user, ok := h.requireUser(c, "AnswerQuestionHandler")
	if !ok {
		return
	}
	questionID, err := helpers.ParseIDParam(c, "question_id")
	if err != nil {
		helpers.RespondError(c, "AnswerQuestionHandler", err, nil)
		return
	}

	var req helpers.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AnswerQuestionHandler", err)
		return
	}

	answer, err := h.service.AnswerQuestion(user, questionID, req.Text)
	if err != nil {
		helpers.RespondError(c, "AnswerQuestionHandler", err, map[string]any{"question_id": questionID, "user_id": user.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, answer)
	helpers.LogSuccess("AnswerQuestionHandler", "question answered", map[string]any{"question_id": questionID, "answer_id": answer.ID})
}

func (h *AuctionHandler) requireUser(c *gin.Context, handlerName string) (models.User, bool) {
	user, ok := helpers.CurrentUser(c)
	if !ok {
		helpers.RespondError(c, handlerName, auctionerrors.ErrUnauthenticated, nil)
	}
	return user, ok
}
