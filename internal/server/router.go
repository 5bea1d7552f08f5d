package server

import (
	"net/http"

	"auction-client/internal/marketplace"
	handler "auction-client/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(service *marketplace.MarketplaceService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(SessionMiddleware(service))

	router.NoRoute(func(c *gin.Context) {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<h1>Not Found</h1>"))
	})

	router.GET("/login/", LoginPageHandler)
	router.GET("/logout/", LogoutHandler(service))

	auctionHandler := handler.NewAuctionHandler(service)

	api := router.Group("/api")
	api.Use(CSRFMiddleware)
	{
		api.GET("/csrf/", CSRFHandler)
		api.GET("/user/status/", auctionHandler.UserStatusHandler)
		api.GET("/profile/", auctionHandler.GetProfileHandler)
		api.PUT("/profile/", auctionHandler.UpdateProfileHandler)
	}

	items := api.Group("/items")
	{
		items.GET("/", auctionHandler.ListItemsHandler)
		items.POST("/", auctionHandler.CreateItemHandler)
		items.GET("/:item_id/", auctionHandler.GetItemHandler)
		items.DELETE("/:item_id/", auctionHandler.DeleteItemHandler)
		items.GET("/:item_id/bids/", auctionHandler.GetBidsHandler)
		items.POST("/:item_id/bids/", auctionHandler.PlaceBidHandler)
		items.GET("/:item_id/questions/", auctionHandler.GetQuestionsHandler)
		items.POST("/:item_id/questions/", auctionHandler.AskQuestionHandler)
	}

	questions := api.Group("/questions")
	{
		questions.POST("/:question_id/answers/", auctionHandler.AnswerQuestionHandler)
	}

	return router
}
