package integrationtests

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"auction-client/internal/apitest"
	"auction-client/internal/auctionerrors"
	"auction-client/internal/models"
	"auction-client/internal/navigation"

	"github.com/stretchr/testify/require"
)

func itemRoute(id int64) string {
	return "/items/" + strconv.FormatInt(id, 10)
}

func TestGuardFlow(t *testing.T) {
	srv, items := SetupServerWithItems(t, "Brass Lamp")

	t.Run("Signed_Out_Redirects_To_Login", func(t *testing.T) {
		s := NewSession(t, srv, "")
		_, err := s.Router.Navigate(t.Context(), "/")
		require.ErrorIs(t, err, navigation.ErrRedirected)

		location, ok := s.History.Last()
		require.True(t, ok)
		require.Equal(t, srv.URL+"/login/", location)
		require.Equal(t, "Guest", s.Users.Username())
		require.Equal(t, "AuctionHub", s.Router.Title())
	})

	t.Run("Signed_In_Resolves_Route", func(t *testing.T) {
		s := NewSession(t, srv, apitest.Alice)
		match := s.Navigate(t, itemRoute(items[0].ID))
		require.Equal(t, "ItemDetail", match.Route.Name)
		require.Equal(t, strconv.FormatInt(items[0].ID, 10), match.Params["id"])
		require.Equal(t, "Item Details | AuctionHub", s.Router.Title())
		require.Equal(t, "alice", s.Users.Username())

		s.Navigate(t, "/profile")
		require.Equal(t, "Profile Settings | AuctionHub", s.Router.Title())
	})

	t.Run("Logout_Redirects", func(t *testing.T) {
		s := NewSession(t, srv, apitest.Alice)
		s.Navigate(t, "/")
		s.Users.Logout()

		location, _ := s.History.Last()
		require.Equal(t, srv.URL+"/logout/", location)
		require.True(t, s.Users.IsAuthenticated(), "logout does not touch local state")
	})
}

func TestBrowseAndBidFlow(t *testing.T) {
	srv, items := SetupServerWithItems(t, "Brass Lamp", "Oak Chair")
	lamp := items[0]

	alice := NewSession(t, srv, apitest.Alice)
	alice.Navigate(t, "/")

	alice.Items.FetchItems(t.Context())
	state := alice.Items.State()
	require.Empty(t, state.Error)
	require.Len(t, state.Items, 2)
	require.Equal(t, "Oak Chair", state.Items[0].Title, "newest first")
	require.True(t, alice.Items.HasItems())

	alice.Navigate(t, itemRoute(lamp.ID))
	bid, err := alice.Items.PlaceBid(t.Context(), lamp.ID, models.PlaceBidForm{Amount: "12.50"})
	require.NoError(t, err)
	require.Equal(t, "12.50", bid.Amount)

	current := alice.Items.State().CurrentItem
	require.NotNil(t, current, "placing a bid refetches the item")
	require.Equal(t, "12.50", current.CurrentPrice)
	require.Equal(t, 1, current.BidCount)
	require.Equal(t, "alice", current.HighestBidder.Username)

	tests := []struct {
		name    string
		session string
		amount  string
		wantMsg string
	}{
		{name: "Too_Low", session: apitest.Alice, amount: "12.50", wantMsg: "Bid must be higher than current price (£12.50)"},
		{name: "Own_Item", session: apitest.Bob, amount: "20", wantMsg: "You cannot bid on your own item"},
		{name: "Invalid_Amount", session: apitest.Alice, amount: "lots", wantMsg: "Invalid amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(t, srv, tt.session)
			_, err := s.Items.PlaceBid(t.Context(), lamp.ID, models.PlaceBidForm{Amount: tt.amount})
			require.Error(t, err)
			require.Equal(t, http.StatusBadRequest, auctionerrors.StatusCode(err))
			require.Equal(t, tt.wantMsg, err.Error())
			require.Equal(t, tt.wantMsg, s.Items.State().Error)
			require.False(t, s.Items.State().Loading)
		})
	}
}

func TestSearchFlow(t *testing.T) {
	srv, _ := SetupServerWithItems(t, "Brass Lamp", "Red Lamp", "Oak Chair")
	alice := NewSession(t, srv, apitest.Alice)
	alice.Navigate(t, "/")

	alice.Items.SearchItems(t.Context(), "lamp")
	state := alice.Items.State()
	require.Len(t, state.SearchResults, 2)
	require.Equal(t, "lamp", state.SearchQuery)
	require.True(t, alice.Items.IsSearching())

	alice.Items.SearchItems(t.Context(), "red lamp")
	require.Len(t, alice.Items.State().SearchResults, 1)

	alice.Items.SearchItems(t.Context(), "")
	require.Empty(t, alice.Items.State().SearchResults)
	require.False(t, alice.Items.IsSearching())
}

func TestCreateAndDeleteFlow(t *testing.T) {
	srv, _ := SetupServerWithItems(t, "Brass Lamp")
	alice := NewSession(t, srv, apitest.Alice)
	alice.Navigate(t, "/create-item")

	alice.Items.FetchItems(t.Context())
	created, err := alice.Items.CreateItem(t.Context(), models.CreateItemForm{
		Title:         "Walnut Desk",
		Description:   "Solid walnut",
		StartingPrice: "75",
		EndDatetime:   time.Now().Add(48 * time.Hour).UTC().Format("2006-01-02T15:04"),
		Image:         &models.Upload{Filename: "desk.jpg", Content: []byte("jpeg-bytes")},
	})
	require.NoError(t, err)
	require.Equal(t, "75.00", created.StartingPrice)
	require.Equal(t, "alice", created.Owner.Username)
	require.NotNil(t, created.Image)
	require.True(t, strings.Contains(*created.Image, "/media/items/"), *created.Image)
	require.True(t, strings.HasSuffix(*created.Image, "-desk.jpg"))

	items := alice.Items.State().Items
	require.Len(t, items, 2)
	require.Equal(t, created.ID, items[0].ID, "created item is prepended")

	alice.Items.FetchMyItems(t.Context())
	require.Len(t, alice.Items.State().MyItems, 1)

	bob := NewSession(t, srv, apitest.Bob)
	err = bob.Items.DeleteItem(t.Context(), created.ID)
	require.True(t, auctionerrors.IsForbidden(err))
	require.Equal(t, "Permission denied", err.Error())

	_, err = alice.Items.CreateItem(t.Context(), models.CreateItemForm{Title: "No description"})
	require.EqualError(t, err, "Missing required field: description")

	require.NoError(t, alice.Items.DeleteItem(t.Context(), created.ID))
	state := alice.Items.State()
	require.Len(t, state.Items, 1)
	require.Empty(t, state.MyItems)

	alice.Items.FetchItem(t.Context(), created.ID)
	require.Equal(t, "API Error: 404", alice.Items.State().Error)
}

func TestQuestionFlow(t *testing.T) {
	srv, items := SetupServerWithItems(t, "Brass Lamp")
	lamp := items[0]

	alice := NewSession(t, srv, apitest.Alice)
	question, err := alice.Items.AskQuestion(t.Context(), lamp.ID, models.QuestionForm{Text: "  Does it work?  "})
	require.NoError(t, err)
	require.Equal(t, "Does it work?", question.Text)
	require.Len(t, alice.Items.State().CurrentItem.Questions, 1)

	_, err = alice.Items.AnswerQuestion(t.Context(), question.ID, models.QuestionForm{Text: "Yes"})
	require.True(t, auctionerrors.IsForbidden(err))
	require.Equal(t, "Only the item owner can answer questions", err.Error())

	bob := NewSession(t, srv, apitest.Bob)
	bob.Items.FetchItem(t.Context(), lamp.ID)
	answer, err := bob.Items.AnswerQuestion(t.Context(), question.ID, models.QuestionForm{Text: "Yes, perfectly"})
	require.NoError(t, err)
	require.Equal(t, question.ID, answer.QuestionID)

	current := bob.Items.State().CurrentItem
	require.Len(t, current.Questions, 1)
	require.Len(t, current.Questions[0].Answers, 1)
	require.Equal(t, "Yes, perfectly", current.Questions[0].Answers[0].Text)

	_, err = bob.Items.AskQuestion(t.Context(), lamp.ID, models.QuestionForm{Text: "   "})
	require.EqualError(t, err, "Question text is required")
}

func TestProfileFlow(t *testing.T) {
	srv := apitest.NewServer(t)
	alice := NewSession(t, srv, apitest.Alice)
	alice.Navigate(t, "/profile")
	require.Equal(t, "alice@example.com", alice.Users.Email())

	require.NoError(t, alice.Users.UpdateProfile(t.Context(), models.UpdateProfileForm{Email: "a@auction.test"}))
	require.Equal(t, "a@auction.test", alice.Users.Email())

	err := alice.Users.UpdateProfile(t.Context(), models.UpdateProfileForm{
		DateOfBirth:  "1990-05-01",
		ProfileImage: &models.Upload{Filename: "me.png", Content: []byte("png")},
	})
	require.NoError(t, err)
	state := alice.Users.State()
	require.Equal(t, "1990-05-01", *state.User.DateOfBirth)
	require.Equal(t, "a@auction.test", state.User.Email, "unset fields are left alone")
	require.NotNil(t, alice.Users.ProfileImage())
	require.True(t, strings.Contains(*alice.Users.ProfileImage(), "/media/profiles/"))

	err = alice.Users.UpdateProfile(t.Context(), models.UpdateProfileForm{Email: "nope"})
	require.EqualError(t, err, "Enter a valid email address.")
	require.Equal(t, "Enter a valid email address.", alice.Users.State().Error)
	require.Equal(t, "a@auction.test", alice.Users.Email())
}
