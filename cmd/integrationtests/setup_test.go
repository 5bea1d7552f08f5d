package integrationtests

import (
	"testing"
	"time"

	"auction-client/internal/apitest"
	"auction-client/internal/models"
	"auction-client/internal/navigation"
	"auction-client/internal/store"

	"github.com/stretchr/testify/require"
)

// Session is one signed-in (or signed-out) front end talking to the test backend.
type Session struct {
	History *navigation.History
	Users   *store.UserStore
	Items   *store.ItemsStore
	Router  *navigation.Router
}

// NewSession wires a client, both stores and the guard for username ("" for signed out).
func NewSession(t *testing.T, srv *apitest.Server, username string) *Session {
	t.Helper()
	client := srv.Client(t, username)

	history, err := navigation.NewHistory(client.BaseURL())
	require.NoError(t, err)

	users := store.NewUserStore(client, history)
	return &Session{
		History: history,
		Users:   users,
		Items:   store.NewItemsStore(client),
		Router:  navigation.NewRouter(users, history),
	}
}

// SetupServerWithItems starts the backend and seeds items owned by Bob, ending in a day.
func SetupServerWithItems(t *testing.T, titles ...string) (*apitest.Server, []models.Item) {
	t.Helper()
	srv := apitest.NewServer(t)
	items := make([]models.Item, 0, len(titles))
	for _, title := range titles {
		items = append(items, srv.SeedItem(t, apitest.Bob, title, "10", time.Now().Add(24*time.Hour)))
	}
	return srv, items
}

// Navigate requires the guard to let path through
func (s *Session) Navigate(t *testing.T, path string) navigation.Match {
	t.Helper()
	match, err := s.Router.Navigate(t.Context(), path)
	require.NoError(t, err)
	return match
}
