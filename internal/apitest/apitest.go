// Package apitest runs the in-memory marketplace backend behind an
// httptest server for client, store and end-to-end tests.
package apitest

import (
	"net/http/httptest"
	"testing"
	"time"

	"auction-client/internal/api"
	"auction-client/internal/marketplace"
	"auction-client/internal/models"
	"auction-client/internal/repository"
	"auction-client/internal/server"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Usernames seeded by NewServer
const (
	Alice = "alice"
	Bob   = "bob"
)

type Server struct {
	*httptest.Server
	Repo    *repository.MemoryRepo
	Service *marketplace.MarketplaceService
	users   map[string]models.User
}

// NewServer starts the backend with the seeded users and closes it on cleanup
func NewServer(tb testing.TB) *Server {
	tb.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(tb, utils.SetLevel("warn"))

	repo := repository.NewMemoryRepo()
	svc := marketplace.NewMarketplaceService(repo)

	s := &Server{
		Server:  httptest.NewServer(server.SetupRouter(svc)),
		Repo:    repo,
		Service: svc,
		users:   make(map[string]models.User),
	}
	tb.Cleanup(s.Close)

	for _, name := range []string{Alice, Bob} {
		s.users[name] = repo.AddUser(models.User{
			UserMinimal: models.UserMinimal{Username: name},
			Email:       name + "@example.com",
		})
	}
	return s
}

// User returns a seeded user by name
func (s *Server) User(tb testing.TB, username string) models.User {
	tb.Helper()
	user, ok := s.users[username]
	require.True(tb, ok, "unknown user %q", username)
	return user
}

// Login opens a session for username and returns the session and CSRF tokens
func (s *Server) Login(tb testing.TB, username string) (session, csrf string) {
	tb.Helper()
	session, err := s.Service.Login(s.User(tb, username).ID)
	require.NoError(tb, err)
	return session, utils.GenerateToken()
}

// Client returns an API client for the server. A non-empty username is
// logged in first.
func (s *Server) Client(tb testing.TB, username string) *api.Client {
	tb.Helper()
	client, err := api.NewClient(api.Config{BaseURL: s.URL})
	require.NoError(tb, err)
	if username != "" {
		client.SetSession(s.Login(tb, username))
	}
	return client
}

// SeedItem creates an item owned by username directly through the service
func (s *Server) SeedItem(tb testing.TB, username, title, price string, ends time.Time) models.Item {
	tb.Helper()
	item, err := s.Service.CreateItem(s.User(tb, username), marketplace.NewItem{
		Title:         title,
		Description:   title + " description",
		StartingPrice: price,
		EndDatetime:   ends.UTC().Format(time.RFC3339),
	})
	require.NoError(tb, err)
	return item
}
