package server_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"auction-client/internal/apitest"
	"auction-client/internal/auctionerrors"
	"auction-client/internal/models"
	"auction-client/internal/server"

	"github.com/stretchr/testify/require"
)

func TestCSRFProtection(t *testing.T) {
	srv := apitest.NewServer(t)
	item := srv.SeedItem(t, apitest.Bob, "Lamp", "10", time.Now().Add(time.Hour))
	ctx := context.Background()

	session, _ := srv.Login(t, apitest.Alice)
	client := srv.Client(t, "")
	client.SetSession(session, "")

	// reads need no token
	var status models.UserStatusResponse
	require.NoError(t, client.Get(ctx, "/api/user/status/", &status))
	require.True(t, status.Authenticated)

	// the rejection page is HTML, so the client falls back to the status message
	err := client.Post(ctx, "/api/items/1/bids/", models.PlaceBidForm{Amount: "11"}, nil)
	require.ErrorIs(t, err, auctionerrors.ErrRequestFailed)
	require.True(t, auctionerrors.IsForbidden(err))
	require.Equal(t, "API Error: 403", err.Error())

	require.NoError(t, client.PrimeCSRF(ctx))
	require.NotEmpty(t, client.CSRFToken())

	var bid models.Bid
	require.NoError(t, client.Post(ctx, "/api/items/"+strconv.FormatInt(item.ID, 10)+"/bids/", models.PlaceBidForm{Amount: "11"}, &bid))
	require.Equal(t, "11.00", bid.Amount)
}

func TestAPIErrors(t *testing.T) {
	srv := apitest.NewServer(t)
	ctx := context.Background()

	anonymous := srv.Client(t, "")
	require.NoError(t, anonymous.PrimeCSRF(ctx))

	var user models.User
	err := anonymous.Get(ctx, "/api/profile/", &user)
	require.Equal(t, http.StatusUnauthorized, auctionerrors.StatusCode(err))
	require.Equal(t, "Authentication required", err.Error())

	alice := srv.Client(t, apitest.Alice)
	err = alice.Get(ctx, "/api/items/999/", nil)
	require.True(t, auctionerrors.IsNotFound(err))
	require.Equal(t, "API Error: 404", err.Error())

	err = alice.Post(ctx, "/api/items/", map[string]string{"title": "x"}, nil)
	require.Equal(t, http.StatusBadRequest, auctionerrors.StatusCode(err))
	require.Equal(t, "Missing required field: description", err.Error())
}

func TestLogoutEndsSession(t *testing.T) {
	srv := apitest.NewServer(t)
	session, _ := srv.Login(t, apitest.Alice)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/logout/", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: server.SessionCookie, Value: session})

	noRedirect := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := noRedirect.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login/", resp.Header.Get("Location"))

	_, err = srv.Service.Authenticate(session)
	require.ErrorIs(t, err, auctionerrors.ErrUnauthenticated)
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := apitest.NewServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/user/status/", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
}
