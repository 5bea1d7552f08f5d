package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"auction-client/internal/auctionerrors"
	"auction-client/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// capturedRequest is what the test server saw for the last request
type capturedRequest struct {
	method      string
	path        string
	contentType string
	csrfHeader  string
	requestID   string
	sessionID   string
	fields      map[string]string
	files       map[string]string
	body        string
}

func newTestServer(t *testing.T, handler gin.HandlerFunc) (*Client, *capturedRequest) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	captured := &capturedRequest{}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		captured.method = c.Request.Method
		captured.path = c.Request.URL.RequestURI()
		captured.contentType = c.GetHeader("Content-Type")
		captured.csrfHeader = c.GetHeader("X-CSRFToken")
		captured.requestID = c.GetHeader("X-Request-ID")
		if cookie, err := c.Cookie("sessionid"); err == nil {
			captured.sessionID = cookie
		}
		if strings.HasPrefix(captured.contentType, "multipart/form-data") {
			form, err := c.MultipartForm()
			require.NoError(t, err)
			captured.fields = map[string]string{}
			for k, v := range form.Value {
				captured.fields[k] = v[0]
			}
			captured.files = map[string]string{}
			for k, headers := range form.File {
				f, err := headers[0].Open()
				require.NoError(t, err)
				data, _ := io.ReadAll(f)
				f.Close()
				captured.files[k] = headers[0].Filename + ":" + string(data)
			}
		} else if c.Request.Body != nil {
			data, _ := io.ReadAll(c.Request.Body)
			captured.body = string(data)
		}
		c.Next()
	})
	router.NoRoute(handler)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client, captured
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "/relative"})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "::bad"})
	require.Error(t, err)
}

func TestClient_Get_DecodesBody(t *testing.T) {
	client, captured := newTestServer(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ItemsResponse{
			Items: []models.Item{{ID: 1, Title: "Lamp", CurrentPrice: "10.00"}},
			Count: 1,
		})
	})
	client.SetSession("sess-1", "tok-1")

	var resp models.ItemsResponse
	err := client.Get(context.Background(), "/api/items/?q=lamp", &resp)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "Lamp", resp.Items[0].Title)

	require.Equal(t, http.MethodGet, captured.method)
	require.Equal(t, "/api/items/?q=lamp", captured.path)
	require.Equal(t, "sess-1", captured.sessionID, "credentials must always be sent")
	require.Empty(t, captured.csrfHeader, "reads do not carry the anti-forgery header")
	_, err = uuid.Parse(captured.requestID)
	require.NoError(t, err, "request id should be a UUID")
}

func TestClient_Post_JSONBody(t *testing.T) {
	client, captured := newTestServer(t, func(c *gin.Context) {
		c.JSON(http.StatusCreated, models.Bid{ID: 9, ItemID: 3, Amount: "12.50"})
	})
	client.SetSession("sess-1", "tok-1")

	var bid models.Bid
	err := client.Post(context.Background(), "/api/items/3/bids/", models.PlaceBidForm{Amount: "12.50"}, &bid)
	require.NoError(t, err)
	require.Equal(t, int64(9), bid.ID)

	require.Equal(t, "application/json", captured.contentType)
	require.Equal(t, "tok-1", captured.csrfHeader)
	require.JSONEq(t, `{"amount":"12.50"}`, captured.body)
}

func TestClient_Put_MultipartBody(t *testing.T) {
	client, captured := newTestServer(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, models.User{UserMinimal: models.UserMinimal{ID: 1, Username: "alice"}})
	})
	client.SetSession("", "tok-2")

	form := NewForm().
		Set("email", "a@example.com").
		SetIfNotEmpty("date_of_birth", "").
		AttachFile("profile_image", models.Upload{Filename: "me.png", Content: []byte("png")})

	var user models.User
	err := client.Put(context.Background(), "/api/profile/", form, &user)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	require.True(t, strings.HasPrefix(captured.contentType, "multipart/form-data; boundary="))
	require.NotContains(t, captured.contentType, "application/json")
	require.Equal(t, "tok-2", captured.csrfHeader)
	require.Equal(t, map[string]string{"email": "a@example.com"}, captured.fields)
	require.Equal(t, "me.png:png", captured.files["profile_image"])
}

func TestClient_Delete_SendsToken(t *testing.T) {
	client, captured := newTestServer(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, models.DeleteResponse{Success: true})
	})
	client.SetSession("", "tok-3")

	var resp models.DeleteResponse
	require.NoError(t, client.Delete(context.Background(), "/api/items/4/", &resp))
	require.True(t, resp.Success)
	require.Equal(t, http.MethodDelete, captured.method)
	require.Equal(t, "tok-3", captured.csrfHeader)
	require.Empty(t, captured.contentType)
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMessage string
	}{
		{name: "structured_error", status: http.StatusBadRequest, contentType: "application/json", body: `{"error":"Missing amount"}`, wantMessage: "Missing amount"},
		{name: "empty_error_field", status: http.StatusBadRequest, contentType: "application/json", body: `{"error":""}`, wantMessage: "API Error: 400"},
		{name: "no_error_field", status: http.StatusConflict, contentType: "application/json", body: `{"detail":"x"}`, wantMessage: "API Error: 409"},
		{name: "html_body", status: http.StatusForbidden, contentType: "text/html", body: `<h1>CSRF verification failed</h1>`, wantMessage: "API Error: 403"},
		{name: "empty_body", status: http.StatusInternalServerError, contentType: "text/plain", body: ``, wantMessage: "API Error: 500"},
		{name: "wrong_type", status: http.StatusNotFound, contentType: "application/json", body: `{"error":42}`, wantMessage: "API Error: 404"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestServer(t, func(c *gin.Context) {
				c.Data(tc.status, tc.contentType, []byte(tc.body))
			})

			err := client.Get(context.Background(), "/api/items/1/", &models.ItemDetail{})
			require.Error(t, err)
			require.True(t, errors.Is(err, auctionerrors.ErrRequestFailed))
			require.Equal(t, tc.wantMessage, err.Error())
			require.Equal(t, tc.status, auctionerrors.StatusCode(err))
		})
	}
}

func TestClient_TransportAndDecodeFailures(t *testing.T) {
	t.Run("unreachable_backend", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client, err := NewClient(Config{BaseURL: url})
		require.NoError(t, err)

		err = client.Get(context.Background(), "/api/items/", nil)
		var reqErr *auctionerrors.RequestError
		require.ErrorAs(t, err, &reqErr)
		require.Zero(t, reqErr.StatusCode)
		require.NotNil(t, reqErr.Unwrap())
	})

	t.Run("undecodable_success_body", func(t *testing.T) {
		client, _ := newTestServer(t, func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html", []byte("<html></html>"))
		})

		err := client.Get(context.Background(), "/api/user/status/", &models.UserStatusResponse{})
		require.True(t, errors.Is(err, auctionerrors.ErrRequestFailed))
		require.Equal(t, http.StatusOK, auctionerrors.StatusCode(err))
	})
}

func TestClient_PrimeCSRF(t *testing.T) {
	client, captured := newTestServer(t, func(c *gin.Context) {
		c.SetCookie("csrftoken", "issued-token", 0, "/", "", false, false)
		c.JSON(http.StatusOK, gin.H{"csrfToken": "set"})
	})
	require.Empty(t, client.CSRFToken())

	require.NoError(t, client.PrimeCSRF(context.Background()))
	require.Equal(t, "/api/csrf/", captured.path)
	require.Equal(t, "issued-token", client.CSRFToken())
}

func TestClient_BaseURLPathPrefix(t *testing.T) {
	client, captured := newTestServer(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ItemsResponse{})
	})
	prefixed, err := NewClient(Config{BaseURL: client.BaseURL() + "/auction/"})
	require.NoError(t, err)

	require.NoError(t, prefixed.Get(context.Background(), "/api/items/?q=red+lamp", nil))
	require.Equal(t, "/auction/api/items/?q=red+lamp", captured.path)
}

// failingBody errors on the first read
type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (failingBody) Close() error             { return nil }

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_UnreadableBody(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantMsg string
	}{
		{name: "error_status_falls_back", status: http.StatusBadGateway, wantMsg: "API Error: 502"},
		{name: "success_status_reports_read", status: http.StatusOK, wantMsg: "read response body: connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: tt.status, Header: http.Header{}, Body: failingBody{}, Request: r}, nil
			})
			client, err := NewClient(Config{BaseURL: "http://auction.test", HTTPClient: &http.Client{Transport: transport}})
			require.NoError(t, err)

			err = client.Get(context.Background(), "/api/items/", nil)
			require.ErrorIs(t, err, auctionerrors.ErrRequestFailed)
			require.Equal(t, tt.status, auctionerrors.StatusCode(err))
			require.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
