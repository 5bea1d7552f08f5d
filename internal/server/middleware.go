package server

import (
	"net/http"
	"time"

	"auction-client/internal/models"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "sessionid"
	CSRFCookie    = "csrftoken"
	CSRFHeader    = "X-CSRFToken"
	requestID     = "X-Request-ID"
)

// csrfFailure mirrors the HTML page the backend serves on a CSRF mismatch
const csrfFailure = "<h1>Forbidden (403)</h1><p>CSRF verification failed. Request aborted.</p>"

// SessionStore resolves and closes session cookies
type SessionStore interface {
	Authenticate(token string) (models.User, error)
	Logout(token string)
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	id := c.GetHeader(requestID)
	if id == "" {
		id = utils.GenerateID()
	}
	c.Header(requestID, id)

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": id,
	})
}

// SessionMiddleware attaches the user owning the session cookie, if any
func SessionMiddleware(sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			if user, err := sessions.Authenticate(token); err == nil {
				helpers.SetCurrentUser(c, user)
			}
		}
		c.Next()
	}
}

// CSRFMiddleware rejects unsafe requests whose header does not echo the CSRF cookie
func CSRFMiddleware(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		c.Next()
		return
	}

	cookie, err := c.Cookie(CSRFCookie)
	if err != nil || cookie == "" || c.GetHeader(CSRFHeader) != cookie {
		utils.Warn("CSRFMiddleware: verification failed", map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		c.Data(http.StatusForbidden, "text/html; charset=utf-8", []byte(csrfFailure))
		c.Abort()
		return
	}
	c.Next()
}

// CSRFHandler handles GET /api/csrf/ by issuing (or repeating) the CSRF cookie
func CSRFHandler(c *gin.Context) {
	token, err := c.Cookie(CSRFCookie)
	if err != nil || token == "" {
		token = utils.GenerateToken()
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CSRFCookie, token, int((365 * 24 * time.Hour).Seconds()), "/", "", false, false)
	utils.JSONResponse(c, http.StatusOK, helpers.CSRFResponse{CSRFToken: token})
}

// LogoutHandler handles GET /logout/: it ends the session and redirects to the login page
func LogoutHandler(sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil {
			sessions.Logout(token)
		}
		c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/login/")
	}
}

// LoginPageHandler handles GET /login/; signing in happens outside the API
func LoginPageHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>Log in</h1>"))
}
