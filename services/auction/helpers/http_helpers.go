package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"auction-client/internal/auctionerrors"
	"auction-client/internal/models"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends the backend's invalid-payload error
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid JSON")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// A client-facing detail attached to err takes precedence over the default message.
func MapErrorToHTTP(err error) (int, string) {
	status, message := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, auctionerrors.ErrItemNotFound), errors.Is(err, auctionerrors.ErrQuestionNotFound):
		status, message = http.StatusNotFound, "Not Found"
	case errors.Is(err, auctionerrors.ErrUnauthenticated):
		status, message = http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, auctionerrors.ErrPermissionDenied):
		status, message = http.StatusForbidden, "Permission denied"
	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		status, message = http.StatusBadRequest, "This auction has ended"
	case errors.Is(err, auctionerrors.ErrOwnItem):
		status, message = http.StatusBadRequest, "You cannot bid on your own item"
	case errors.Is(err, auctionerrors.ErrInvalidBid),
		errors.Is(err, auctionerrors.ErrBidTooLow),
		errors.Is(err, auctionerrors.ErrMissingField),
		errors.Is(err, auctionerrors.ErrInvalidData):
		status, message = http.StatusBadRequest, "invalid request"
	}

	if status != http.StatusInternalServerError {
		if detail, ok := auctionerrors.Detail(err); ok {
			message = detail
		}
	}
	return status, message
}

// RespondError writes err the way the backend does: 404s are an HTML page,
// everything else is {"error": message}.
func RespondError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := MapErrorToHTTP(err)
	if status == http.StatusNotFound {
		c.Data(status, "text/html; charset=utf-8", []byte("<h1>Not Found</h1>"))
		c.Abort()
	} else {
		utils.JSONError(c, status, message)
	}

	fields := map[string]any{"status": status, "error": err.Error()}
	for k, v := range ctx {
		fields[k] = v
	}
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": failed", fields)
	} else {
		utils.Warn(handlerName+": rejected", fields)
	}
}

// ParseIDParam reads a positive integer path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", auctionerrors.ErrItemNotFound, name, c.Param(name))
	}
	return id, nil
}

// contextUserKey holds the session's models.User on the gin context
const contextUserKey = "user"

// SetCurrentUser attaches the authenticated user to the request
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(contextUserKey, user)
}

// CurrentUser returns the authenticated user, if any
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// UploadedFileURL returns the media URL for a multipart file field.
// Only the URL is recorded; the content is not kept.
func UploadedFileURL(c *gin.Context, field, folder string) (string, bool) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return "", false
	}
	header, err := c.FormFile(field)
	if err != nil {
		return "", false
	}
	return MediaURL(c, folder, header.Filename), true
}

// MediaURL is the absolute URL an uploaded file is served from
func MediaURL(c *gin.Context, folder, filename string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/media/%s/%s-%s", scheme, c.Request.Host, folder, utils.GenerateID(), path.Base(filename))
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
