package response

import (
	stdErrors "errors"
	"net/http"

	"intelligence-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

// OK answers 200 with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	})
}

// Error answers with the status carried by an HTTPError, or 500.
func Error(c *gin.Context, err error) {
	var httpErr *errors.HTTPError
	if stdErrors.As(err, &httpErr) {
		status := httpErr.StatusCode
		if status == 0 {
			status = http.StatusBadRequest
		}
		c.JSON(status, Resp{ErrorCode: httpErr.Code, Message: httpErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, Resp{ErrorCode: CodeInternalError, Message: MessageInternalError})
}

// Unauthorized answers 401.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{ErrorCode: CodeUnauthorized, Message: MessageUnauthorized})
}

// TooManyRequests answers 429.
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, Resp{ErrorCode: CodeTooManyRequests, Message: MessageTooManyRequests})
}

// PanicError answers 500 after a recovered panic.
func PanicError(c *gin.Context, _ any) {
	c.JSON(http.StatusInternalServerError, Resp{ErrorCode: CodeInternalError, Message: MessageInternalError})
}
