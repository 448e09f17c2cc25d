package response

import (
	"github.com/gin-gonic/gin"

	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/pkg/utils"
)

// Envelope is the body every API response is wrapped in
type Envelope struct {
	Result  bool        `json:"result"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Page is the data of a paginated list response
type Page struct {
	Items interface{}          `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Result: true, Data: data})
}

// SuccessWithMessage sends a success response carrying a human message
func SuccessWithMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Result: true, Message: message, Data: data})
}

// Paginated sends a list with its pagination meta
func Paginated(c *gin.Context, status int, items interface{}, meta utils.PaginationMeta) {
	c.JSON(status, Envelope{Result: true, Data: Page{Items: items, Meta: meta}})
}

// Error sends an error response. Any error chain is mapped to its AppError.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr == nil {
		appErr = domainerrors.InternalError(err)
	}

	c.AbortWithStatusJSON(appErr.Status, Envelope{
		Result:  false,
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

