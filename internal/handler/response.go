package handler

import (
	"errors"
	"log"
	"net/http"

	"issuetracker/internal/middleware"
	"issuetracker/internal/repository"
	"issuetracker/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	MsgIssueNotFound       = "Issue not found"
	MsgIssueDeleted        = "Issue deleted successfully"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgInternalServerError = "Internal Server Error"
)

// ValidationErrorResponse is the 400 body for rejected fields
type ValidationErrorResponse struct {
	Errors validation.Errors `json:"errors"`
}

// MessageResponse is the 404 body
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorDetail holds the message of an ErrorResponse
type ErrorDetail struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every other failure
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Message: message}}
}

// respondError turns an error returned by the service into its envelope.
// Internal details are logged, never sent to the client.
func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: verrs})
	case errors.Is(err, repository.ErrIssueNotFound):
		c.JSON(http.StatusNotFound, MessageResponse{Message: MsgIssueNotFound})
	default:
		if errors.Is(err, repository.ErrUnavailable) {
			log.Printf("⚠️  [%s] database unavailable: %v", middleware.GetRequestID(c), err)
		} else {
			log.Printf("❌ [%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(MsgInternalServerError))
	}
}
