package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/myvoca/internal/middleware"
	"github.com/mrlokans/myvoca/internal/services"
)

// --- Response Types ---

// Envelope wraps every /api response.
type Envelope struct {
	Code    services.Code `json:"code"`
	Message string        `json:"message,omitempty"`
	Data    any           `json:"data"`
}

// statusFor maps a response code to its HTTP status.
func statusFor(code services.Code) int {
	switch code {
	case services.CodeOK:
		return http.StatusOK
	case services.CodeInvalidRequest:
		return http.StatusBadRequest
	case services.CodeNoVocab, services.CodeNoWord, services.CodeNoStat, services.CodeNoDefinition:
		return http.StatusNotFound
	case services.CodeDuplicatedWord:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// --- Success Response Helpers ---

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Code: services.CodeOK, Data: data})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, Envelope{Code: services.CodeOK, Message: message, Data: data})
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Code: services.CodeInvalidRequest, Message: message})
}

// respondInternalError logs the error and sends a 500 response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [%s]: %v", context, middleware.GetRequestID(c), err)
	c.JSON(http.StatusInternalServerError, Envelope{
		Code:    services.CodeInternalServerError,
		Message: "internal server error",
	})
}

// respondServiceError translates an error returned by a service into the
// envelope. Business errors keep their message, anything else is internal.
func respondServiceError(c *gin.Context, err error, context string) {
	code := services.CodeOf(err)
	if code == services.CodeInternalServerError {
		respondInternalError(c, err, context)
		return
	}
	c.JSON(statusFor(code), Envelope{Code: code, Message: err.Error()})
}

// respondBindError reports a request body that failed to decode or validate.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		respondBadRequest(c, verrs[0].Translate(translator()))
		return
	}
	respondBadRequest(c, "invalid request body")
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseQueryID extracts and validates an unsigned integer ID from query parameters.
func parseQueryID(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Query(paramName)
	if idStr == "" {
		respondBadRequest(c, paramName+" is required")
		return 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
