package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bardlex/minegate/pkg/errors"
)

// MsgInternal is the only text an unclassified failure ever shows
const MsgInternal = "Internal server error"

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// HTTPStatus maps an error type to its HTTP status code
func HTTPStatus(t errors.ErrorType) int {
	switch t {
	case errors.ErrorTypeValidation, errors.ErrorTypeDeclined:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse builds the status and body for err
func errorResponse(err error) (int, ErrorResponse) {
	t := errors.TypeOf(err)
	msg := errors.PublicMessage(err, MsgInternal)
	if t == errors.ErrorTypeInternal {
		msg = MsgInternal
	}
	return HTTPStatus(t), ErrorResponse{Detail: msg, Code: string(t)}
}

// respondError aborts the request with the mapped error
func (h *Handler) respondError(c *gin.Context, err error) {
	status, body := errorResponse(err)

	logger := h.logger.WithContext(c.Request.Context()).WithError(err).WithFields(errors.Fields(err)...)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "route", c.FullPath(), "status", status, "code", body.Code)
	} else {
		logger.Info("request rejected", "route", c.FullPath(), "status", status, "code", body.Code)
	}

	c.AbortWithStatusJSON(status, body)
}
