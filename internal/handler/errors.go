package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrportal/pkg/apperror"
	"hrportal/pkg/response"
)

const notAvailable = "request not available"

// respondError writes err using the apperror taxonomy. On record-level
// routes an authorization failure is answered exactly like a missing record,
// so callers cannot discover other companies' ids.
func respondError(c *gin.Context, err error, recordLevel bool) {
	_ = c.Error(err)

	if recordLevel && (errors.Is(err, apperror.ErrUnauthorized) || errors.Is(err, apperror.ErrNotFound)) {
		notFound(c)
		return
	}

	status := apperror.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, response.ErrorWithCode(status, apperror.Code(err), msg))
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, response.ErrorWithCode(http.StatusNotFound, apperror.Code(apperror.ErrNotFound), notAvailable))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, apperror.Code(apperror.ErrValidation), msg))
}
