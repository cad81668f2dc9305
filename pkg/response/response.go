package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-market/shareit/pkg/domain"
)

// ErrorBody is the error payload shape: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes a 200 with the given payload.
func Success(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 with the given payload.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

// Error translates a domain error kind into an HTTP status.
//
// Access-denied deliberately renders as 404: callers must not be able to
// distinguish "exists but not yours" from "does not exist". Unsupported
// state filters render as 500, preserving the original API contract.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindNotFound, domain.KindAccessDenied:
		status = http.StatusNotFound
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindUnsupportedState:
		status = http.StatusInternalServerError
	}
	c.JSON(status, ErrorBody{Error: err.Error()})
}
