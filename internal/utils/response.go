package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan/internal/gateway"
)

// Success writes a flat envelope: fields are merged next to "success".
func Success(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   msg,
	})
}

// Fail maps a gateway error onto a status code. Validation failures are the
// caller's fault; everything else, provider failures included, is a 500
// carrying the error message unchanged.
func Fail(c *gin.Context, err error) {
	var verr *gateway.ValidationError
	if errors.As(err, &verr) {
		Error(c, http.StatusBadRequest, verr.Message)
		return
	}
	Error(c, http.StatusInternalServerError, err.Error())
}

// Respond writes fields on success and the mapped error otherwise.
func Respond(c *gin.Context, fields gin.H, err error) {
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, fields)
}
