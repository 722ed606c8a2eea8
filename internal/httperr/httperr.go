package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// LimitPayload é o corpo da recusa plan_limit_reached: o chamador
// recebe uso, teto e o plano sugerido para se autocorrigir.
type LimitPayload struct {
	Code          string `json:"error_code"`
	Message       string `json:"message"`
	Resource      string `json:"resource"`
	Current       int64  `json:"current"`
	Limit         int    `json:"limit"`
	SuggestedPlan string `json:"suggested_plan"`
}

func PlanLimitReached(c *gin.Context, p LimitPayload) {
	p.Code = "plan_limit_reached"
	c.JSON(http.StatusForbidden, p)
}
