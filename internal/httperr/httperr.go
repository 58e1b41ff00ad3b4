package httperr

import (
	"errors"
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

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError traduz a taxonomia de erros do domínio para a resposta HTTP.
// Retorna o status escrito.
func FromError(c *gin.Context, err error) int {
	var (
		nf NotFoundError
		su SlotUnavailableError
		ve ValidationError
		cm ConcurrentModificationError
		be BusinessError
	)

	switch {
	case errors.As(err, &nf):
		NotFound(c, nf.Entity+"_not_found", err.Error())
		return http.StatusNotFound
	case errors.As(err, &su):
		Conflict(c, "slot_unavailable", err.Error())
		return http.StatusConflict
	case errors.As(err, &ve):
		BadRequest(c, "validation_error", err.Error())
		return http.StatusBadRequest
	case errors.As(err, &cm):
		Conflict(c, "concurrent_modification", "Registro alterado por outra operação, tente novamente.")
		return http.StatusConflict
	case errors.As(err, &be):
		Write(c, http.StatusUnprocessableEntity, be.Code, "Operação não permitida no estado atual.")
		return http.StatusUnprocessableEntity
	default:
		Internal(c, "internal_error", "Erro interno.")
		return http.StatusInternalServerError
	}
}
