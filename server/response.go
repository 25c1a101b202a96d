package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	C "Nav/constants"
	"Nav/finder"
	"Nav/registry"
)

var (
	errInvalidParams = errors.New("invalid params")
	errMapExists     = errors.New("map already exists")
)

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"ret": C.RetCodeOk, "data": data})
}

// retCode maps an error to its wire code and HTTP status.
func retCode(err error) (int, int) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return C.RetCodeNotFound, http.StatusNotFound
	case errors.Is(err, errMapExists):
		return C.RetCodeMapExists, http.StatusConflict
	case errors.Is(err, errInvalidParams), errors.Is(err, finder.ErrUnknownStrategy):
		return C.RetCodeInvalidParams, http.StatusBadRequest
	}
	return C.RetCodeUnknownError, http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	ret, status := retCode(err)
	c.AbortWithStatusJSON(status, gin.H{
		"ret":        ret,
		"msg":        err.Error(),
		"request_id": c.GetString(requestIDKey),
	})
}
