package controller

import (
	"net/http"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError переводит доменную ошибку в HTTP-статус. Клиент всегда
// получает конкретный вид ошибки: занятые даты, нет прав, плохой ввод.
func respondError(c *gin.Context, err error) {
	switch {
	case model.IsValidation(err):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case model.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case model.IsConflict(err):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case model.IsAuthorization(err):
		c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		// Детали ошибок хранилища наружу не отдаём
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
