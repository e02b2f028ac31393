package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor_id"

// ActorAuth извлекает идентификатор действующего пользователя из заголовка
// X-User-ID. Аутентификация выполняется внешним сервисом до нас, сюда
// приходит уже проверенный идентификатор.
func ActorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing X-User-ID header"})
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "invalid X-User-ID header"})
			return
		}

		c.Set(actorKey, id)
		c.Next()
	}
}

// актор достаётся только после ActorAuth
func actorID(c *gin.Context) int64 {
	return c.GetInt64(actorKey)
}
