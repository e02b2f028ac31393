package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Controllers все HTTP-контроллеры сервиса
type Controllers struct {
	Bookings   *BookingController
	Properties *PropertyController
	Payments   *PaymentController
	Reviews    *ReviewController
	Messages   *MessageController
}

// NewRouter собирает маршруты. Всё, кроме health и публичного каталога,
// требует идентификатор пользователя.
func NewRouter(ctrls Controllers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Публичный каталог объектов
	router.GET("/properties", ctrls.Properties.List)
	router.GET("/properties/:id", ctrls.Properties.Get)
	router.GET("/properties/:id/reviews", ctrls.Reviews.ListByProperty)

	auth := router.Group("/", ActorAuth())
	{
		auth.POST("/properties", ctrls.Properties.Create)
		auth.PUT("/properties/:id/price", ctrls.Properties.UpdatePrice)
		auth.POST("/properties/:id/reviews", ctrls.Reviews.Create)

		auth.POST("/bookings", ctrls.Bookings.Create)
		auth.GET("/bookings", ctrls.Bookings.List)
		auth.GET("/bookings/:id", ctrls.Bookings.Get)
		auth.POST("/bookings/:id/confirm", ctrls.Bookings.Confirm)
		auth.POST("/bookings/:id/cancel", ctrls.Bookings.Cancel)
		auth.GET("/bookings/:id/payments", ctrls.Payments.ListByBooking)

		auth.POST("/payments", ctrls.Payments.Create)

		auth.POST("/messages", ctrls.Messages.Send)
		auth.GET("/messages/conversation", ctrls.Messages.Conversation)
	}

	return router
}
