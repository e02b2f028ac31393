package controller

import (
	"net/http"

	"github.com/chinazagideon/alx-travel-app/internal/service"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	service *service.ReviewService
}

func NewReviewController(service *service.ReviewService) *ReviewController {
	return &ReviewController{service: service}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// Create обрабатывает POST /properties/:id/reviews
func (ctrl *ReviewController) Create(c *gin.Context) {
	propertyID, ok := parseID(c)
	if !ok {
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	review, err := ctrl.service.CreateReview(c.Request.Context(), service.CreateReviewInput{
		PropertyID: propertyID,
		UserID:     actorID(c),
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListByProperty обрабатывает GET /properties/:id/reviews
func (ctrl *ReviewController) ListByProperty(c *gin.Context) {
	propertyID, ok := parseID(c)
	if !ok {
		return
	}

	reviews, err := ctrl.service.ListReviews(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
